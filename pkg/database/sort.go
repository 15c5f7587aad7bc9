/*
Copyright 2024 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package database

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// parseSort reads comma separated paths, each descending when prefixed by
// a minus sign, e.g. "-createdAt,title".
func parseSort(s string) bson.D {
	var keys bson.D

	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)

		order := 1
		if strings.HasPrefix(p, "-") {
			order = -1
			p = p[1:]
		}

		if p == "" {
			continue
		}
		if p == "id" {
			p = "_id"
		}

		keys = append(keys, bson.E{Key: p, Value: order})
	}

	return keys
}
