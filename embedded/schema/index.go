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
package schema

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IndexOptions struct {
	Name                    string
	Unique                  bool
	Sparse                  bool
	PartialFilterExpression bson.M
}

// Index is an index request over one or more paths.
type Index struct {
	Keys    bson.D
	Options IndexOptions
}

// KeyNames returns the indexed paths in key order.
func (i Index) KeyNames() []string {
	names := make([]string, len(i.Keys))
	for j, k := range i.Keys {
		names[j] = k.Key
	}
	return names
}

// Name is the explicit index name or the one the server would generate,
// e.g. "filename_1_sizeKey_1".
func (i Index) Name() string {
	if i.Options.Name != "" {
		return i.Options.Name
	}

	parts := make([]string, 0, 2*len(i.Keys))
	for _, k := range i.Keys {
		parts = append(parts, k.Key, fmt.Sprint(k.Value))
	}

	return strings.Join(parts, "_")
}

func (i Index) Model() mongo.IndexModel {
	opts := options.Index().SetName(i.Name())

	if i.Options.Unique {
		opts.SetUnique(true)
	}
	if i.Options.Sparse {
		opts.SetSparse(true)
	}
	if len(i.Options.PartialFilterExpression) > 0 {
		opts.SetPartialFilterExpression(i.Options.PartialFilterExpression)
	}

	return mongo.IndexModel{
		Keys:    i.Keys,
		Options: opts,
	}
}

func fieldIndexes(prefix string, fields []*Field) []Index {
	var indexes []Index

	for _, f := range fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}

		if f.Indexed() {
			var key interface{} = 1
			if f.IndexType != "" {
				key = f.IndexType
			}

			indexes = append(indexes, Index{
				Keys: bson.D{{Key: path, Value: key}},
				Options: IndexOptions{
					Unique: f.Unique,
					Sparse: f.Sparse,
				},
			})
		}

		switch {
		case f.Type == TypeObject:
			indexes = append(indexes, fieldIndexes(path, f.Fields)...)
		case f.Type == TypeArray && f.Of != nil && f.Of.Type == TypeObject:
			indexes = append(indexes, fieldIndexes(path, f.Of.Fields)...)
		}
	}

	return indexes
}
