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

import "errors"

var (
	ErrIllegalArguments        = errors.New("illegal arguments")
	ErrInvalidOptions          = errors.New("invalid options")
	ErrModelNotFound           = errors.New("model not found")
	ErrModelAlreadyExists      = errors.New("model already exists")
	ErrPaginationNotSupported  = errors.New("pagination not supported")
	ErrQueryNotSupported       = errors.New("query building not supported")
	ErrAggregationNotSupported = errors.New("aggregation not supported")
)
