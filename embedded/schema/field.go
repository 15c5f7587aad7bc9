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

import "strings"

type Type string

const (
	TypeString   Type = "string"
	TypeNumber   Type = "number"
	TypeBoolean  Type = "boolean"
	TypeDate     Type = "date"
	TypeObjectID Type = "objectId"
	TypeMixed    Type = "mixed"
	TypeArray    Type = "array"
	TypeObject   Type = "object"
	TypePoint    Type = "point"
)

// IndexType2DSphere is the key value of geospatial indexes.
const IndexType2DSphere = "2dsphere"

// Field is a single path of a schema.
type Field struct {
	Name string
	Type Type

	// Of is the element of an array field.
	Of *Field
	// Fields are the sub-paths of an object field.
	Fields []*Field

	Required bool
	Unique   bool
	Sparse   bool
	Index    bool
	// IndexType replaces the ascending key value, e.g. "2dsphere".
	IndexType string

	Ref       string
	Enum      []string
	Default   interface{}
	Localized bool
}

// Indexed reports whether the field asks for an index of its own.
func (f *Field) Indexed() bool {
	return f.Index || f.Unique || f.IndexType != ""
}

// Lookup returns the direct sub-path called name.
func (f *Field) Lookup(name string) (*Field, bool) {
	fields := f.Fields
	if f.Type == TypeArray && f.Of != nil {
		fields = f.Of.Fields
	}

	for _, sub := range fields {
		if sub.Name == name {
			return sub, true
		}
	}

	return nil, false
}

func lookup(fields []*Field, path string) (*Field, bool) {
	segments := strings.Split(path, ".")

	var current *Field

	for _, seg := range fields {
		if seg.Name == segments[0] {
			current = seg
			break
		}
	}
	if current == nil {
		return nil, false
	}

	for _, name := range segments[1:] {
		if current.Type == TypeArray && isArrayPosition(name) {
			continue
		}

		next, ok := current.Lookup(name)
		if !ok {
			return nil, false
		}
		current = next
	}

	return current, true
}

func isArrayPosition(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
