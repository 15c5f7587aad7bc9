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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CreatedAtField = "createdAt"
	UpdatedAtField = "updatedAt"
)

// Schema describes the documents of one collection: their paths, the indexes
// requested over them and the plugins that extend the collection model.
// A Schema is not safe for concurrent mutation.
type Schema struct {
	fields  []*Field
	options Options
	indexes []Index
	plugins []string
	statics map[string]interface{}
}

// New creates a schema over fields. When the timestamps option is set the
// createdAt and updatedAt paths are added unless already declared.
func New(fields []*Field, opts Options) *Schema {
	s := &Schema{
		options: opts.Merge(nil),
		statics: make(map[string]interface{}),
	}

	s.fields = append(s.fields, fields...)

	if s.Timestamps() {
		for _, name := range []string{CreatedAtField, UpdatedAtField} {
			if _, ok := s.Path(name); !ok {
				s.fields = append(s.fields, &Field{Name: name, Type: TypeDate})
			}
		}
	}

	return s
}

func (s *Schema) Fields() []*Field {
	return s.fields
}

// Options returns a copy of the options the schema was created with.
func (s *Schema) Options() Options {
	return s.options.Merge(nil)
}

func (s *Schema) Minimize() bool {
	return s.options.Bool(OptionMinimize, true)
}

func (s *Schema) Timestamps() bool {
	return s.options.Bool(OptionTimestamps, false)
}

// Add appends a top level path.
func (s *Schema) Add(f *Field) error {
	if f == nil || f.Name == "" {
		return fmt.Errorf("%w: field must have a name", ErrIllegalArguments)
	}

	if _, ok := s.Path(f.Name); ok {
		return fmt.Errorf("%w (%s)", ErrFieldAlreadyExists, f.Name)
	}

	s.fields = append(s.fields, f)
	return nil
}

// Path resolves a dotted path, e.g. "meta.title" or "items.0.label".
func (s *Schema) Path(path string) (*Field, bool) {
	if path == "" {
		return nil, false
	}
	return lookup(s.fields, path)
}

// Index records an index request over keys. Requests are kept as made.
func (s *Schema) Index(keys bson.D, opts IndexOptions) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: index without keys", ErrIllegalArguments)
	}

	s.indexes = append(s.indexes, Index{Keys: keys, Options: opts})
	return nil
}

// Indexes returns the field level indexes followed by the schema level ones.
func (s *Schema) Indexes() []Index {
	indexes := fieldIndexes("", s.fields)
	return append(indexes, s.indexes...)
}

// CompoundIndexes returns only the requests made through Index.
func (s *Schema) CompoundIndexes() []Index {
	indexes := make([]Index, len(s.indexes))
	copy(indexes, s.indexes)
	return indexes
}

func (s *Schema) IndexModels() []mongo.IndexModel {
	indexes := s.Indexes()

	models := make([]mongo.IndexModel, len(indexes))
	for i, idx := range indexes {
		models[i] = idx.Model()
	}

	return models
}

// Plugin applies p and records it. A plugin whose Apply fails is not recorded.
func (s *Schema) Plugin(p Plugin) error {
	if p == nil {
		return fmt.Errorf("%w: nil plugin", ErrIllegalArguments)
	}

	if err := p.Apply(s); err != nil {
		return err
	}

	s.plugins = append(s.plugins, p.Name())
	return nil
}

// Plugins returns the attached plugin names in attach order.
func (s *Schema) Plugins() []string {
	plugins := make([]string, len(s.plugins))
	copy(plugins, s.plugins)
	return plugins
}

func (s *Schema) HasPlugin(name string) bool {
	for _, p := range s.plugins {
		if p == name {
			return true
		}
	}
	return false
}

// SetStatic publishes a model level capability under name.
func (s *Schema) SetStatic(name string, v interface{}) {
	s.statics[name] = v
}

func (s *Schema) Static(name string) (interface{}, bool) {
	v, ok := s.statics[name]
	return v, ok
}
