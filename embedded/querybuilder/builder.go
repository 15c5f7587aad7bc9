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
package querybuilder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codenotary/docschema/embedded/schema"

	"go.mongodb.org/mongo-driver/bson"
)

// Where is a content query: paths mapped to {operator: value}, plus the
// "and" and "or" combinators holding lists of nested Where values.
type Where map[string]interface{}

const (
	OpEquals           = "equals"
	OpNotEquals        = "not_equals"
	OpIn               = "in"
	OpNotIn            = "not_in"
	OpAll              = "all"
	OpExists           = "exists"
	OpGreaterThan      = "greater_than"
	OpGreaterThanEqual = "greater_than_equal"
	OpLessThan         = "less_than"
	OpLessThanEqual    = "less_than_equal"
	OpLike             = "like"
	OpContains         = "contains"
	OpNear             = "near"
)

const (
	combinatorAnd = "and"
	combinatorOr  = "or"
)

const idPath = "id"

type buildOptions struct {
	locale string
}

type BuildOption func(*buildOptions)

// WithLocale queries localized paths in locale.
func WithLocale(locale string) BuildOption {
	return func(o *buildOptions) {
		o.locale = locale
	}
}

// Builder translates Where values into driver filters for one collection.
type Builder struct {
	slug   string
	schema *schema.Schema
}

func (b *Builder) CollectionSlug() string {
	return b.slug
}

// BuildQuery returns the filter matching where. An empty where matches
// every document.
func (b *Builder) BuildQuery(where Where, opts ...BuildOption) (bson.M, error) {
	o := &buildOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return b.build(where, o)
}

func (b *Builder) build(where map[string]interface{}, o *buildOptions) (bson.M, error) {
	var conds []bson.M

	for _, key := range sortedKeys(where) {
		value := where[key]

		switch strings.ToLower(key) {
		case combinatorAnd, combinatorOr:
			cond, err := b.combine(key, value, o)
			if err != nil {
				return nil, err
			}
			if cond != nil {
				conds = append(conds, cond)
			}
			continue
		}

		ops, ok := asMap(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects operators in collection %s", ErrInvalidValue, key, b.slug)
		}

		path, field, err := b.resolve(key, o)
		if err != nil {
			return nil, err
		}

		for _, op := range sortedKeys(ops) {
			cond, err := b.condition(path, field, op, ops[op])
			if err != nil {
				return nil, err
			}
			conds = append(conds, cond)
		}
	}

	switch len(conds) {
	case 0:
		return bson.M{}, nil
	case 1:
		return conds[0], nil
	}

	and := make(bson.A, len(conds))
	for i, c := range conds {
		and[i] = c
	}

	return bson.M{"$and": and}, nil
}

func (b *Builder) combine(key string, value interface{}, o *buildOptions) (bson.M, error) {
	items, ok := asList(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects a list in collection %s", ErrInvalidValue, key, b.slug)
	}

	var subs bson.A

	for _, item := range items {
		w, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a list of queries in collection %s", ErrInvalidValue, key, b.slug)
		}

		sub, err := b.build(w, o)
		if err != nil {
			return nil, err
		}
		if len(sub) > 0 {
			subs = append(subs, sub)
		}
	}

	if len(subs) == 0 {
		return nil, nil
	}

	return bson.M{"$" + strings.ToLower(key): subs}, nil
}

// resolve maps a query path onto its stored path and schema field.
func (b *Builder) resolve(path string, o *buildOptions) (string, *schema.Field, error) {
	if path == idPath || path == "_id" {
		return "_id", &schema.Field{Name: "_id", Type: schema.TypeObjectID}, nil
	}

	field, ok := b.schema.Path(path)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s in collection %s", ErrInvalidQueryPath, path, b.slug)
	}

	if !field.Localized {
		return path, field, nil
	}

	if o.locale != "" {
		if sub, ok := field.Lookup(o.locale); ok {
			return path + "." + o.locale, sub, nil
		}
		return "", nil, fmt.Errorf("%w: %s has no locale %s in collection %s", ErrInvalidQueryPath, path, o.locale, b.slug)
	}

	// without a locale the stored value is compared as a whole, typed after
	// its first translation
	if len(field.Fields) > 0 {
		return path, field.Fields[0], nil
	}

	return path, field, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case Where:
		return m, true
	case bson.M:
		return m, true
	case map[string]interface{}:
		return m, true
	}
	return nil, false
}

func asList(v interface{}) ([]interface{}, bool) {
	switch l := v.(type) {
	case []interface{}:
		return l, true
	case bson.A:
		return l, true
	case []Where:
		items := make([]interface{}, len(l))
		for i, w := range l {
			items[i] = w
		}
		return items, true
	case []map[string]interface{}:
		items := make([]interface{}, len(l))
		for i, w := range l {
			items[i] = w
		}
		return items, true
	}
	return nil, false
}
