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
package models

import (
	"fmt"

	"github.com/codenotary/docschema/embedded/aggregatepaginate"
	"github.com/codenotary/docschema/embedded/metrics"
	"github.com/codenotary/docschema/embedded/paginate"
	"github.com/codenotary/docschema/embedded/querybuilder"
	"github.com/codenotary/docschema/embedded/schema"
	"github.com/codenotary/docschema/pkg/app"
	"github.com/codenotary/docschema/pkg/collection"

	"go.mongodb.org/mongo-driver/bson"
)

// SchemaBuilder translates field configuration into a schema.
type SchemaBuilder func(a *app.App, fields []*collection.Field, opts BuildSchemaOptions) (*schema.Schema, error)

type QueryPluginFactory func(opts querybuilder.Options) (schema.Plugin, error)

type PaginatePluginFactory func(opts paginate.Options) schema.Plugin

type AggregatePaginatePluginFactory func() schema.Plugin

// Assembler builds collection schemas out of its collaborators. The zero
// value is not usable, use NewAssembler.
type Assembler struct {
	buildSchema       SchemaBuilder
	queryPlugin       QueryPluginFactory
	paginatePlugin    PaginatePluginFactory
	aggregatePaginate AggregatePaginatePluginFactory
	metrics           func(slug string) metrics.SchemaMetrics
}

func NewAssembler() *Assembler {
	return &Assembler{
		buildSchema: BuildSchema,
		queryPlugin: func(opts querybuilder.Options) (schema.Plugin, error) {
			p, err := querybuilder.New(opts)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		paginatePlugin: func(opts paginate.Options) schema.Plugin {
			return paginate.New(opts)
		},
		aggregatePaginate: func() schema.Plugin {
			return aggregatepaginate.New()
		},
		metrics: metrics.NewPrometheusSchemaMetrics,
	}
}

func (a *Assembler) WithSchemaBuilder(b SchemaBuilder) *Assembler {
	a.buildSchema = b
	return a
}

func (a *Assembler) WithQueryPluginFactory(f QueryPluginFactory) *Assembler {
	a.queryPlugin = f
	return a
}

func (a *Assembler) WithPaginatePluginFactory(f PaginatePluginFactory) *Assembler {
	a.paginatePlugin = f
	return a
}

func (a *Assembler) WithAggregatePaginatePluginFactory(f AggregatePaginatePluginFactory) *Assembler {
	a.aggregatePaginate = f
	return a
}

func (a *Assembler) WithMetrics(f func(slug string) metrics.SchemaMetrics) *Assembler {
	a.metrics = f
	return a
}

var defaultAssembler = NewAssembler()

// BuildCollectionSchema builds the schema of c with the default collaborators.
func BuildCollectionSchema(c *collection.Config, a *app.App, overrides schema.Options) (*schema.Schema, error) {
	return defaultAssembler.BuildCollectionSchema(c, a, overrides)
}

// BuildCollectionSchema builds the schema of c, then adds, in this order, the
// upload compound index, pagination, the query builder and, for collections
// with joins, aggregate pagination. Collaborator errors are returned as is.
func (a *Assembler) BuildCollectionSchema(c *collection.Config, ap *app.App, overrides schema.Options) (*schema.Schema, error) {
	if c == nil || ap == nil {
		return nil, fmt.Errorf("%w: collection and app are required", ErrIllegalArguments)
	}

	m := a.metrics(c.Slug)

	s, err := a.build(c, ap, overrides, m)
	if err != nil {
		m.IncBuildErrors()
		ap.Logger().Warningf("schema of collection %s could not be built: %v", c.Slug, err)
		return nil, err
	}

	m.IncSchemasBuilt()
	ap.Logger().Debugf("schema of collection %s built with plugins %v", c.Slug, s.Plugins())

	return s, nil
}

func (a *Assembler) build(c *collection.Config, ap *app.App, overrides schema.Options, m metrics.SchemaMetrics) (*schema.Schema, error) {
	opts := schema.Options{
		schema.OptionMinimize:   false,
		schema.OptionTimestamps: c.TimestampsEnabled(),
	}

	s, err := a.buildSchema(ap, c.Fields, BuildSchemaOptions{
		DraftsEnabled:       c.DraftsEnabled(),
		IndexSortableFields: ap.Config().IndexSortableFields,
		Options:             opts.Merge(overrides),
	})
	if err != nil {
		return nil, err
	}

	if keys := compoundIndexKeys(c.FilenameCompoundIndex()); len(keys) > 0 {
		err = s.Index(keys, schema.IndexOptions{Unique: true})
		if err != nil {
			return nil, err
		}
		m.IncCompoundIndexes()
	}

	err = a.attach(s, a.paginatePlugin(paginate.Options{UseEstimatedCount: true}), m)
	if err != nil {
		return nil, err
	}

	qp, err := a.queryPlugin(querybuilder.Options{CollectionSlug: c.Slug})
	if err != nil {
		return nil, err
	}

	err = a.attach(s, qp, m)
	if err != nil {
		return nil, err
	}

	if c.HasJoins() {
		err = a.attach(s, a.aggregatePaginate(), m)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (a *Assembler) attach(s *schema.Schema, p schema.Plugin, m metrics.SchemaMetrics) error {
	err := s.Plugin(p)
	if err != nil {
		return err
	}

	m.IncPluginsAttached(p.Name())
	return nil
}

// compoundIndexKeys folds field names into ascending keys. A repeated name
// keeps its first position.
func compoundIndexKeys(fields []string) bson.D {
	keys := make(bson.D, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}

		keys = append(keys, bson.E{Key: f, Value: 1})
	}

	return keys
}
