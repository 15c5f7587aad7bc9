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
	"context"
	"sort"
	"time"

	"github.com/codenotary/docschema/embedded/aggregatepaginate"
	"github.com/codenotary/docschema/embedded/logger"
	"github.com/codenotary/docschema/embedded/metrics"
	"github.com/codenotary/docschema/embedded/paginate"
	"github.com/codenotary/docschema/embedded/querybuilder"
	"github.com/codenotary/docschema/embedded/schema"
	"github.com/codenotary/docschema/pkg/collection"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Model binds a collection schema to its driver collection.
type Model struct {
	config  *collection.Config
	schema  *schema.Schema
	name    string
	coll    Collection
	logger  logger.Logger
	metrics metrics.DatabaseMetrics

	// defaultLocale applies when a query names no locale.
	defaultLocale string
	// collectionName maps a joined collection slug to its driver collection.
	collectionName func(slug string) string
}

type FindArgs struct {
	Where querybuilder.Where
	// Sort defaults to the collection's default sort.
	Sort   string
	Page   int
	Limit  int
	Locale string

	DisablePagination bool
}

func (m *Model) Slug() string {
	return m.config.Slug
}

func (m *Model) Config() *collection.Config {
	return m.config
}

func (m *Model) Schema() *schema.Schema {
	return m.schema
}

// CollectionName is the name of the driver collection backing the model.
func (m *Model) CollectionName() string {
	return m.name
}

// EnsureIndexes creates the indexes of the schema and returns their names.
func (m *Model) EnsureIndexes(ctx context.Context) ([]string, error) {
	indexes := m.schema.IndexModels()
	if len(indexes) == 0 {
		return nil, nil
	}

	names, err := m.coll.CreateIndexes(ctx, indexes)
	if err != nil {
		return nil, err
	}

	m.metrics.AddIndexesCreated(len(names))
	m.logger.Debugf("indexes %v created on collection %s", names, m.config.Slug)

	return names, nil
}

// Find returns one page of the documents matching args.Where.
func (m *Model) Find(ctx context.Context, args FindArgs) (*paginate.Result, error) {
	p, ok := paginate.From(m.schema)
	if !ok {
		return nil, ErrPaginationNotSupported
	}

	filter, err := m.buildQuery(args)
	if err != nil {
		return nil, err
	}

	// estimated counts ignore the filter
	useEstimatedCount := len(filter) == 0 && p.Options().UseEstimatedCount

	start := time.Now()

	res, err := p.Paginate(ctx, m.coll, paginate.Query{
		Filter:            filter,
		Sort:              m.sort(args),
		Page:              args.Page,
		Limit:             args.Limit,
		DisablePagination: args.DisablePagination,
		UseEstimatedCount: &useEstimatedCount,
	})
	if err != nil {
		return nil, err
	}

	m.metrics.ObserveQuery("find", time.Since(start))

	return res, nil
}

// FindWithJoins is Find with the collection's joins resolved. It needs the
// aggregate pagination plugin, attached only to collections declaring joins.
func (m *Model) FindWithJoins(ctx context.Context, args FindArgs) (*paginate.Result, error) {
	p, ok := aggregatepaginate.From(m.schema)
	if !ok {
		return nil, ErrAggregationNotSupported
	}

	filter, err := m.buildQuery(args)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{}
	if len(filter) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: filter}})
	}
	pipeline = append(pipeline, joinStages(m.config.Joins, false, m.joinedCollection)...)
	pipeline = append(pipeline, joinStages(m.config.PolymorphicJoins, true, m.joinedCollection)...)

	start := time.Now()

	res, err := p.Paginate(ctx, m.coll, aggregatepaginate.Query{
		Pipeline:          pipeline,
		Sort:              m.sort(args),
		Page:              args.Page,
		Limit:             args.Limit,
		DisablePagination: args.DisablePagination,
	})
	if err != nil {
		return nil, err
	}

	m.metrics.ObserveQuery("aggregate", time.Since(start))

	return res, nil
}

func (m *Model) buildQuery(args FindArgs) (bson.M, error) {
	b, ok := querybuilder.From(m.schema)
	if !ok {
		return nil, ErrQueryNotSupported
	}

	var opts []querybuilder.BuildOption
	if locale := m.locale(args); locale != "" {
		opts = append(opts, querybuilder.WithLocale(locale))
	}

	return b.BuildQuery(args.Where, opts...)
}

// sort parses the requested or default sort. Localized paths are sorted by
// their translation in the query locale.
func (m *Model) sort(args FindArgs) bson.D {
	s := args.Sort
	if s == "" {
		s = m.config.DefaultSort
	}

	keys := parseSort(s)

	locale := m.locale(args)
	if locale == "" {
		return keys
	}

	for i, k := range keys {
		f, ok := m.schema.Path(k.Key)
		if !ok || !f.Localized {
			continue
		}
		if _, ok := f.Lookup(locale); ok {
			keys[i].Key = k.Key + "." + locale
		}
	}

	return keys
}

func (m *Model) locale(args FindArgs) string {
	if args.Locale != "" {
		return args.Locale
	}
	return m.defaultLocale
}

func (m *Model) joinedCollection(slug string) string {
	if m.collectionName == nil {
		return slug
	}
	return m.collectionName(slug)
}

// joinStages looks up, per joined collection, the documents whose join path
// points back at the current one. Polymorphic relationships store the id
// under "value".
func joinStages(joins map[string][]collection.Join, polymorphic bool, collectionName func(slug string) string) []bson.D {
	slugs := make([]string, 0, len(joins))
	for slug := range joins {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	var stages []bson.D

	for _, slug := range slugs {
		for _, j := range joins[slug] {
			foreignField := j.On
			if polymorphic {
				foreignField += ".value"
			}

			stages = append(stages, bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: collectionName(slug)},
				{Key: "localField", Value: "_id"},
				{Key: "foreignField", Value: foreignField},
				{Key: "as", Value: j.SchemaPath},
			}}})

			if j.Limit > 0 {
				stages = append(stages, bson.D{{Key: "$addFields", Value: bson.D{
					{Key: j.SchemaPath, Value: bson.D{{Key: "$slice", Value: bson.A{"$" + j.SchemaPath, j.Limit}}}},
				}}})
			}
		}
	}

	return stages
}
