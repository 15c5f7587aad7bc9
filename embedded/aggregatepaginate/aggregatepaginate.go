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
package aggregatepaginate

import (
	"context"
	"errors"
	"fmt"

	"github.com/codenotary/docschema/embedded/paginate"
	"github.com/codenotary/docschema/embedded/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PluginName = "aggregatePaginate"

var ErrIllegalArguments = errors.New("illegal arguments")

// Aggregator is the part of *mongo.Collection aggregate pagination runs on.
type Aggregator interface {
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
}

// Plugin attaches a Paginator to a schema. It takes no configuration.
type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Apply(s *schema.Schema) error {
	s.SetStatic(PluginName, &Paginator{})
	return nil
}

// From returns the Paginator attached to s, if any.
func From(s *schema.Schema) (*Paginator, bool) {
	v, ok := s.Static(PluginName)
	if !ok {
		return nil, false
	}

	p, ok := v.(*Paginator)
	return p, ok
}

type Query struct {
	Pipeline mongo.Pipeline
	Sort     bson.D

	// Page starts at 1.
	Page int
	// Limit is the page size, paginate.DefaultLimit when zero.
	Limit int

	CountOnly         bool
	DisablePagination bool
	AllowDiskUse      bool
}

type Paginator struct{}

type facet struct {
	Docs      []bson.M `bson:"docs"`
	TotalDocs []struct {
		Count int64 `bson:"count"`
	} `bson:"totalDocs"`
}

// Paginate runs q.Pipeline once, reading the page and the total count
// through a $facet stage.
func (p *Paginator) Paginate(ctx context.Context, coll Aggregator, q Query) (*paginate.Result, error) {
	if coll == nil {
		return nil, fmt.Errorf("%w: nil collection", ErrIllegalArguments)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = paginate.DefaultLimit
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	aggOpts := options.Aggregate()
	if q.AllowDiskUse {
		aggOpts.SetAllowDiskUse(true)
	}

	pipeline := make(mongo.Pipeline, 0, len(q.Pipeline)+2)
	pipeline = append(pipeline, q.Pipeline...)

	if q.CountOnly {
		pipeline = append(pipeline, bson.D{{Key: "$count", Value: "count"}})

		var counts []struct {
			Count int64 `bson:"count"`
		}
		if err := run(ctx, coll, pipeline, aggOpts, &counts); err != nil {
			return nil, err
		}

		var total int64
		if len(counts) > 0 {
			total = counts[0].Count
		}

		return paginate.NewResult(nil, total, 0, 1), nil
	}

	if len(q.Sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: q.Sort}})
	}

	docsStages := bson.A{bson.D{{Key: "$skip", Value: 0}}}
	if !q.DisablePagination {
		docsStages = bson.A{
			bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
			bson.D{{Key: "$limit", Value: int64(limit)}},
		}
	}

	pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.D{
		{Key: "docs", Value: docsStages},
		{Key: "totalDocs", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
	}}})

	var facets []facet
	if err := run(ctx, coll, pipeline, aggOpts, &facets); err != nil {
		return nil, err
	}

	var docs []bson.M
	var total int64

	if len(facets) > 0 {
		docs = facets[0].Docs
		if len(facets[0].TotalDocs) > 0 {
			total = facets[0].TotalDocs[0].Count
		}
	}

	if q.DisablePagination {
		return paginate.NewResult(docs, total, len(docs), 1), nil
	}

	return paginate.NewResult(docs, total, limit, page), nil
}

func run(ctx context.Context, coll Aggregator, pipeline mongo.Pipeline, opts *options.AggregateOptions, out interface{}) error {
	cursor, err := coll.Aggregate(ctx, pipeline, opts)
	if err != nil {
		return err
	}

	return cursor.All(ctx, out)
}
