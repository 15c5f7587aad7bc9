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
package paginate

import (
	"context"
	"errors"
	"fmt"

	"github.com/codenotary/docschema/embedded/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PluginName   = "paginate"
	DefaultLimit = 10
)

var ErrIllegalArguments = errors.New("illegal arguments")

// Collection is the part of *mongo.Collection pagination reads through.
type Collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	EstimatedDocumentCount(ctx context.Context, opts ...*options.EstimatedDocumentCountOptions) (int64, error)
}

type Options struct {
	// UseEstimatedCount counts from collection metadata instead of running
	// the filter. Queries may override it.
	UseEstimatedCount bool

	// DefaultLimit is the page size of queries that do not set one.
	DefaultLimit int
}

// Plugin attaches a Paginator to a schema.
type Plugin struct {
	opts Options
}

func New(opts Options) *Plugin {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	return &Plugin{opts: opts}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Options() Options {
	return p.opts
}

func (p *Plugin) Apply(s *schema.Schema) error {
	s.SetStatic(PluginName, &Paginator{opts: p.opts})
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
	Filter     interface{}
	Projection interface{}
	Sort       bson.D

	// Page starts at 1.
	Page int
	// Limit is the page size, the plugin default when zero.
	Limit int

	// CountOnly skips reading documents.
	CountOnly bool
	// DisablePagination returns every matching document as a single page.
	DisablePagination bool

	// UseEstimatedCount overrides the plugin setting when not nil.
	UseEstimatedCount *bool
}

type Paginator struct {
	opts Options
}

func (p *Paginator) Options() Options {
	return p.opts
}

func (p *Paginator) Paginate(ctx context.Context, coll Collection, q Query) (*Result, error) {
	if coll == nil {
		return nil, fmt.Errorf("%w: nil collection", ErrIllegalArguments)
	}

	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = p.opts.DefaultLimit
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	useEstimatedCount := p.opts.UseEstimatedCount
	if q.UseEstimatedCount != nil {
		useEstimatedCount = *q.UseEstimatedCount
	}

	total, err := count(ctx, coll, filter, useEstimatedCount)
	if err != nil {
		return nil, err
	}

	if q.CountOnly {
		return NewResult(nil, total, 0, 1), nil
	}

	findOpts := options.Find()
	if len(q.Sort) > 0 {
		findOpts.SetSort(q.Sort)
	}
	if q.Projection != nil {
		findOpts.SetProjection(q.Projection)
	}
	if !q.DisablePagination {
		findOpts.SetSkip(int64((page - 1) * limit))
		findOpts.SetLimit(int64(limit))
	}

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}

	// All closes the cursor
	docs := make([]bson.M, 0, limit)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	if q.DisablePagination {
		return NewResult(docs, total, len(docs), 1), nil
	}

	return NewResult(docs, total, limit, page), nil
}

func count(ctx context.Context, coll Collection, filter interface{}, estimated bool) (int64, error) {
	if estimated {
		return coll.EstimatedDocumentCount(ctx)
	}
	return coll.CountDocuments(ctx, filter)
}
