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
	"testing"

	"github.com/codenotary/docschema/embedded/schema"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type aggregatorMock struct {
	results  []interface{}
	err      error
	pipeline mongo.Pipeline
	opts     *options.AggregateOptions
}

func (a *aggregatorMock) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	if a.err != nil {
		return nil, a.err
	}

	a.pipeline = pipeline.(mongo.Pipeline)
	if len(opts) > 0 {
		a.opts = opts[0]
	}

	return mongo.NewCursorFromDocuments(a.results, nil, nil)
}

func attach(t *testing.T) *Paginator {
	s := schema.New(nil, nil)

	_, ok := From(s)
	require.False(t, ok)

	require.NoError(t, s.Plugin(New()))
	require.Equal(t, []string{PluginName}, s.Plugins())

	p, ok := From(s)
	require.True(t, ok)
	return p
}

func TestPaginate(t *testing.T) {
	p := attach(t)

	coll := &aggregatorMock{results: []interface{}{
		bson.M{
			"docs":      bson.A{bson.M{"n": int32(1)}, bson.M{"n": int32(2)}},
			"totalDocs": bson.A{bson.M{"count": int32(12)}},
		},
	}}

	lookup := bson.D{{Key: "$lookup", Value: bson.D{{Key: "from", Value: "comments"}}}}

	res, err := p.Paginate(context.Background(), coll, Query{
		Pipeline:     mongo.Pipeline{lookup},
		Sort:         bson.D{{Key: "createdAt", Value: -1}},
		Page:         2,
		Limit:        5,
		AllowDiskUse: true,
	})
	require.NoError(t, err)

	require.Len(t, coll.pipeline, 3)
	require.Equal(t, lookup, coll.pipeline[0])
	require.Equal(t, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}}, coll.pipeline[1])
	require.Equal(t, bson.D{{Key: "$facet", Value: bson.D{
		{Key: "docs", Value: bson.A{
			bson.D{{Key: "$skip", Value: int64(5)}},
			bson.D{{Key: "$limit", Value: int64(5)}},
		}},
		{Key: "totalDocs", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
	}}}, coll.pipeline[2])
	require.True(t, *coll.opts.AllowDiskUse)

	require.Len(t, res.Docs, 2)
	require.Equal(t, int64(12), res.TotalDocs)
	require.Equal(t, 3, res.TotalPages)
	require.Equal(t, 2, res.Page)
	require.Equal(t, 6, res.PagingCounter)
	require.True(t, res.HasPrevPage)
	require.True(t, res.HasNextPage)
}

func TestPaginateEmpty(t *testing.T) {
	p := attach(t)

	res, err := p.Paginate(context.Background(), &aggregatorMock{}, Query{})
	require.NoError(t, err)
	require.Empty(t, res.Docs)
	require.Zero(t, res.TotalDocs)
	require.Equal(t, 1, res.TotalPages)
	require.Equal(t, 10, res.Limit)
}

func TestPaginateCountOnly(t *testing.T) {
	p := attach(t)

	coll := &aggregatorMock{results: []interface{}{bson.M{"count": int32(7)}}}

	res, err := p.Paginate(context.Background(), coll, Query{CountOnly: true})
	require.NoError(t, err)
	require.Equal(t, mongo.Pipeline{bson.D{{Key: "$count", Value: "count"}}}, coll.pipeline)
	require.Equal(t, int64(7), res.TotalDocs)
	require.Empty(t, res.Docs)
}

func TestPaginateDisabled(t *testing.T) {
	p := attach(t)

	coll := &aggregatorMock{results: []interface{}{
		bson.M{
			"docs":      bson.A{bson.M{"n": int32(1)}, bson.M{"n": int32(2)}, bson.M{"n": int32(3)}},
			"totalDocs": bson.A{bson.M{"count": int32(3)}},
		},
	}}

	res, err := p.Paginate(context.Background(), coll, Query{DisablePagination: true, Page: 3})
	require.NoError(t, err)
	require.Equal(t, 3, res.Limit)
	require.Equal(t, 1, res.Page)
	require.False(t, res.HasNextPage)
}

func TestPaginateErrors(t *testing.T) {
	p := attach(t)

	_, err := p.Paginate(context.Background(), nil, Query{})
	require.ErrorIs(t, err, ErrIllegalArguments)

	errAgg := errors.New("aggregate failed")
	_, err = p.Paginate(context.Background(), &aggregatorMock{err: errAgg}, Query{})
	require.ErrorIs(t, err, errAgg)
}
