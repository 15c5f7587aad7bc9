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

	"github.com/codenotary/docschema/embedded/aggregatepaginate"
	"github.com/codenotary/docschema/embedded/paginate"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection is what models need from a driver collection.
type Collection interface {
	paginate.Collection
	aggregatepaginate.Aggregator

	CreateIndexes(ctx context.Context, models []mongo.IndexModel) ([]string, error)
}

type Database interface {
	Collection(name string) Collection
	Close(ctx context.Context) error
}

type mongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

func (d *mongoDatabase) Collection(name string) Collection {
	return &mongoCollection{Collection: d.db.Collection(name)}
}

func (d *mongoDatabase) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

type mongoCollection struct {
	*mongo.Collection
}

func (c *mongoCollection) CreateIndexes(ctx context.Context, models []mongo.IndexModel) ([]string, error) {
	return c.Indexes().CreateMany(ctx, models)
}

func dial(ctx context.Context, opts *Options) (*mongoDatabase, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.uri))
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return &mongoDatabase{
		client: client,
		db:     client.Database(opts.database),
	}, nil
}
