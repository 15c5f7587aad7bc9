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
	"fmt"
	"sort"
	"sync"

	"github.com/codenotary/docschema/embedded/metrics"
	"github.com/codenotary/docschema/embedded/schema"
	"github.com/codenotary/docschema/pkg/app"
	"github.com/codenotary/docschema/pkg/collection"
	"github.com/codenotary/docschema/pkg/models"
)

// Adapter keeps one Model per registered collection.
type Adapter struct {
	db   Database
	app  *app.App
	opts *Options

	assembler *models.Assembler

	mutex  sync.RWMutex
	models map[string]*Model
}

// Connect dials the configured server and returns an adapter over its
// database.
func Connect(ctx context.Context, opts *Options, a *app.App) (*Adapter, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: app is required", ErrIllegalArguments)
	}

	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	db, err := dial(ctx, opts)
	if err != nil {
		return nil, err
	}

	adapter, err := NewAdapter(db, a, opts)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}

	a.Logger().Infof("connected to database %s", opts.database)

	return adapter, nil
}

func NewAdapter(db Database, a *app.App, opts *Options) (*Adapter, error) {
	if db == nil || a == nil {
		return nil, fmt.Errorf("%w: database and app are required", ErrIllegalArguments)
	}

	if opts == nil {
		opts = DefaultOptions()
	}

	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	return &Adapter{
		db:        db,
		app:       a,
		opts:      opts,
		assembler: models.NewAssembler(),
		models:    make(map[string]*Model),
	}, nil
}

// Init builds a model per collection. With index creation enabled, the
// indexes of each schema are created as well.
func (a *Adapter) Init(ctx context.Context, collections []*collection.Config) error {
	for _, c := range collections {
		_, err := a.Register(ctx, c)
		if err != nil {
			return err
		}
	}

	return nil
}

// Register builds the model of a single collection. Indexes are created
// before the model becomes visible through Model and Collections.
func (a *Adapter) Register(ctx context.Context, c *collection.Config) (*Model, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil collection", ErrIllegalArguments)
	}

	if a.registered(c.Slug) {
		return nil, fmt.Errorf("%w: %s", ErrModelAlreadyExists, c.Slug)
	}

	s, err := a.assembler.BuildCollectionSchema(c, a.app, a.opts.schemaOptions)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", c.Slug, err)
	}

	name := s.Options().String(schema.OptionCollection)
	if name == "" {
		name = c.Slug
	}

	var defaultLocale string
	if l := a.app.Config().Localization; l.Enabled() {
		defaultLocale = l.DefaultLocale
	}

	m := &Model{
		config:         c,
		schema:         s,
		name:           name,
		coll:           a.db.Collection(name),
		logger:         a.app.Logger(),
		metrics:        metrics.NewPrometheusDatabaseMetrics(c.Slug),
		defaultLocale:  defaultLocale,
		collectionName: a.collectionName,
	}

	if a.opts.ensureIndexes {
		_, err = m.EnsureIndexes(ctx)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", c.Slug, err)
		}
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	// a concurrent registration of the same slug may have won meanwhile
	if _, ok := a.models[c.Slug]; ok {
		return nil, fmt.Errorf("%w: %s", ErrModelAlreadyExists, c.Slug)
	}

	a.models[c.Slug] = m

	a.app.Logger().Infof("collection %s registered", c.Slug)

	return m, nil
}

func (a *Adapter) registered(slug string) bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	_, ok := a.models[slug]
	return ok
}

// collectionName resolves a slug to the driver collection of its model,
// the slug itself when no model is registered under it.
func (a *Adapter) collectionName(slug string) string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if m, ok := a.models[slug]; ok {
		return m.name
	}
	return slug
}

func (a *Adapter) Model(slug string) (*Model, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	m, ok := a.models[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, slug)
	}

	return m, nil
}

// Collections returns the registered slugs, sorted.
func (a *Adapter) Collections() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	slugs := make([]string, 0, len(a.models))
	for slug := range a.models {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	return slugs
}

func (a *Adapter) Close(ctx context.Context) error {
	return a.db.Close(ctx)
}
