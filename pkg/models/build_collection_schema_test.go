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
	"errors"
	"sync"
	"testing"

	"github.com/codenotary/docschema/embedded/aggregatepaginate"
	"github.com/codenotary/docschema/embedded/logger"
	"github.com/codenotary/docschema/embedded/metrics"
	"github.com/codenotary/docschema/embedded/paginate"
	"github.com/codenotary/docschema/embedded/querybuilder"
	"github.com/codenotary/docschema/embedded/schema"
	"github.com/codenotary/docschema/pkg/app"
	"github.com/codenotary/docschema/pkg/collection"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type metricsMock struct {
	m        sync.Mutex
	built    int
	errors   int
	compound int
	plugins  []string
}

func (m *metricsMock) IncSchemasBuilt() {
	m.m.Lock()
	defer m.m.Unlock()
	m.built++
}

func (m *metricsMock) IncBuildErrors() {
	m.m.Lock()
	defer m.m.Unlock()
	m.errors++
}

func (m *metricsMock) IncPluginsAttached(plugin string) {
	m.m.Lock()
	defer m.m.Unlock()
	m.plugins = append(m.plugins, plugin)
}

func (m *metricsMock) IncCompoundIndexes() {
	m.m.Lock()
	defer m.m.Unlock()
	m.compound++
}

// recorder substitutes every collaborator of the assembler and keeps what
// they were called with.
type recorder struct {
	calls []string

	buildOpts   []BuildSchemaOptions
	buildFields [][]*collection.Field
	buildApps   []*app.App

	paginateOpts []paginate.Options
	queryOpts    []querybuilder.Options

	buildErr error
	queryErr error
	applyErr error

	metrics *metricsMock
}

func (r *recorder) plugin(name string) schema.Plugin {
	return schema.PluginFunc{
		PluginName: name,
		Fn: func(s *schema.Schema) error {
			r.calls = append(r.calls, "apply:"+name)
			if name == querybuilder.PluginName {
				return r.applyErr
			}
			return nil
		},
	}
}

func (r *recorder) assembler() *Assembler {
	r.metrics = &metricsMock{}

	return NewAssembler().
		WithSchemaBuilder(func(a *app.App, fields []*collection.Field, opts BuildSchemaOptions) (*schema.Schema, error) {
			r.calls = append(r.calls, "build")
			r.buildOpts = append(r.buildOpts, opts)
			r.buildFields = append(r.buildFields, fields)
			r.buildApps = append(r.buildApps, a)
			if r.buildErr != nil {
				return nil, r.buildErr
			}
			return schema.New(nil, opts.Options), nil
		}).
		WithPaginatePluginFactory(func(opts paginate.Options) schema.Plugin {
			r.calls = append(r.calls, "paginate")
			r.paginateOpts = append(r.paginateOpts, opts)
			return r.plugin(paginate.PluginName)
		}).
		WithQueryPluginFactory(func(opts querybuilder.Options) (schema.Plugin, error) {
			r.calls = append(r.calls, "buildQuery")
			r.queryOpts = append(r.queryOpts, opts)
			if r.queryErr != nil {
				return nil, r.queryErr
			}
			return r.plugin(querybuilder.PluginName), nil
		}).
		WithAggregatePaginatePluginFactory(func() schema.Plugin {
			r.calls = append(r.calls, "aggregatePaginate")
			return r.plugin(aggregatepaginate.PluginName)
		}).
		WithMetrics(func(slug string) metrics.SchemaMetrics {
			return r.metrics
		})
}

func newApp(cfg app.Config) *app.App {
	return app.New(cfg, logger.NewMemoryLogger())
}

func boolPtr(b bool) *bool {
	return &b
}

func TestBuildCollectionSchemaDraftsFlag(t *testing.T) {
	for _, d := range []struct {
		name     string
		versions *collection.Versions
		drafts   bool
	}{
		{name: "absent", versions: nil},
		{name: "boolean false", versions: &collection.Versions{}},
		{name: "boolean true", versions: &collection.Versions{Enabled: true}},
		{name: "object without drafts", versions: &collection.Versions{Enabled: true, Object: true}},
		{name: "object with drafts false", versions: &collection.Versions{Enabled: true, Object: true, Drafts: collection.Drafts{}}},
		{name: "object with drafts true", versions: &collection.Versions{Enabled: true, Object: true, Drafts: collection.Drafts{Enabled: true}}, drafts: true},
		{name: "object with drafts object", versions: &collection.Versions{Enabled: true, Object: true, Drafts: collection.Drafts{Enabled: true, Autosave: true}}, drafts: true},
	} {
		t.Run(d.name, func(t *testing.T) {
			r := &recorder{}

			_, err := r.assembler().BuildCollectionSchema(&collection.Config{Slug: "posts", Versions: d.versions}, newApp(app.Config{}), nil)
			require.NoError(t, err)
			require.Len(t, r.buildOpts, 1)
			require.Equal(t, d.drafts, r.buildOpts[0].DraftsEnabled)
		})
	}
}

func TestBuildCollectionSchemaOptions(t *testing.T) {
	for _, d := range []struct {
		name       string
		timestamps *bool
		overrides  schema.Options
		expected   schema.Options
	}{
		{
			name:     "timestamps default on",
			expected: schema.Options{schema.OptionMinimize: false, schema.OptionTimestamps: true},
		},
		{
			name:       "timestamps explicitly on",
			timestamps: boolPtr(true),
			expected:   schema.Options{schema.OptionMinimize: false, schema.OptionTimestamps: true},
		},
		{
			name:       "timestamps explicitly off",
			timestamps: boolPtr(false),
			expected:   schema.Options{schema.OptionMinimize: false, schema.OptionTimestamps: false},
		},
		{
			name:       "override turns timestamps on",
			timestamps: boolPtr(false),
			overrides:  schema.Options{schema.OptionTimestamps: true},
			expected:   schema.Options{schema.OptionMinimize: false, schema.OptionTimestamps: true},
		},
		{
			name:      "override turns timestamps off",
			overrides: schema.Options{schema.OptionTimestamps: false},
			expected:  schema.Options{schema.OptionMinimize: false, schema.OptionTimestamps: false},
		},
		{
			name:      "overrides win and extend",
			overrides: schema.Options{schema.OptionMinimize: true, schema.OptionCollection: "custom_posts"},
			expected: schema.Options{
				schema.OptionMinimize:   true,
				schema.OptionTimestamps: true,
				schema.OptionCollection: "custom_posts",
			},
		},
	} {
		t.Run(d.name, func(t *testing.T) {
			r := &recorder{}

			s, err := r.assembler().BuildCollectionSchema(&collection.Config{Slug: "posts", Timestamps: d.timestamps}, newApp(app.Config{}), d.overrides)
			require.NoError(t, err)
			require.Equal(t, d.expected, r.buildOpts[0].Options)
			require.Equal(t, d.expected, s.Options())
		})
	}
}

func TestBuildCollectionSchemaDoesNotMutateOverrides(t *testing.T) {
	r := &recorder{}

	overrides := schema.Options{"strict": false}

	_, err := r.assembler().BuildCollectionSchema(&collection.Config{Slug: "posts"}, newApp(app.Config{}), overrides)
	require.NoError(t, err)
	require.Equal(t, schema.Options{"strict": false}, overrides)
}

func TestBuildCollectionSchemaForwardsInputs(t *testing.T) {
	r := &recorder{}

	fields := []*collection.Field{{Name: "title", Type: collection.FieldText}}
	a := newApp(app.Config{IndexSortableFields: true})

	_, err := r.assembler().BuildCollectionSchema(&collection.Config{Slug: "posts", Fields: fields}, a, nil)
	require.NoError(t, err)

	require.True(t, r.buildOpts[0].IndexSortableFields)
	require.Equal(t, fields, r.buildFields[0])
	require.Same(t, a, r.buildApps[0])

	r = &recorder{}

	_, err = r.assembler().BuildCollectionSchema(&collection.Config{Slug: "posts"}, newApp(app.Config{}), nil)
	require.NoError(t, err)
	require.False(t, r.buildOpts[0].IndexSortableFields)
}

func TestBuildCollectionSchemaCompoundIndex(t *testing.T) {
	for _, d := range []struct {
		name     string
		upload   *collection.Upload
		expected []schema.Index
	}{
		{name: "no upload"},
		{name: "upload flag", upload: &collection.Upload{Enabled: true}},
		{name: "empty list", upload: &collection.Upload{Enabled: true, FilenameCompoundIndex: []string{}}},
		{
			name:   "two fields",
			upload: &collection.Upload{Enabled: true, FilenameCompoundIndex: []string{"a", "b"}},
			expected: []schema.Index{{
				Keys:    bson.D{{Key: "a", Value: 1}, {Key: "b", Value: 1}},
				Options: schema.IndexOptions{Unique: true},
			}},
		},
		{
			name:   "repeated field",
			upload: &collection.Upload{Enabled: true, FilenameCompoundIndex: []string{"b", "a", "b"}},
			expected: []schema.Index{{
				Keys:    bson.D{{Key: "b", Value: 1}, {Key: "a", Value: 1}},
				Options: schema.IndexOptions{Unique: true},
			}},
		},
	} {
		t.Run(d.name, func(t *testing.T) {
			r := &recorder{}

			s, err := r.assembler().BuildCollectionSchema(&collection.Config{Slug: "media", Upload: d.upload}, newApp(app.Config{}), nil)
			require.NoError(t, err)

			if d.expected == nil {
				require.Empty(t, s.CompoundIndexes())
				require.Zero(t, r.metrics.compound)
				return
			}

			require.Equal(t, d.expected, s.CompoundIndexes())
			require.Equal(t, 1, r.metrics.compound)
		})
	}
}

func TestBuildCollectionSchemaPlugins(t *testing.T) {
	join := []collection.Join{{SchemaPath: "relatedComments", On: "post"}}

	for _, d := range []struct {
		name      string
		joins     map[string][]collection.Join
		polyJoins map[string][]collection.Join
		plugins   []string
	}{
		{
			name:    "no joins",
			plugins: []string{paginate.PluginName, querybuilder.PluginName},
		},
		{
			name:      "empty joins",
			joins:     map[string][]collection.Join{},
			polyJoins: map[string][]collection.Join{},
			plugins:   []string{paginate.PluginName, querybuilder.PluginName},
		},
		{
			name:    "joins",
			joins:   map[string][]collection.Join{"comments": join},
			plugins: []string{paginate.PluginName, querybuilder.PluginName, aggregatepaginate.PluginName},
		},
		{
			name:      "polymorphic joins",
			polyJoins: map[string][]collection.Join{"comments": join},
			plugins:   []string{paginate.PluginName, querybuilder.PluginName, aggregatepaginate.PluginName},
		},
		{
			name:      "both",
			joins:     map[string][]collection.Join{"comments": join},
			polyJoins: map[string][]collection.Join{"comments": join},
			plugins:   []string{paginate.PluginName, querybuilder.PluginName, aggregatepaginate.PluginName},
		},
	} {
		t.Run(d.name, func(t *testing.T) {
			r := &recorder{}

			s, err := r.assembler().BuildCollectionSchema(&collection.Config{
				Slug:             "posts",
				Joins:            d.joins,
				PolymorphicJoins: d.polyJoins,
			}, newApp(app.Config{}), nil)
			require.NoError(t, err)

			require.Equal(t, d.plugins, s.Plugins())
			require.Equal(t, d.plugins, r.metrics.plugins)

			require.Equal(t, []paginate.Options{{UseEstimatedCount: true}}, r.paginateOpts)
			require.Equal(t, []querybuilder.Options{{CollectionSlug: "posts"}}, r.queryOpts)
			require.Equal(t, 1, r.metrics.built)
		})
	}
}

func TestBuildCollectionSchemaOrder(t *testing.T) {
	r := &recorder{}

	_, err := r.assembler().BuildCollectionSchema(&collection.Config{
		Slug:   "media",
		Upload: &collection.Upload{Enabled: true, FilenameCompoundIndex: []string{"filename"}},
		Joins:  map[string][]collection.Join{"comments": {{SchemaPath: "c", On: "m"}}},
	}, newApp(app.Config{}), nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		"build",
		"paginate", "apply:" + paginate.PluginName,
		"buildQuery", "apply:" + querybuilder.PluginName,
		"aggregatePaginate", "apply:" + aggregatepaginate.PluginName,
	}, r.calls)
}

func TestBuildCollectionSchemaErrors(t *testing.T) {
	_, err := NewAssembler().BuildCollectionSchema(nil, newApp(app.Config{}), nil)
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = NewAssembler().BuildCollectionSchema(&collection.Config{Slug: "posts"}, nil, nil)
	require.ErrorIs(t, err, ErrIllegalArguments)

	t.Run("builder error", func(t *testing.T) {
		r := &recorder{buildErr: errors.New("malformed fields")}

		_, err := r.assembler().BuildCollectionSchema(&collection.Config{Slug: "posts"}, newApp(app.Config{}), nil)
		require.Same(t, r.buildErr, err)
		require.Equal(t, []string{"build"}, r.calls)
		require.Equal(t, 1, r.metrics.errors)
		require.Zero(t, r.metrics.built)
	})

	t.Run("query plugin factory error", func(t *testing.T) {
		r := &recorder{queryErr: errors.New("bad slug")}

		_, err := r.assembler().BuildCollectionSchema(&collection.Config{Slug: "posts"}, newApp(app.Config{}), nil)
		require.Same(t, r.queryErr, err)
		require.Equal(t, 1, r.metrics.errors)
	})

	t.Run("plugin apply error", func(t *testing.T) {
		r := &recorder{applyErr: errors.New("apply failed")}

		_, err := r.assembler().BuildCollectionSchema(&collection.Config{
			Slug:  "posts",
			Joins: map[string][]collection.Join{"comments": {{SchemaPath: "c", On: "p"}}},
		}, newApp(app.Config{}), nil)
		require.Same(t, r.applyErr, err)
		require.NotContains(t, r.calls, "aggregatePaginate")
	})

	t.Run("default query plugin rejects empty slug", func(t *testing.T) {
		_, err := BuildCollectionSchema(&collection.Config{}, newApp(app.Config{}), nil)
		require.ErrorIs(t, err, querybuilder.ErrIllegalArguments)
	})

	t.Run("default builder error", func(t *testing.T) {
		_, err := BuildCollectionSchema(&collection.Config{
			Slug:   "posts",
			Fields: []*collection.Field{{Name: "x", Type: "unknown"}},
		}, newApp(app.Config{}), nil)
		require.ErrorIs(t, err, ErrUnsupportedFieldType)
	})
}

func TestBuildCollectionSchemaWithoutJoins(t *testing.T) {
	s, err := BuildCollectionSchema(&collection.Config{
		Slug:             "posts",
		Fields:           []*collection.Field{},
		Versions:         &collection.Versions{},
		Upload:           &collection.Upload{},
		Joins:            map[string][]collection.Join{},
		PolymorphicJoins: map[string][]collection.Join{},
	}, newApp(app.Config{}), nil)
	require.NoError(t, err)

	require.Empty(t, s.CompoundIndexes())
	require.False(t, s.Minimize())
	require.True(t, s.Timestamps())

	p, ok := paginate.From(s)
	require.True(t, ok)
	require.True(t, p.Options().UseEstimatedCount)

	b, ok := querybuilder.From(s)
	require.True(t, ok)
	require.Equal(t, "posts", b.CollectionSlug())

	_, ok = aggregatepaginate.From(s)
	require.False(t, ok)
	require.False(t, s.HasPlugin(aggregatepaginate.PluginName))
}

func TestBuildCollectionSchemaUploadWithJoins(t *testing.T) {
	s, err := BuildCollectionSchema(&collection.Config{
		Slug: "media",
		Fields: []*collection.Field{
			{Name: "filename", Type: collection.FieldText},
			{Name: "sizeKey", Type: collection.FieldText},
		},
		Upload: &collection.Upload{Enabled: true, FilenameCompoundIndex: []string{"filename", "sizeKey"}},
		Joins:  map[string][]collection.Join{"related": {{SchemaPath: "usages", On: "media"}}},
	}, newApp(app.Config{}), nil)
	require.NoError(t, err)

	require.Equal(t, []schema.Index{{
		Keys:    bson.D{{Key: "filename", Value: 1}, {Key: "sizeKey", Value: 1}},
		Options: schema.IndexOptions{Unique: true},
	}}, s.CompoundIndexes())

	models := s.IndexModels()
	require.Len(t, models, 1)
	require.Equal(t, "filename_1_sizeKey_1", *models[0].Options.Name)
	require.True(t, *models[0].Options.Unique)

	_, ok := paginate.From(s)
	require.True(t, ok)

	b, ok := querybuilder.From(s)
	require.True(t, ok)
	require.Equal(t, "media", b.CollectionSlug())

	_, ok = aggregatepaginate.From(s)
	require.True(t, ok)

	require.Equal(t, []string{paginate.PluginName, querybuilder.PluginName, aggregatepaginate.PluginName}, s.Plugins())
}

func TestBuildCollectionSchemaConcurrently(t *testing.T) {
	a := newApp(app.Config{IndexSortableFields: true})

	var wg sync.WaitGroup
	errs := make(chan error, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := BuildCollectionSchema(&collection.Config{
				Slug:   "posts",
				Fields: []*collection.Field{{Name: "title", Type: collection.FieldText}},
			}, a, nil)
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
