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
	"testing"

	"github.com/codenotary/docschema/embedded/schema"
	"github.com/codenotary/docschema/pkg/app"
	"github.com/codenotary/docschema/pkg/collection"
	"github.com/stretchr/testify/require"
)

func buildFields(t *testing.T, cfg app.Config, opts BuildSchemaOptions, fields ...*collection.Field) *schema.Schema {
	s, err := BuildSchema(newApp(cfg), fields, opts)
	require.NoError(t, err)
	return s
}

func path(t *testing.T, s *schema.Schema, p string) *schema.Field {
	f, ok := s.Path(p)
	require.True(t, ok, "path %s", p)
	return f
}

func TestBuildSchemaScalars(t *testing.T) {
	s := buildFields(t, app.Config{}, BuildSchemaOptions{},
		&collection.Field{Name: "title", Type: collection.FieldText, Required: true},
		&collection.Field{Name: "body", Type: collection.FieldTextarea},
		&collection.Field{Name: "contact", Type: collection.FieldEmail},
		&collection.Field{Name: "snippet", Type: collection.FieldCode},
		&collection.Field{Name: "layout", Type: collection.FieldRadio, Options: []collection.Option{{Value: "wide"}, {Value: "narrow"}}},
		&collection.Field{Name: "status", Type: collection.FieldSelect, Options: []collection.Option{{Value: "a"}, {Value: "b"}}, DefaultValue: "a"},
		&collection.Field{Name: "categories", Type: collection.FieldSelect, HasMany: true, Options: []collection.Option{{Value: "x"}}},
		&collection.Field{Name: "views", Type: collection.FieldNumber},
		&collection.Field{Name: "scores", Type: collection.FieldNumber, HasMany: true},
		&collection.Field{Name: "featured", Type: collection.FieldCheckbox},
		&collection.Field{Name: "publishedAt", Type: collection.FieldDate},
		&collection.Field{Name: "meta", Type: collection.FieldJSON},
		&collection.Field{Name: "content", Type: collection.FieldRichText},
		&collection.Field{Name: "location", Type: collection.FieldPoint},
	)

	for p, typ := range map[string]schema.Type{
		"title":       schema.TypeString,
		"body":        schema.TypeString,
		"contact":     schema.TypeString,
		"snippet":     schema.TypeString,
		"layout":      schema.TypeString,
		"status":      schema.TypeString,
		"categories":  schema.TypeArray,
		"views":       schema.TypeNumber,
		"scores":      schema.TypeArray,
		"featured":    schema.TypeBoolean,
		"publishedAt": schema.TypeDate,
		"meta":        schema.TypeMixed,
		"content":     schema.TypeMixed,
		"location":    schema.TypePoint,
	} {
		require.Equal(t, typ, path(t, s, p).Type, p)
	}

	require.True(t, path(t, s, "title").Required)
	require.Equal(t, []string{"wide", "narrow"}, path(t, s, "layout").Enum)
	require.Equal(t, []string{"a", "b"}, path(t, s, "status").Enum)
	require.Equal(t, "a", path(t, s, "status").Default)
	require.Equal(t, []string{"x"}, path(t, s, "categories").Of.Enum)
	require.Equal(t, schema.TypeNumber, path(t, s, "scores").Of.Type)
	require.Equal(t, schema.IndexType2DSphere, path(t, s, "location").IndexType)

	// timestamps are off unless asked for
	_, ok := s.Path(schema.CreatedAtField)
	require.False(t, ok)

	names := make([]string, 0)
	for _, idx := range s.Indexes() {
		names = append(names, idx.Name())
	}
	require.Equal(t, []string{"location_2dsphere"}, names)
}

func TestBuildSchemaRelationships(t *testing.T) {
	s := buildFields(t, app.Config{}, BuildSchemaOptions{},
		&collection.Field{Name: "author", Type: collection.FieldRelationship, RelationTo: collection.RelationToOne("users")},
		&collection.Field{Name: "image", Type: collection.FieldUpload, RelationTo: collection.RelationToOne("media")},
		&collection.Field{Name: "related", Type: collection.FieldRelationship, RelationTo: collection.RelationToMany("posts", "pages"), HasMany: true},
		&collection.Field{Name: "tags", Type: collection.FieldRelationship, RelationTo: collection.RelationToOne("tags"), HasMany: true},
	)

	author := path(t, s, "author")
	require.Equal(t, schema.TypeObjectID, author.Type)
	require.Equal(t, "users", author.Ref)

	require.Equal(t, "media", path(t, s, "image").Ref)

	related := path(t, s, "related")
	require.Equal(t, schema.TypeArray, related.Type)
	require.Equal(t, schema.TypeObject, related.Of.Type)
	require.Equal(t, []string{"posts", "pages"}, path(t, s, "related.relationTo").Enum)
	require.Equal(t, schema.TypeObjectID, path(t, s, "related.0.value").Type)

	tags := path(t, s, "tags")
	require.Equal(t, schema.TypeArray, tags.Type)
	require.Equal(t, "tags", tags.Of.Ref)

	_, err := BuildSchema(newApp(app.Config{}), []*collection.Field{{Name: "broken", Type: collection.FieldRelationship}}, BuildSchemaOptions{})
	require.ErrorIs(t, err, ErrUnsupportedFieldType)
}

func TestBuildSchemaLayout(t *testing.T) {
	s := buildFields(t, app.Config{}, BuildSchemaOptions{},
		&collection.Field{Type: collection.FieldRow, Fields: []*collection.Field{
			{Name: "first", Type: collection.FieldText},
			{Name: "last", Type: collection.FieldText},
		}},
		&collection.Field{Type: collection.FieldCollapsible, Fields: []*collection.Field{
			{Name: "notes", Type: collection.FieldTextarea},
		}},
		&collection.Field{Type: collection.FieldTabs, Tabs: []*collection.Tab{
			{Label: "Content", Fields: []*collection.Field{{Name: "body", Type: collection.FieldRichText}}},
			{Name: "seo", Fields: []*collection.Field{{Name: "description", Type: collection.FieldText, Index: true}}},
		}},
		&collection.Field{Name: "meta", Type: collection.FieldGroup, Fields: []*collection.Field{
			{Name: "keywords", Type: collection.FieldText, Unique: true},
		}},
		&collection.Field{Name: "items", Type: collection.FieldArray, Fields: []*collection.Field{
			{Name: "sku", Type: collection.FieldText, Index: true},
		}},
		&collection.Field{Name: "comments", Type: collection.FieldJoin, Collection: "comments", On: "post"},
		&collection.Field{Name: "preview", Type: collection.FieldUI},
	)

	names := make([]string, len(s.Fields()))
	for i, f := range s.Fields() {
		names[i] = f.Name
	}
	require.Equal(t, []string{"first", "last", "notes", "body", "seo", "meta", "items"}, names)

	require.Equal(t, schema.TypeObject, path(t, s, "seo").Type)
	require.True(t, path(t, s, "seo.description").Index)
	require.True(t, path(t, s, "meta.keywords").Unique)
	require.False(t, path(t, s, "meta.keywords").Sparse)

	items := path(t, s, "items")
	require.Equal(t, schema.TypeArray, items.Type)
	require.Equal(t, schema.TypeString, path(t, s, "items.id").Type)
	require.Equal(t, schema.TypeString, path(t, s, "items.3.sku").Type)

	indexes := make([]string, 0)
	for _, idx := range s.Indexes() {
		indexes = append(indexes, idx.Name())
	}
	require.Equal(t, []string{"seo.description_1", "meta.keywords_1", "items.sku_1"}, indexes)
}

func TestBuildSchemaDrafts(t *testing.T) {
	s := buildFields(t, app.Config{}, BuildSchemaOptions{DraftsEnabled: true},
		&collection.Field{Name: "title", Type: collection.FieldText, Required: true, Unique: true},
	)

	title := path(t, s, "title")
	require.False(t, title.Required)
	require.True(t, title.Unique)
	require.True(t, title.Sparse)

	status := path(t, s, StatusField)
	require.Equal(t, []string{StatusDraft, StatusPublished}, status.Enum)
	require.Equal(t, StatusDraft, status.Default)
	require.True(t, status.Index)
}

func TestBuildSchemaIndexSortableFields(t *testing.T) {
	opts := BuildSchemaOptions{
		IndexSortableFields: true,
		Options:             schema.Options{schema.OptionTimestamps: true},
	}

	s := buildFields(t, app.Config{}, opts,
		&collection.Field{Name: "title", Type: collection.FieldText},
		&collection.Field{Name: "slug", Type: collection.FieldText, Unique: true},
		&collection.Field{Name: "views", Type: collection.FieldNumber},
		&collection.Field{Name: "featured", Type: collection.FieldCheckbox},
		&collection.Field{Name: "content", Type: collection.FieldRichText},
	)

	require.True(t, path(t, s, "title").Index)
	require.False(t, path(t, s, "slug").Index)
	require.True(t, path(t, s, "views").Index)
	require.False(t, path(t, s, "featured").Index)
	require.False(t, path(t, s, "content").Index)
	require.True(t, path(t, s, schema.CreatedAtField).Index)
	require.True(t, path(t, s, schema.UpdatedAtField).Index)

	require.Len(t, s.Indexes(), 5)

	s = buildFields(t, app.Config{}, BuildSchemaOptions{Options: schema.Options{schema.OptionTimestamps: true}},
		&collection.Field{Name: "title", Type: collection.FieldText},
	)
	require.False(t, path(t, s, "title").Index)
	require.False(t, path(t, s, schema.CreatedAtField).Index)
	require.Empty(t, s.Indexes())
}

func TestBuildSchemaLocalization(t *testing.T) {
	cfg := app.Config{Localization: &app.Localization{Locales: []string{"en", "de"}, DefaultLocale: "en"}}

	s := buildFields(t, cfg, BuildSchemaOptions{},
		&collection.Field{Name: "title", Type: collection.FieldText, Localized: true, Required: true, Index: true},
		&collection.Field{Name: "sku", Type: collection.FieldText, Required: true},
	)

	title := path(t, s, "title")
	require.Equal(t, schema.TypeObject, title.Type)
	require.True(t, title.Localized)

	for _, locale := range []string{"en", "de"} {
		f := path(t, s, "title."+locale)
		require.Equal(t, schema.TypeString, f.Type)
		require.False(t, f.Required)
		require.True(t, f.Index)
	}

	require.True(t, path(t, s, "sku").Required)

	// without locales the flag only relaxes required
	s = buildFields(t, app.Config{}, BuildSchemaOptions{},
		&collection.Field{Name: "title", Type: collection.FieldText, Localized: true, Required: true},
	)
	require.Equal(t, schema.TypeString, path(t, s, "title").Type)
	require.False(t, path(t, s, "title").Required)
}

func TestBuildSchemaErrors(t *testing.T) {
	_, err := BuildSchema(nil, nil, BuildSchemaOptions{})
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = BuildSchema(newApp(app.Config{}), []*collection.Field{{Type: collection.FieldText}}, BuildSchemaOptions{})
	require.ErrorIs(t, err, ErrMissingFieldName)

	_, err = BuildSchema(newApp(app.Config{}), []*collection.Field{
		{Name: "meta", Type: collection.FieldGroup, Fields: []*collection.Field{{Name: "x", Type: "blocks"}}},
	}, BuildSchemaOptions{})
	require.ErrorIs(t, err, ErrUnsupportedFieldType)
	require.Contains(t, err.Error(), "meta.x")
}
