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

	"github.com/codenotary/docschema/embedded/schema"
	"github.com/codenotary/docschema/pkg/app"
	"github.com/codenotary/docschema/pkg/collection"
)

const (
	StatusField     = "_status"
	StatusDraft     = "draft"
	StatusPublished = "published"

	// ArrayRowIDField identifies each row of an array field.
	ArrayRowIDField = "id"

	polymorphicRelationTo = "relationTo"
	polymorphicValue      = "value"
)

type BuildSchemaOptions struct {
	DraftsEnabled       bool
	IndexSortableFields bool
	Options             schema.Options
}

var sortableTypes = map[collection.FieldType]struct{}{
	collection.FieldText:     {},
	collection.FieldTextarea: {},
	collection.FieldEmail:    {},
	collection.FieldNumber:   {},
	collection.FieldDate:     {},
	collection.FieldRadio:    {},
	collection.FieldSelect:   {},
	collection.FieldCode:     {},
}

// BuildSchema translates a collection's field configuration into a schema.
func BuildSchema(a *app.App, fields []*collection.Field, opts BuildSchemaOptions) (*schema.Schema, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: app is required", ErrIllegalArguments)
	}

	b := &schemaBuilder{
		opts:         opts,
		localization: a.Config().Localization,
	}

	schemaFields, err := b.fields("", fields)
	if err != nil {
		return nil, err
	}

	if opts.DraftsEnabled {
		schemaFields = append(schemaFields, &schema.Field{
			Name:    StatusField,
			Type:    schema.TypeString,
			Enum:    []string{StatusDraft, StatusPublished},
			Default: StatusDraft,
			Index:   true,
		})
	}

	s := schema.New(schemaFields, opts.Options)

	if opts.IndexSortableFields && s.Timestamps() {
		for _, name := range []string{schema.CreatedAtField, schema.UpdatedAtField} {
			if f, ok := s.Path(name); ok {
				f.Index = true
			}
		}
	}

	return s, nil
}

type schemaBuilder struct {
	opts         BuildSchemaOptions
	localization *app.Localization
}

func (b *schemaBuilder) fields(prefix string, fields []*collection.Field) ([]*schema.Field, error) {
	var out []*schema.Field

	for i, f := range fields {
		if f == nil {
			continue
		}

		path := fieldPath(prefix, f.Name)

		switch f.Type {
		case collection.FieldJoin, collection.FieldUI:
			continue

		case collection.FieldRow, collection.FieldCollapsible:
			sub, err := b.fields(prefix, f.Fields)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue

		case collection.FieldTabs:
			for _, tab := range f.Tabs {
				if tab.Name == "" {
					sub, err := b.fields(prefix, tab.Fields)
					if err != nil {
						return nil, err
					}
					out = append(out, sub...)
					continue
				}

				sub, err := b.fields(fieldPath(prefix, tab.Name), tab.Fields)
				if err != nil {
					return nil, err
				}
				out = append(out, &schema.Field{Name: tab.Name, Type: schema.TypeObject, Fields: sub})
			}
			continue
		}

		if f.Name == "" {
			return nil, fmt.Errorf("%w: %s field at position %d of %q", ErrMissingFieldName, f.Type, i, prefix)
		}

		sf, err := b.field(path, f)
		if err != nil {
			return nil, err
		}

		out = append(out, b.localize(f, sf))
	}

	return out, nil
}

func (b *schemaBuilder) field(path string, f *collection.Field) (*schema.Field, error) {
	sf := &schema.Field{
		Name:    f.Name,
		Default: f.DefaultValue,
	}

	switch f.Type {
	case collection.FieldText, collection.FieldTextarea, collection.FieldEmail, collection.FieldCode:
		sf.Type = schema.TypeString

	case collection.FieldRadio:
		sf.Type = schema.TypeString
		sf.Enum = optionValues(f.Options)

	case collection.FieldSelect:
		sf.Type = schema.TypeString
		sf.Enum = optionValues(f.Options)
		if f.HasMany {
			sf = arrayOf(sf)
		}

	case collection.FieldNumber:
		sf.Type = schema.TypeNumber
		if f.HasMany {
			sf = arrayOf(sf)
		}

	case collection.FieldCheckbox:
		sf.Type = schema.TypeBoolean

	case collection.FieldDate:
		sf.Type = schema.TypeDate

	case collection.FieldJSON, collection.FieldRichText:
		sf.Type = schema.TypeMixed

	case collection.FieldPoint:
		sf.Type = schema.TypePoint
		sf.IndexType = schema.IndexType2DSphere

	case collection.FieldRelationship, collection.FieldUpload:
		if f.RelationTo.IsZero() {
			return nil, fmt.Errorf("%w: %s (%s without relationTo)", ErrUnsupportedFieldType, path, f.Type)
		}

		if f.RelationTo.Polymorphic {
			sf.Type = schema.TypeObject
			sf.Fields = []*schema.Field{
				{Name: polymorphicRelationTo, Type: schema.TypeString, Enum: f.RelationTo.Collections},
				{Name: polymorphicValue, Type: schema.TypeObjectID},
			}
		} else {
			sf.Type = schema.TypeObjectID
			sf.Ref = f.RelationTo.Collections[0]
		}

		if f.HasMany {
			sf = arrayOf(sf)
		}

	case collection.FieldGroup:
		sub, err := b.fields(path, f.Fields)
		if err != nil {
			return nil, err
		}
		sf.Type = schema.TypeObject
		sf.Fields = sub

	case collection.FieldArray:
		sub, err := b.fields(path, f.Fields)
		if err != nil {
			return nil, err
		}
		row := &schema.Field{
			Type:   schema.TypeObject,
			Fields: append([]*schema.Field{{Name: ArrayRowIDField, Type: schema.TypeString}}, sub...),
		}
		sf.Type = schema.TypeArray
		sf.Of = row

	default:
		return nil, fmt.Errorf("%w: %s (%q)", ErrUnsupportedFieldType, path, f.Type)
	}

	if f.Unique {
		sf.Unique = true
		sf.Sparse = b.opts.DraftsEnabled
	}

	if f.Index {
		sf.Index = true
	}

	if b.opts.IndexSortableFields && !sf.Indexed() {
		if _, ok := sortableTypes[f.Type]; ok {
			sf.Index = true
		}
	}

	sf.Required = f.Required && !b.opts.DraftsEnabled && !f.Localized

	return sf, nil
}

// localize turns sf into an object holding one copy per locale.
func (b *schemaBuilder) localize(f *collection.Field, sf *schema.Field) *schema.Field {
	if !f.Localized || !b.localization.Enabled() {
		return sf
	}

	locales := make([]*schema.Field, len(b.localization.Locales))
	for i, locale := range b.localization.Locales {
		l := *sf
		l.Name = locale
		locales[i] = &l
	}

	return &schema.Field{
		Name:      sf.Name,
		Type:      schema.TypeObject,
		Fields:    locales,
		Localized: true,
	}
}

func arrayOf(sf *schema.Field) *schema.Field {
	elem := *sf
	elem.Name = ""
	elem.Default = nil

	return &schema.Field{
		Name:    sf.Name,
		Type:    schema.TypeArray,
		Of:      &elem,
		Default: sf.Default,
	}
}

func optionValues(opts []collection.Option) []string {
	if len(opts) == 0 {
		return nil
	}

	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

func fieldPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
