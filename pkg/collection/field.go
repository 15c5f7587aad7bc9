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
package collection

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type FieldType string

const (
	FieldText         FieldType = "text"
	FieldTextarea     FieldType = "textarea"
	FieldEmail        FieldType = "email"
	FieldCode         FieldType = "code"
	FieldRadio        FieldType = "radio"
	FieldSelect       FieldType = "select"
	FieldNumber       FieldType = "number"
	FieldCheckbox     FieldType = "checkbox"
	FieldDate         FieldType = "date"
	FieldJSON         FieldType = "json"
	FieldRichText     FieldType = "richText"
	FieldPoint        FieldType = "point"
	FieldRelationship FieldType = "relationship"
	FieldUpload       FieldType = "upload"
	FieldGroup        FieldType = "group"
	FieldArray        FieldType = "array"
	FieldRow          FieldType = "row"
	FieldCollapsible  FieldType = "collapsible"
	FieldTabs         FieldType = "tabs"
	FieldJoin         FieldType = "join"
	FieldUI           FieldType = "ui"
)

// Field is one entry of a collection's field configuration.
type Field struct {
	Name string    `yaml:"name,omitempty"`
	Type FieldType `yaml:"type"`

	Required  bool `yaml:"required,omitempty"`
	Unique    bool `yaml:"unique,omitempty"`
	Index     bool `yaml:"index,omitempty"`
	Localized bool `yaml:"localized,omitempty"`
	HasMany   bool `yaml:"hasMany,omitempty"`

	DefaultValue interface{} `yaml:"defaultValue,omitempty"`

	// select and radio
	Options []Option `yaml:"options,omitempty"`

	// relationship and upload
	RelationTo RelationTo `yaml:"relationTo,omitempty"`

	// group, array, row and collapsible
	Fields []*Field `yaml:"fields,omitempty"`

	// tabs
	Tabs []*Tab `yaml:"tabs,omitempty"`

	// join
	Collection string `yaml:"collection,omitempty"`
	On         string `yaml:"on,omitempty"`
}

type Tab struct {
	Name   string   `yaml:"name,omitempty"`
	Label  string   `yaml:"label,omitempty"`
	Fields []*Field `yaml:"fields"`
}

// Option is a select or radio choice. A plain scalar sets both label and value.
type Option struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Label = node.Value
		o.Value = node.Value
		return nil
	}

	type plain Option
	return node.Decode((*plain)(o))
}

// RelationTo names the collections a relationship points to. A list makes the
// relationship polymorphic, even with a single entry.
type RelationTo struct {
	Collections []string
	Polymorphic bool
}

func RelationToOne(slug string) RelationTo {
	return RelationTo{Collections: []string{slug}}
}

func RelationToMany(slugs ...string) RelationTo {
	return RelationTo{Collections: slugs, Polymorphic: true}
}

func (r RelationTo) IsZero() bool {
	return len(r.Collections) == 0
}

func (r *RelationTo) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*r = RelationToOne(node.Value)
		return nil
	case yaml.SequenceNode:
		var slugs []string
		if err := node.Decode(&slugs); err != nil {
			return err
		}
		*r = RelationToMany(slugs...)
		return nil
	}

	return fmt.Errorf("%w: relationTo must be a slug or a list of slugs (line %d)", ErrInvalidCollection, node.Line)
}

func (r RelationTo) MarshalYAML() (interface{}, error) {
	if r.Polymorphic {
		return r.Collections, nil
	}
	if len(r.Collections) == 1 {
		return r.Collections[0], nil
	}
	return nil, nil
}
