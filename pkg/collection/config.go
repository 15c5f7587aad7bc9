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
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCollection = errors.New("invalid collection")

// Config describes one content collection.
type Config struct {
	Slug   string   `yaml:"slug"`
	Fields []*Field `yaml:"fields"`

	Versions   *Versions `yaml:"versions,omitempty"`
	Timestamps *bool     `yaml:"timestamps,omitempty"`
	Upload     *Upload   `yaml:"upload,omitempty"`

	// Joins and PolymorphicJoins are keyed by the collection holding the
	// joined documents.
	Joins            map[string][]Join `yaml:"joins,omitempty"`
	PolymorphicJoins map[string][]Join `yaml:"polymorphicJoins,omitempty"`

	DefaultSort string `yaml:"defaultSort,omitempty"`
}

// DraftsEnabled holds only when versions are configured as an object whose
// drafts setting is on.
func (c *Config) DraftsEnabled() bool {
	return c.Versions != nil && c.Versions.Object && c.Versions.Drafts.Enabled
}

// TimestampsEnabled is true unless timestamps are explicitly turned off.
func (c *Config) TimestampsEnabled() bool {
	return c.Timestamps == nil || *c.Timestamps
}

func (c *Config) HasJoins() bool {
	return len(c.Joins) > 0 || len(c.PolymorphicJoins) > 0
}

// FilenameCompoundIndex returns the upload's compound index fields, if any.
func (c *Config) FilenameCompoundIndex() []string {
	if c.Upload == nil {
		return nil
	}
	return c.Upload.FilenameCompoundIndex
}

// Versions is set either as a flag or as an object.
type Versions struct {
	Enabled bool
	// Object tells the object form apart from `versions: true`.
	Object bool

	Drafts    Drafts
	MaxPerDoc int
}

func (v *Versions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*v = Versions{}
		return node.Decode(&v.Enabled)
	}

	var obj struct {
		Drafts    Drafts `yaml:"drafts"`
		MaxPerDoc int    `yaml:"maxPerDoc"`
	}
	if err := node.Decode(&obj); err != nil {
		return err
	}

	*v = Versions{
		Enabled:   true,
		Object:    true,
		Drafts:    obj.Drafts,
		MaxPerDoc: obj.MaxPerDoc,
	}
	return nil
}

// Drafts is set either as a flag or as an object, an object turns drafts on.
type Drafts struct {
	Enabled  bool
	Autosave bool
}

func (d *Drafts) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*d = Drafts{}
		return node.Decode(&d.Enabled)
	}

	var obj struct {
		Autosave yaml.Node `yaml:"autosave"`
	}
	if err := node.Decode(&obj); err != nil {
		return err
	}

	*d = Drafts{
		Enabled:  true,
		Autosave: obj.Autosave.Kind == yaml.MappingNode || obj.Autosave.Value == "true",
	}
	return nil
}

// Upload is set either as a flag or as an object.
type Upload struct {
	Enabled bool

	// FilenameCompoundIndex lists the fields of a unique index that replaces
	// the uniqueness of filename alone.
	FilenameCompoundIndex []string
	StaticDir             string
	MimeTypes             []string
}

func (u *Upload) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*u = Upload{}
		return node.Decode(&u.Enabled)
	}

	var obj struct {
		FilenameCompoundIndex []string `yaml:"filenameCompoundIndex"`
		StaticDir             string   `yaml:"staticDir"`
		MimeTypes             []string `yaml:"mimeTypes"`
	}
	if err := node.Decode(&obj); err != nil {
		return err
	}

	*u = Upload{
		Enabled:               true,
		FilenameCompoundIndex: obj.FilenameCompoundIndex,
		StaticDir:             obj.StaticDir,
		MimeTypes:             obj.MimeTypes,
	}
	return nil
}

// Join describes documents of another collection pointing back at this one.
type Join struct {
	// SchemaPath is the join field holding the joined documents.
	SchemaPath string `yaml:"schemaPath"`
	// On is the relationship path in the joined collection.
	On string `yaml:"on"`
	// Limit caps the joined documents, 0 means no cap.
	Limit int `yaml:"limit,omitempty"`
}

type document struct {
	Collections []*Config `yaml:"collections"`
}

// Parse reads the collections of a YAML document.
func Parse(data []byte) ([]*Config, error) {
	var doc document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCollection, err)
	}

	seen := make(map[string]struct{}, len(doc.Collections))

	for i, c := range doc.Collections {
		if c == nil || c.Slug == "" {
			return nil, fmt.Errorf("%w: collection at position %d has no slug", ErrInvalidCollection, i)
		}

		if _, ok := seen[c.Slug]; ok {
			return nil, fmt.Errorf("%w: duplicate slug %s", ErrInvalidCollection, c.Slug)
		}
		seen[c.Slug] = struct{}{}
	}

	return doc.Collections, nil
}

func Load(path string) ([]*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}
