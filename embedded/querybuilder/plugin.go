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
package querybuilder

import (
	"fmt"

	"github.com/codenotary/docschema/embedded/schema"
)

const PluginName = "buildQuery"

type Options struct {
	// CollectionSlug keys the builder and prefixes its errors.
	CollectionSlug string
}

// Plugin attaches a query Builder to a schema.
type Plugin struct {
	slug string
}

func New(opts Options) (*Plugin, error) {
	if opts.CollectionSlug == "" {
		return nil, fmt.Errorf("%w: collection slug is required", ErrIllegalArguments)
	}

	return &Plugin{slug: opts.CollectionSlug}, nil
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) CollectionSlug() string {
	return p.slug
}

func (p *Plugin) Apply(s *schema.Schema) error {
	s.SetStatic(PluginName, &Builder{slug: p.slug, schema: s})
	return nil
}

// From returns the Builder attached to s, if any.
func From(s *schema.Schema) (*Builder, bool) {
	v, ok := s.Static(PluginName)
	if !ok {
		return nil, false
	}

	b, ok := v.(*Builder)
	return b, ok
}
