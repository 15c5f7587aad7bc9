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
package schema

// Plugin extends a schema with a capability. Apply runs once, at attach time.
type Plugin interface {
	Name() string
	Apply(s *Schema) error
}

// PluginFunc adapts a function into a Plugin.
type PluginFunc struct {
	PluginName string
	Fn         func(s *Schema) error
}

func (p PluginFunc) Name() string {
	return p.PluginName
}

func (p PluginFunc) Apply(s *Schema) error {
	if p.Fn == nil {
		return nil
	}
	return p.Fn(s)
}
