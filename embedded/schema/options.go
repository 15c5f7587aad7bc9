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

// Well-known schema option keys. Any other key is carried untouched.
const (
	OptionMinimize   = "minimize"
	OptionTimestamps = "timestamps"
	OptionStrict     = "strict"
	OptionCollection = "collection"
)

// Options is the free-form option bag a schema is created with.
type Options map[string]interface{}

// Merge returns a new bag holding o overlaid with overrides.
// Values in overrides win on key collision.
func (o Options) Merge(overrides Options) Options {
	merged := make(Options, len(o)+len(overrides))

	for k, v := range o {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}

	return merged
}

// Bool reads key as a flag. A missing or nil value yields def, a non boolean
// value counts as set.
func (o Options) Bool(key string, def bool) bool {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}

	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != ""
	}

	return true
}

func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}
