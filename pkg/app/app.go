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
package app

import (
	"fmt"
	"os"

	"github.com/codenotary/docschema/embedded/logger"

	"gopkg.in/yaml.v3"
)

type Localization struct {
	Locales       []string `yaml:"locales"`
	DefaultLocale string   `yaml:"defaultLocale"`
}

// Enabled reports whether any locale is configured.
func (l *Localization) Enabled() bool {
	return l != nil && len(l.Locales) > 0
}

// Config is the application wide configuration schemas are built against.
type Config struct {
	// IndexSortableFields adds an index to every sortable field.
	IndexSortableFields bool          `yaml:"indexSortableFields"`
	Localization        *Localization `yaml:"localization,omitempty"`
}

// ParseConfig reads the application settings of a YAML document. Other
// top level keys are ignored.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(data)
}

func (c Config) Validate() error {
	if !c.Localization.Enabled() || c.Localization.DefaultLocale == "" {
		return nil
	}

	for _, l := range c.Localization.Locales {
		if l == c.Localization.DefaultLocale {
			return nil
		}
	}

	return fmt.Errorf("%w: default locale %s is not one of the locales", ErrInvalidConfig, c.Localization.DefaultLocale)
}

// App is the read-only handle schemas are built with.
type App struct {
	config Config
	logger logger.Logger
}

// New returns an App. A nil logger falls back to a simple logger on stderr.
func New(config Config, log logger.Logger) *App {
	if log == nil {
		log = logger.NewSimpleLogger("docschema", os.Stderr)
	}

	return &App{
		config: config,
		logger: log,
	}
}

func (a *App) Config() Config {
	return a.config
}

func (a *App) Logger() logger.Logger {
	return a.logger
}
