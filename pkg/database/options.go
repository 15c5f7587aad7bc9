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
	"fmt"
	"time"

	"github.com/codenotary/docschema/embedded/schema"
)

const (
	DefaultURI            = "mongodb://localhost:27017"
	DefaultDatabase       = "docschema"
	DefaultConnectTimeout = 10 * time.Second
)

type Options struct {
	uri            string
	database       string
	connectTimeout time.Duration
	ensureIndexes  bool
	schemaOptions  schema.Options
}

func DefaultOptions() *Options {
	return &Options{
		uri:            DefaultURI,
		database:       DefaultDatabase,
		connectTimeout: DefaultConnectTimeout,
		ensureIndexes:  true,
	}
}

func (opts *Options) Validate() error {
	if opts == nil {
		return fmt.Errorf("%w: nil options", ErrInvalidOptions)
	}

	if opts.uri == "" {
		return fmt.Errorf("%w: invalid URI value", ErrInvalidOptions)
	}

	if opts.database == "" {
		return fmt.Errorf("%w: invalid Database value", ErrInvalidOptions)
	}

	if opts.connectTimeout <= 0 {
		return fmt.Errorf("%w: invalid ConnectTimeout value", ErrInvalidOptions)
	}

	return nil
}

func (opts *Options) WithURI(uri string) *Options {
	opts.uri = uri
	return opts
}

func (opts *Options) WithDatabase(database string) *Options {
	opts.database = database
	return opts
}

func (opts *Options) WithConnectTimeout(timeout time.Duration) *Options {
	opts.connectTimeout = timeout
	return opts
}

// WithEnsureIndexes makes Init create the indexes of every schema.
func (opts *Options) WithEnsureIndexes(ensureIndexes bool) *Options {
	opts.ensureIndexes = ensureIndexes
	return opts
}

// WithSchemaOptions sets the overrides every collection schema is built with.
func (opts *Options) WithSchemaOptions(schemaOptions schema.Options) *Options {
	opts.schemaOptions = schemaOptions
	return opts
}

func (opts *Options) GetURI() string {
	return opts.uri
}

func (opts *Options) GetDatabase() string {
	return opts.database
}

func (opts *Options) GetConnectTimeout() time.Duration {
	return opts.connectTimeout
}

func (opts *Options) GetEnsureIndexes() bool {
	return opts.ensureIndexes
}

func (opts *Options) GetSchemaOptions() schema.Options {
	return opts.schemaOptions
}
