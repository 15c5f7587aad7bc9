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
package command

import (
	"context"

	c "github.com/codenotary/docschema/cmd/helper"
	"github.com/codenotary/docschema/embedded/logger"
	"github.com/codenotary/docschema/pkg/app"
	"github.com/codenotary/docschema/pkg/collection"
	"github.com/codenotary/docschema/pkg/database"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type connectFunc func(ctx context.Context, opts *database.Options, a *app.App) (*database.Adapter, error)

// Commandline holds the state shared by the docschema commands.
type Commandline struct {
	config  c.Config
	v       *viper.Viper
	connect connectFunc
}

func (cl *Commandline) ConfigChain(post func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := cl.config.LoadConfig(cmd, cl.v); err != nil {
			return err
		}
		if post != nil {
			return post(cmd, args)
		}
		return nil
	}
}

// load reads the collections file and the application settings it holds.
func (cl *Commandline) load(cmd *cobra.Command) (*app.App, []*collection.Config, error) {
	path := cl.v.GetString("collections")
	if path == "" {
		return nil, nil, ErrMissingCollections
	}

	cfg, err := app.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}

	if cl.v.IsSet("index-sortable-fields") {
		cfg.IndexSortableFields = cl.v.GetBool("index-sortable-fields")
	}

	collections, err := collection.Load(path)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(&logger.Options{
		Name:      "docschema",
		Level:     logger.LogLevelFromEnvironment(),
		LogFormat: cl.v.GetString("log-format"),
		Output:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}

	return app.New(cfg, log), collections, nil
}
