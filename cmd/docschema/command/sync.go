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
	"github.com/codenotary/docschema/pkg/database"

	"github.com/spf13/cobra"
)

func (cl *Commandline) syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Create the indexes of every collection on a MongoDB database",
		Example: `  docschema sync -f collections.yaml --uri mongodb://localhost:27017 --database cms`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cl.v.BindPFlags(cmd.Flags())
		},
		RunE: cl.sync,
	}

	cmd.Flags().AddFlagSet(collectionFlags())
	cmd.Flags().AddFlagSet(databaseFlags(database.DefaultOptions()))

	return cmd
}

func (cl *Commandline) sync(cmd *cobra.Command, _ []string) error {
	a, collections, err := cl.load(cmd)
	if err != nil {
		return err
	}

	opts := database.DefaultOptions().
		WithURI(cl.v.GetString("uri")).
		WithDatabase(cl.v.GetString("database")).
		WithConnectTimeout(cl.v.GetDuration("connect-timeout")).
		WithEnsureIndexes(false)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	adapter, err := cl.connect(ctx, opts, a)
	if err != nil {
		return err
	}
	defer adapter.Close(ctx)

	err = adapter.Init(ctx, collections)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, slug := range adapter.Collections() {
		m, err := adapter.Model(slug)
		if err != nil {
			return err
		}

		names, err := m.EnsureIndexes(ctx)
		if err != nil {
			c.PrintFailure(out, "collection %s: %v", slug, err)
			return err
		}

		c.PrintSuccess(out, "collection %s: %d index(es) %v", slug, len(names), names)
	}

	return nil
}
