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
	"github.com/codenotary/docschema/pkg/database"

	"github.com/spf13/cobra"
)

func (cl *Commandline) NewRootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "docschema",
		Short: "docschema - MongoDB schemas from content collection configuration",
		Long: `docschema - MongoDB schemas from content collection configuration.

Builds the schema of every collection of a collections file, with its indexes
and plugins, and creates those indexes on a MongoDB database.

Setting the logging level and other options through environment variables:
- Logging level: LOG_LEVEL={debug|info|warning|error}
- The environment variable names for other settings are derived by prefixing flag names with "DOCSCHEMA_"
  e.g DOCSCHEMA_URI=mongodb://db:27017 docschema sync -f collections.yaml
  Note: flags take precedence over environment variables.
`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: cl.ConfigChain(nil),
	}

	cmd.PersistentFlags().StringVar(&cl.config.CfgFn, "config", "", "config file (default path are configs, /etc/docschema or $HOME. Default filename is docschema.yaml)")

	cl.setupDefaults(database.DefaultOptions())

	return cmd, nil
}
