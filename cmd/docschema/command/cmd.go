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
	c "github.com/codenotary/docschema/cmd/helper"
	"github.com/codenotary/docschema/cmd/version"
	"github.com/codenotary/docschema/pkg/database"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() {
	version.App = "docschema"

	cmd, err := newCommand(database.Connect)
	if err != nil {
		c.QuitToStdErr(err)
	}

	if err := cmd.Execute(); err != nil {
		c.QuitToStdErr(err)
	}
}

func newCommand(connect connectFunc) (*cobra.Command, error) {
	cl := &Commandline{
		config:  c.Config{Name: "docschema"},
		v:       viper.New(),
		connect: connect,
	}

	cmd, err := cl.NewRootCmd()
	if err != nil {
		return nil, err
	}

	cmd.AddCommand(cl.buildCmd())
	cmd.AddCommand(cl.syncCmd())
	cmd.AddCommand(version.VersionCmd())

	return cmd, nil
}
