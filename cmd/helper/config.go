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
package helper

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config locates the configuration file of a command and binds it, together
// with the environment, to viper.
type Config struct {
	Name  string
	CfgFn string
}

// Init reads the config file named after c.Name from the working directory,
// /etc/<name> or the home directory, unless an explicit file is set.
// Environment variables prefixed with the upper case name override it.
func (c *Config) Init(v *viper.Viper, out io.Writer) error {
	if c.CfgFn != "" {
		v.SetConfigFile(c.CfgFn)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		v.AddConfigPath("configs")
		if runtime.GOOS != "windows" {
			v.AddConfigPath("/etc/" + c.Name)
		}
		v.AddConfigPath(home)
		v.SetConfigName(c.Name)
	}

	v.SetEnvPrefix(strings.ToUpper(c.Name))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err == nil {
		c.CfgFn = v.ConfigFileUsed()
		fmt.Fprintln(out, "Using config file:", c.CfgFn)
		return nil
	}

	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && c.CfgFn == "" {
		return nil
	}

	return err
}

// LoadConfig reads the --config flag of cmd and initializes v with it.
func (c *Config) LoadConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFn, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	if cfgFn != "" {
		if _, err := os.Stat(cfgFn); err != nil {
			return err
		}
		c.CfgFn = cfgFn
	}

	return c.Init(v, cmd.OutOrStdout())
}
