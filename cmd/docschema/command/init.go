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
	"github.com/codenotary/docschema/embedded/logger"
	"github.com/codenotary/docschema/pkg/database"

	"github.com/spf13/pflag"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// collectionFlags are shared by every command reading a collections file.
func collectionFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("collections", pflag.ContinueOnError)
	fs.StringP("collections", "f", "", "YAML file holding the application settings and its collections")
	fs.Bool("index-sortable-fields", false, "index every sortable field, overrides the collections file when set")
	fs.String("log-format", logger.LogFormatText, "log format (text|json)")
	return fs
}

func databaseFlags(opts *database.Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("database", pflag.ContinueOnError)
	fs.String("uri", opts.GetURI(), "MongoDB connection string")
	fs.String("database", opts.GetDatabase(), "database name")
	fs.Duration("connect-timeout", opts.GetConnectTimeout(), "time allowed to reach the server")
	return fs
}

func (cl *Commandline) setupDefaults(opts *database.Options) {
	cl.v.SetDefault("log-format", logger.LogFormatText)
	cl.v.SetDefault("output", outputTable)
	cl.v.SetDefault("uri", opts.GetURI())
	cl.v.SetDefault("database", opts.GetDatabase())
	cl.v.SetDefault("connect-timeout", opts.GetConnectTimeout())
}
