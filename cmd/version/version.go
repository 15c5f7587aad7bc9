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
package version

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Set at link time, e.g. -ldflags "-X .../cmd/version.Version=1.0.0".
var (
	App     string
	Version string
	Commit  string
	BuiltAt string
)

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Show the %s version", App),
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), VersionStr())
		},
	}
}

// VersionStr formats the build information.
func VersionStr() string {
	if App == "" || Version == "" {
		return "no version info available"
	}

	lines := []string{fmt.Sprintf("%s %s", App, Version)}

	const pattern = "%-*s: %s"
	const labelWidth = 8

	if Commit != "" {
		lines = append(lines, fmt.Sprintf(pattern, labelWidth, "Commit", Commit))
	}

	if BuiltAt != "" {
		if secs, err := strconv.ParseInt(BuiltAt, 10, 64); err == nil {
			lines = append(lines, fmt.Sprintf(pattern, labelWidth, "Built at", time.Unix(secs, 0).UTC().Format(time.RFC1123)))
		}
	}

	return strings.Join(lines, "\n")
}
