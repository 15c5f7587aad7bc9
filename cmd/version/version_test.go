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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionStr(t *testing.T) {
	App, Version, Commit, BuiltAt = "", "", "", ""
	require.Equal(t, "no version info available", VersionStr())

	App, Version, Commit, BuiltAt = "docschema", "1.2.0", "abc123", "0"
	defer func() { App, Version, Commit, BuiltAt = "", "", "", "" }()

	require.Equal(t, "docschema 1.2.0\nCommit  : abc123\nBuilt at: Thu, 01 Jan 1970 00:00:00 UTC", VersionStr())

	out := &bytes.Buffer{}
	cmd := VersionCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "docschema 1.2.0")
}
