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

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// PrintTable renders nbRows rows under cols, preceded by caption or, when
// empty, by the row count. Nothing is printed without rows or columns.
func PrintTable(
	w io.Writer,
	cols []string,
	nbRows int,
	getRow func(int) []string,
	caption string,
) {
	if nbRows == 0 || len(cols) == 0 {
		return
	}

	if caption == "" {
		caption = fmt.Sprintf("%d row(s)", nbRows)
	}
	fmt.Fprintln(w, caption)

	table := tablewriter.NewWriter(w)
	table.SetHeader(cols)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i := 0; i < nbRows; i++ {
		row := getRow(i)

		cells := make([]string, len(cols))
		copy(cells, row)

		table.Append(cells)
	}

	table.Render()
}

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

// PrintSuccess writes a green status line.
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	success.Fprintf(w, format+"\n", args...)
}

// PrintFailure writes a red status line.
func PrintFailure(w io.Writer, format string, args ...interface{}) {
	failure.Fprintf(w, format+"\n", args...)
}
