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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	c "github.com/codenotary/docschema/cmd/helper"
	"github.com/codenotary/docschema/embedded/schema"
	"github.com/codenotary/docschema/pkg/models"

	"github.com/spf13/cobra"
)

type fieldSummary struct {
	Path     string   `json:"path"`
	Type     string   `json:"type"`
	Required bool     `json:"required,omitempty"`
	Ref      string   `json:"ref,omitempty"`
	Enum     []string `json:"enum,omitempty"`
}

type indexSummary struct {
	Name   string   `json:"name"`
	Keys   []string `json:"keys"`
	Unique bool     `json:"unique,omitempty"`
	Sparse bool     `json:"sparse,omitempty"`
}

type schemaSummary struct {
	Collection string         `json:"collection"`
	Fields     []fieldSummary `json:"fields"`
	Indexes    []indexSummary `json:"indexes"`
	Plugins    []string       `json:"plugins"`
}

func (cl *Commandline) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the schema of every collection and print its fields, indexes and plugins",
		Example: `  docschema build -f collections.yaml
  docschema build -f collections.yaml --output json --index-sortable-fields`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cl.v.BindPFlags(cmd.Flags())
		},
		RunE: cl.build,
	}

	cmd.Flags().AddFlagSet(collectionFlags())
	cmd.Flags().StringP("output", "o", outputTable, "output format (table|json)")

	return cmd
}

func (cl *Commandline) build(cmd *cobra.Command, _ []string) error {
	output := cl.v.GetString("output")
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("%w: %s", ErrInvalidOutput, output)
	}

	a, collections, err := cl.load(cmd)
	if err != nil {
		return err
	}

	summaries := make([]schemaSummary, 0, len(collections))

	for _, coll := range collections {
		s, err := models.BuildCollectionSchema(coll, a, nil)
		if err != nil {
			return err
		}

		summaries = append(summaries, summarize(coll.Slug, s))
	}

	if output == outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	for _, sum := range summaries {
		printSummary(cmd.OutOrStdout(), sum)
	}

	return nil
}

func summarize(slug string, s *schema.Schema) schemaSummary {
	sum := schemaSummary{
		Collection: slug,
		Fields:     summarizeFields("", s.Fields()),
		Plugins:    s.Plugins(),
	}

	for _, idx := range s.Indexes() {
		sum.Indexes = append(sum.Indexes, indexSummary{
			Name:   idx.Name(),
			Keys:   idx.KeyNames(),
			Unique: idx.Options.Unique,
			Sparse: idx.Options.Sparse,
		})
	}

	return sum
}

func summarizeFields(prefix string, fields []*schema.Field) []fieldSummary {
	var out []fieldSummary

	for _, f := range fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}

		typ := string(f.Type)
		if f.Type == schema.TypeArray && f.Of != nil {
			typ = "[" + string(f.Of.Type) + "]"
		}

		ref, enum := f.Ref, f.Enum
		if f.Of != nil && ref == "" && enum == nil {
			ref, enum = f.Of.Ref, f.Of.Enum
		}

		out = append(out, fieldSummary{
			Path:     path,
			Type:     typ,
			Required: f.Required,
			Ref:      ref,
			Enum:     enum,
		})

		switch {
		case f.Type == schema.TypeObject:
			out = append(out, summarizeFields(path, f.Fields)...)
		case f.Type == schema.TypeArray && f.Of != nil:
			out = append(out, summarizeFields(path, f.Of.Fields)...)
		}
	}

	return out
}

func printSummary(w io.Writer, sum schemaSummary) {
	c.PrintTable(w, []string{"Field", "Type", "Required", "Ref", "Enum"}, len(sum.Fields), func(i int) []string {
		f := sum.Fields[i]
		return []string{f.Path, f.Type, yesNo(f.Required), f.Ref, strings.Join(f.Enum, ", ")}
	}, fmt.Sprintf("collection %s: %d field(s)", sum.Collection, len(sum.Fields)))

	c.PrintTable(w, []string{"Index", "Keys", "Unique", "Sparse"}, len(sum.Indexes), func(i int) []string {
		idx := sum.Indexes[i]
		return []string{idx.Name, strings.Join(idx.Keys, ", "), yesNo(idx.Unique), yesNo(idx.Sparse)}
	}, fmt.Sprintf("collection %s: %d index(es)", sum.Collection, len(sum.Indexes)))

	fmt.Fprintf(w, "collection %s: plugins %s\n\n", sum.Collection, strings.Join(sum.Plugins, ", "))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
