// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	stringsUtils "github.com/greenmaskio/schemalink/internal/utils/strings"
	"github.com/greenmaskio/schemalink/pkg/linker"
)

const pruneTemplateName = "pruneResult"

type PruneParams struct {
	Query      string
	MaxDepth   int
	Format     string
	Template   string
	ShowSchema bool
}

// Prune - prunes the schema for the query and prints the result in the requested format.
func Prune(w io.Writer, l *linker.Linker, params *PruneParams) error {
	if params.Format == FormatTemplate && params.Template == "" {
		return fmt.Errorf("--template is required for the %s format", FormatTemplate)
	}
	res := l.Prune(params.Query, params.MaxDepth)

	switch params.Format {
	case FormatText, "":
		return printPruneText(w, res, params.ShowSchema)
	case FormatJson:
		return printJson(w, res)
	case FormatYaml:
		return printYaml(w, res)
	case FormatTemplate:
		return printPruneTemplate(w, res, params.Template)
	}
	return unknownFormatError(params.Format)
}

func printPruneText(w io.Writer, res *linker.PruneResult, showSchema bool) error {
	if _, err := fmt.Fprintf(w, "Query: %s\n", stringsUtils.WrapString(res.Query, maxCellLength)); err != nil {
		return err
	}

	table := newTable(w, "Table", "Seed")
	for _, t := range res.SelectedTables {
		table.Append([]string{t, strconv.FormatBool(slices.Contains(res.SeedTables, t))})
	}
	table.Render()

	if len(res.FKPaths) > 0 {
		paths := newTable(w, "From", "To", "Via")
		for _, p := range res.FKPaths {
			paths.Append([]string{p.From, p.To, p.Via})
		}
		paths.Render()
	}

	_, err := fmt.Fprintf(
		w, "Tokens: %d -> %d (%.1f%% reduction)\n",
		res.FullSchemaTokens, res.PrunedSchemaTokens, res.ReductionPct,
	)
	if err != nil {
		return err
	}
	if showSchema {
		if _, err = fmt.Fprintf(w, "\n%s\n", res.PrunedSchema); err != nil {
			return err
		}
	}
	return nil
}

func printPruneTemplate(w io.Writer, res *linker.PruneResult, tmpl string) error {
	t, err := template.New(pruneTemplateName).Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("cannot parse output template: %w", err)
	}
	if err := t.Execute(w, res); err != nil {
		return fmt.Errorf("template render error: %w", err)
	}
	if !strings.HasSuffix(tmpl, "\n") {
		_, err = fmt.Fprintln(w)
	}
	return err
}
