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
	"strings"

	"github.com/greenmaskio/schemalink/pkg/linker"
	"github.com/greenmaskio/schemalink/pkg/resolver"
)

type ResolveResult struct {
	Query      string   `json:"query" yaml:"query"`
	Layers     int      `json:"layers" yaml:"layers"`
	SeedTables []string `json:"seed_tables" yaml:"seed_tables"`
}

// Resolve - prints the seed tables produced by the first layers resolver layers.
func Resolve(w io.Writer, l *linker.Linker, query string, layers int, format string) error {
	if layers < resolver.LayerTableNames || layers > resolver.LayerColumns {
		return fmt.Errorf(
			"layers must be in range [%d, %d] got %d", resolver.LayerTableNames, resolver.LayerColumns, layers,
		)
	}
	res := &ResolveResult{
		Query:      query,
		Layers:     layers,
		SeedTables: l.ResolveTablesLayers(query, layers),
	}

	switch format {
	case FormatText, "":
		_, err := fmt.Fprintln(w, strings.Join(res.SeedTables, "\n"))
		return err
	case FormatJson:
		return printJson(w, res)
	case FormatYaml:
		return printYaml(w, res)
	}
	return unknownFormatError(format)
}
