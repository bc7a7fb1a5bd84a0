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
	"io"
	"strconv"

	stringsUtils "github.com/greenmaskio/schemalink/internal/utils/strings"
	"github.com/greenmaskio/schemalink/pkg/linker"
)

type GraphTable struct {
	Name      string   `json:"name" yaml:"name"`
	Neighbors []string `json:"neighbors" yaml:"neighbors"`
}

type GraphEdge struct {
	From       string `json:"from" yaml:"from"`
	FromColumn string `json:"from_column" yaml:"from_column"`
	To         string `json:"to" yaml:"to"`
	ToColumn   string `json:"to_column" yaml:"to_column"`
}

type GraphColumn struct {
	Name   string   `json:"name" yaml:"name"`
	Tables []string `json:"tables" yaml:"tables"`
}

// GraphInfo - everything the linker knows about the schema.
type GraphInfo struct {
	Tables  []*GraphTable  `json:"tables" yaml:"tables"`
	Edges   []*GraphEdge   `json:"edges" yaml:"edges"`
	Columns []*GraphColumn `json:"columns" yaml:"columns"`
}

func NewGraphInfo(l *linker.Linker) *GraphInfo {
	info := &GraphInfo{
		Tables:  make([]*GraphTable, 0, len(l.Tables())),
		Edges:   make([]*GraphEdge, 0, len(l.Graph().Edges())),
		Columns: make([]*GraphColumn, 0, l.ColumnIndex().Len()),
	}
	g := l.Graph()
	for _, t := range l.Tables() {
		neighbors := g.Neighbors(t)
		if neighbors == nil {
			neighbors = make([]string, 0)
		}
		info.Tables = append(info.Tables, &GraphTable{Name: t, Neighbors: neighbors})
	}
	for _, e := range g.Edges() {
		var fromColumn, toColumn string
		if keys := e.From().Keys(); len(keys) > 0 {
			fromColumn = keys[0].Name
		}
		if keys := e.To().Keys(); len(keys) > 0 {
			toColumn = keys[0].Name
		}
		info.Edges = append(info.Edges, &GraphEdge{
			From:       e.From().GetTableName(),
			FromColumn: fromColumn,
			To:         e.To().GetTableName(),
			ToColumn:   toColumn,
		})
	}
	idx := l.ColumnIndex()
	for _, c := range idx.Columns() {
		info.Columns = append(info.Columns, &GraphColumn{Name: c, Tables: idx.Tables(c)})
	}
	return info
}

// ShowGraph - prints the tables with their neighbors, the foreign key edges and the column index.
func ShowGraph(w io.Writer, l *linker.Linker, format string) error {
	info := NewGraphInfo(l)
	switch format {
	case FormatText, "":
		return printGraphText(w, info)
	case FormatJson:
		return printJson(w, info)
	case FormatYaml:
		return printYaml(w, info)
	}
	return unknownFormatError(format)
}

func printGraphText(w io.Writer, info *GraphInfo) error {
	tables := newTable(w, "Table", "Degree", "Neighbors")
	for _, t := range info.Tables {
		tables.Append([]string{
			t.Name, strconv.Itoa(len(t.Neighbors)), stringsUtils.JoinWrapped(t.Neighbors, ", ", maxCellLength),
		})
	}
	tables.Render()

	edges := newTable(w, "From", "Column", "To", "Column")
	for _, e := range info.Edges {
		edges.Append([]string{e.From, e.FromColumn, e.To, e.ToColumn})
	}
	edges.Render()

	columns := newTable(w, "Column", "Tables")
	for _, c := range info.Columns {
		columns.Append([]string{c.Name, stringsUtils.JoinWrapped(c.Tables, ", ", maxCellLength)})
	}
	columns.Render()
	return nil
}
