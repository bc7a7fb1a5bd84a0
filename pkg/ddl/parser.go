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

package ddl

import (
	"regexp"
	"slices"
	"strings"
)

var (
	tableNameRe = regexp.MustCompile(
		`(?i)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+)\s*\(`,
	)
	// tableBlockRe - the block ends at the first ");" after the opening parenthesis. A literal ");" inside
	// a column definition cuts the block short.
	tableBlockRe = regexp.MustCompile(
		`(?is)(CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+)\s*\(.*?\);)`,
	)
	inlineForeignKeyRe = regexp.MustCompile(
		`(?i)FOREIGN\s+KEY\s*\((\w+)\)\s*REFERENCES\s+(\w+)\s*\((\w+)\)`,
	)
	alterForeignKeyRe = regexp.MustCompile(
		`(?i)ALTER\s+TABLE\s+(?:ONLY\s+)?(\w+)\s+ADD\s+(?:CONSTRAINT\s+\w+\s+)?` +
			`FOREIGN\s+KEY\s*\((\w+)\)\s*REFERENCES\s+(\w+)\s*\((\w+)\)`,
	)
	columnReferenceRe = regexp.MustCompile(
		`(?im)^\s*(\w+)\s+[^,\n]*?\bREFERENCES\s+(\w+)\s*\((\w+)\)`,
	)
)

// constraintKeywords - leading words of table constraints that look like column definitions to
// columnReferenceRe.
var constraintKeywords = []string{"foreign", "constraint", "primary", "unique", "check", "references"}

type ParseOptions struct {
	// ColumnReferences - also collect column level "col TYPE REFERENCES t(c)" constraints.
	ColumnReferences bool
}

func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ColumnReferences: true,
	}
}

// Schema - the result of parsing a DDL text.
type Schema struct {
	// Tables - tables in the order of their first appearance. If a table is defined twice the last
	// definition wins.
	Tables []Table
	// ForeignKeys - every foreign key found, in discovery order.
	ForeignKeys []ForeignKey
	// blocks - every CREATE TABLE block in source order, including redefinitions.
	blocks []string
}

// Parse - parses the DDL with the default options.
func Parse(text string) *Schema {
	return ParseWithOptions(text, DefaultParseOptions())
}

// ParseWithOptions - extracts table names, per table definition blocks and foreign key edges from the DDL.
//
// Malformed or unmatched constructs are skipped. The parser never fails: broken DDL produces a less
// connected schema.
func ParseWithOptions(text string, opt ParseOptions) *Schema {
	s := &Schema{}
	tableIdx := make(map[string]int)

	for _, m := range tableNameRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		if _, ok := tableIdx[name]; ok {
			continue
		}
		tableIdx[name] = len(s.Tables)
		s.Tables = append(s.Tables, NewTable(name, ""))
	}

	for _, m := range tableBlockRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[2])
		s.blocks = append(s.blocks, m[1])
		idx, ok := tableIdx[name]
		if !ok {
			tableIdx[name] = len(s.Tables)
			s.Tables = append(s.Tables, NewTable(name, m[1]))
			continue
		}
		s.Tables[idx].Definition = m[1]
	}

	for _, t := range s.Tables {
		if t.Definition == "" {
			continue
		}
		for _, m := range inlineForeignKeyRe.FindAllStringSubmatch(t.Definition, -1) {
			s.addForeignKey(t.Name, m[1], m[2], m[3])
		}
		if opt.ColumnReferences {
			for _, m := range columnReferenceRe.FindAllStringSubmatch(t.Definition, -1) {
				if slices.Contains(constraintKeywords, strings.ToLower(m[1])) {
					continue
				}
				s.addForeignKey(t.Name, m[1], m[2], m[3])
			}
		}
	}

	for _, m := range alterForeignKeyRe.FindAllStringSubmatch(text, -1) {
		s.addForeignKey(m[1], m[2], m[3], m[4])
	}

	return s
}

func (s *Schema) addForeignKey(fromTable, fromColumn, toTable, toColumn string) {
	s.ForeignKeys = append(s.ForeignKeys, NewForeignKey(
		strings.ToLower(fromTable),
		strings.ToLower(fromColumn),
		strings.ToLower(toTable),
		strings.ToLower(toColumn),
	))
}

// TableNames - returns the sorted table names.
func (s *Schema) TableNames() []string {
	res := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		res = append(res, t.Name)
	}
	slices.Sort(res)
	return res
}

// Table - returns the table by its lower-cased name.
func (s *Schema) Table(name string) (Table, bool) {
	idx := slices.IndexFunc(s.Tables, func(t Table) bool {
		return t.Name == name
	})
	if idx == -1 {
		return Table{}, false
	}
	return s.Tables[idx], true
}

// CreateBlocks - returns all CREATE TABLE blocks of the DDL joined by a blank line. Comments, DROP
// statements and other operational commands between the blocks are left out.
func (s *Schema) CreateBlocks() string {
	return strings.Join(s.blocks, "\n\n")
}
