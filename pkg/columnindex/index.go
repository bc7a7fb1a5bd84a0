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

package columnindex

import (
	"regexp"
	"slices"
	"strings"

	"github.com/greenmaskio/schemalink/pkg/ddl"
)

var columnRe = regexp.MustCompile(
	`(?im)^\s+(\w+)\s+` +
		`(?:SERIAL|INTEGER|BIGINT|SMALLINT|NUMERIC|DECIMAL|VARCHAR|TEXT|BOOLEAN|` +
		`DATE|TIMESTAMP|JSON|JSONB|DOUBLE\s+PRECISION|REAL)`,
)

// DefaultStopList - column names too generic to point at a particular table.
var DefaultStopList = []string{
	"created_at",
	"date",
	"description",
	"id",
	"is_active",
	"name",
	"notes",
	"status",
	"type",
	"updated_at",
}

// Index - maps a lower-cased column name to the tables that declare it.
type Index struct {
	columns map[string][]string
}

// New - builds the index from the definition blocks. Columns from the stop list are not indexed.
func New(tables []ddl.Table, stopList []string) *Index {
	stop := make(map[string]struct{}, len(stopList))
	for _, s := range stopList {
		stop[strings.ToLower(s)] = struct{}{}
	}

	idx := &Index{
		columns: make(map[string][]string),
	}
	for _, t := range tables {
		for _, m := range columnRe.FindAllStringSubmatch(t.Definition, -1) {
			col := strings.ToLower(m[1])
			if _, ok := stop[col]; ok {
				continue
			}
			if !slices.Contains(idx.columns[col], t.Name) {
				idx.columns[col] = append(idx.columns[col], t.Name)
			}
		}
	}
	for col := range idx.columns {
		slices.Sort(idx.columns[col])
	}
	return idx
}

// Tables - returns the sorted tables declaring the column.
func (i *Index) Tables(column string) []string {
	return i.columns[strings.ToLower(column)]
}

// Columns - returns the sorted indexed column names.
func (i *Index) Columns() []string {
	res := make([]string, 0, len(i.columns))
	for col := range i.columns {
		res = append(res, col)
	}
	slices.Sort(res)
	return res
}

func (i *Index) Len() int {
	return len(i.columns)
}
