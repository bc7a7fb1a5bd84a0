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

package tablegraph

import (
	"github.com/greenmaskio/schemalink/pkg/ddl"
)

// TableLink - the left or right table of an edge together with the columns that join it to the other side.
type TableLink struct {
	// idx - the index of the table in the Graph.
	idx int
	// table - the table itself.
	table ddl.Table
	// keys - the columns used to join this specific table with another table.
	keys []Key
}

// NewTableLink - creates a new TableLink instance.
func NewTableLink(idx int, table ddl.Table, keys []Key) TableLink {
	return TableLink{
		idx:   idx,
		table: table,
		keys:  keys,
	}
}

// Index - returns the index of the table in the Graph.
func (tl TableLink) Index() int {
	return tl.idx
}

// Table - returns the table itself.
func (tl TableLink) Table() ddl.Table {
	return tl.table
}

func (tl TableLink) GetTableName() string {
	return tl.table.Name
}

// Keys - returns the columns used to join this specific table with another table.
func (tl TableLink) Keys() []Key {
	return tl.keys
}
