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

package domains

import (
	"github.com/greenmaskio/schemalink/pkg/ddl"
)

type ReferencedColumn struct {
	// Name - column of the referencing table
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	// Referenced - column of the referenced table. Defaults to Name
	Referenced string `mapstructure:"referenced" json:"referenced,omitempty" yaml:"referenced,omitempty"`
}

type Reference struct {
	// Name - referenced table
	Name    string              `mapstructure:"name" json:"name" yaml:"name"`
	Columns []*ReferencedColumn `mapstructure:"columns" json:"columns" yaml:"columns"`
}

// VirtualReference - foreign keys that exist in the data model but are not declared in the DDL, e.g. in
// databases that do not enforce constraints.
type VirtualReference struct {
	// Name - referencing table
	Name       string       `mapstructure:"name" json:"name" yaml:"name"`
	References []*Reference `mapstructure:"references" json:"references" yaml:"references"`
}

// ForeignKeys - converts virtual references into foreign key edges. A reference without columns still
// produces one edge with an empty column.
func ForeignKeys(vrs []*VirtualReference) []ddl.ForeignKey {
	var res []ddl.ForeignKey
	for _, vr := range vrs {
		for _, r := range vr.References {
			if len(r.Columns) == 0 {
				res = append(res, ddl.NewForeignKey(vr.Name, "", r.Name, ""))
				continue
			}
			for _, c := range r.Columns {
				referenced := c.Referenced
				if referenced == "" {
					referenced = c.Name
				}
				res = append(res, ddl.NewForeignKey(vr.Name, c.Name, r.Name, referenced))
			}
		}
	}
	return res
}
