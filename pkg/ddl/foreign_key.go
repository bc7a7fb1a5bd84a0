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

// ForeignKey - a referential constraint found in the DDL. The direction is kept as declared: FromTable
// references ToTable.
type ForeignKey struct {
	FromTable  string
	FromColumn string
	ToTable    string
	ToColumn   string
}

func NewForeignKey(fromTable, fromColumn, toTable, toColumn string) ForeignKey {
	return ForeignKey{
		FromTable:  fromTable,
		FromColumn: fromColumn,
		ToTable:    toTable,
		ToColumn:   toColumn,
	}
}
