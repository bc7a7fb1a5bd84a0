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

package linker

// FKPath - a foreign key between two selected tables. It explains why both tables are in the result.
type FKPath struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Via  string `json:"via" yaml:"via"`
}

// PruneResult - the outcome of pruning the schema for one query.
type PruneResult struct {
	Query              string   `json:"query" yaml:"query"`
	SeedTables         []string `json:"seed_tables" yaml:"seed_tables"`
	SelectedTables     []string `json:"selected_tables" yaml:"selected_tables"`
	PrunedSchema       string   `json:"pruned_schema" yaml:"pruned_schema"`
	FKPaths            []FKPath `json:"fk_paths" yaml:"fk_paths"`
	FullSchemaTokens   int      `json:"full_schema_tokens" yaml:"full_schema_tokens"`
	PrunedSchemaTokens int      `json:"pruned_schema_tokens" yaml:"pruned_schema_tokens"`
	ReductionPct       float64  `json:"reduction_pct" yaml:"reduction_pct"`
}
