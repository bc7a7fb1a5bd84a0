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

package resolver

import (
	"maps"
	"slices"
)

// Seeds - the tables picked for a query before graph expansion.
type Seeds map[string]struct{}

func NewSeeds(tables ...string) Seeds {
	s := make(Seeds, len(tables))
	s.Add(tables...)
	return s
}

func (s Seeds) Add(tables ...string) {
	for _, t := range tables {
		s[t] = struct{}{}
	}
}

func (s Seeds) Has(table string) bool {
	_, ok := s[table]
	return ok
}

// Sorted - returns the tables in ascending order.
func (s Seeds) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
