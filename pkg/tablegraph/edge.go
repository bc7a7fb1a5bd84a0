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

// Edge - an edge of the Graph. In the oriented Graph it goes from the referencing table to the
// referenced one, in the TransposedGraph it goes backwards.
type Edge struct {
	// id - the unique identifier of the edge. An edge and its transposition share the id.
	id int
	// idx - the index of the right table in the Graph.
	idx int
	// from - the left table.
	from TableLink
	// to - the right table.
	to TableLink
}

// NewEdge - creates a new Edge instance.
func NewEdge(id, idx int, a TableLink, b TableLink) Edge {
	return Edge{
		id:   id,
		idx:  idx,
		from: a,
		to:   b,
	}
}

// ID - returns the unique identifier of the edge.
func (e Edge) ID() int {
	return e.id
}

// Index - returns the index of the right table in the Graph.
func (e Edge) Index() int {
	return e.idx
}

// From - returns the left table.
func (e Edge) From() TableLink {
	return e.from
}

// To - returns the right table.
func (e Edge) To() TableLink {
	return e.to
}
