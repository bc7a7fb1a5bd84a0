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
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/schemalink/pkg/ddl"
)

type Graph struct {
	// Vertexes - the tables of the schema.
	//
	// The index of the table in the slice is the index of the table in the Graph.
	// This index used in TableLink to reference the table as well.
	Vertexes []ddl.Table
	// Graph - the oriented Graph, the edges go from the referencing table to the referenced one.
	Graph [][]Edge
	// TransposedGraph - the transposed Graph representation of the Vertexes.
	TransposedGraph [][]Edge
	// index - table name to vertex index.
	index map[string]int
	// edges - the oriented edges in the order of the foreign keys they were built from.
	edges []Edge
}

// NewGraph - creates a new Graph instance.
//
// Every foreign key becomes an edge in the Graph and its transposition in the TransposedGraph, so
// the union of both is the undirected view used for the table search. Foreign keys that reference
// a table missing from the tables list are skipped.
func NewGraph(tables []ddl.Table, foreignKeys []ddl.ForeignKey) *Graph {
	index := make(map[string]int, len(tables))
	for idx, t := range tables {
		index[t.Name] = idx
	}

	var edgeIdSequence int
	graph := make([][]Edge, len(tables))
	transposedGraph := make([][]Edge, len(tables))
	edges := make([]Edge, 0, len(foreignKeys))
	for _, fk := range foreignKeys {
		fromIdx, ok := index[fk.FromTable]
		if !ok {
			log.Debug().
				Str("Table", fk.FromTable).
				Str("Column", fk.FromColumn).
				Msg("unable to find referencing table: foreign key skipped")
			continue
		}
		toIdx, ok := index[fk.ToTable]
		if !ok {
			log.Debug().
				Str("Table", fk.FromTable).
				Str("ReferencedTable", fk.ToTable).
				Msg("unable to find referenced table: foreign key skipped")
			continue
		}

		from := NewTableLink(fromIdx, tables[fromIdx], NewKeysByColumn(fk.FromColumn))
		to := NewTableLink(toIdx, tables[toIdx], NewKeysByColumn(fk.ToColumn))

		edge := NewEdge(edgeIdSequence, toIdx, from, to)
		graph[fromIdx] = append(graph[fromIdx], edge)
		edges = append(edges, edge)

		// Transpose the edge
		transposedGraph[toIdx] = append(
			transposedGraph[toIdx],
			NewEdge(edgeIdSequence, fromIdx, to, from),
		)
		edgeIdSequence++
	}

	return &Graph{
		Vertexes:        tables,
		Graph:           graph,
		TransposedGraph: transposedGraph,
		index:           index,
		edges:           edges,
	}
}

// Has - reports whether the table is a vertex of the Graph.
func (g *Graph) Has(table string) bool {
	_, ok := g.index[table]
	return ok
}

// Len - returns the number of vertexes.
func (g *Graph) Len() int {
	return len(g.Vertexes)
}

// Edges - returns the oriented edges in the order they were declared.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Neighbors - returns the sorted names of the tables connected to the table by a foreign key in either
// direction. The relation is symmetric.
func (g *Graph) Neighbors(table string) []string {
	idx, ok := g.index[table]
	if !ok {
		return nil
	}
	var res []string
	for _, n := range g.neighbors(idx) {
		res = append(res, g.Vertexes[n].Name)
	}
	return res
}

// neighbors - returns the deduplicated vertex indexes adjacent to v in the undirected view. The result is
// ordered by table name to keep the traversal deterministic.
func (g *Graph) neighbors(v int) []int {
	seen := make(map[int]struct{}, len(g.Graph[v])+len(g.TransposedGraph[v]))
	var res []int
	for _, edges := range [][]Edge{g.Graph[v], g.TransposedGraph[v]} {
		for _, e := range edges {
			if _, ok := seen[e.Index()]; ok {
				continue
			}
			seen[e.Index()] = struct{}{}
			res = append(res, e.Index())
		}
	}
	slices.SortFunc(res, func(a, b int) int {
		switch {
		case g.Vertexes[a].Name < g.Vertexes[b].Name:
			return -1
		case g.Vertexes[a].Name > g.Vertexes[b].Name:
			return 1
		}
		return 0
	})
	return res
}
