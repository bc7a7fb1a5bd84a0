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
)

type queueItem struct {
	v     int
	depth int
}

// FindMinimalTables - breadth-first search from the seed tables over the undirected view of the Graph,
// bounded by maxDepth hops.
//
// Seeds that are not vertexes of the Graph are dropped. maxDepth <= 0 returns the known seeds only. The
// result is sorted and grows monotonically with maxDepth.
func (g *Graph) FindMinimalTables(seeds []string, maxDepth int) []string {
	visited := make([]bool, len(g.Vertexes))
	queue := make([]queueItem, 0, len(seeds))
	for _, s := range seeds {
		if idx, ok := g.index[s]; ok {
			queue = append(queue, queueItem{v: idx})
		}
	}

	res := make([]string, 0, len(queue))
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if visited[item.v] {
			continue
		}
		visited[item.v] = true
		res = append(res, g.Vertexes[item.v].Name)

		if item.depth >= maxDepth {
			continue
		}
		for _, n := range g.neighbors(item.v) {
			if !visited[n] {
				queue = append(queue, queueItem{v: n, depth: item.depth + 1})
			}
		}
	}
	slices.Sort(res)
	return res
}
