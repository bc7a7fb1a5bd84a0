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

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/greenmaskio/schemalink/pkg/columnindex"
	"github.com/greenmaskio/schemalink/pkg/ddl"
	"github.com/greenmaskio/schemalink/pkg/resolver"
	"github.com/greenmaskio/schemalink/pkg/tablegraph"
	"github.com/greenmaskio/schemalink/pkg/tokenizer"
)

const DefaultMaxDepth = 2

var ErrNoTables = errors.New("no tables found in ddl")

// Linker - selects the tables relevant to a natural language query and projects the schema down to them.
//
// Everything is built in New and never modified afterwards, so a Linker can be shared between goroutines.
type Linker struct {
	schema      *ddl.Schema
	definitions map[string]string
	graph       *tablegraph.Graph
	columns     *columnindex.Index
	resolver    *resolver.Resolver
	tokenizer   tokenizer.Tokenizer
	fullTokens  int
	logger      *zerolog.Logger
}

// New - parses the DDL and builds the foreign key graph, the column index and the resolver.
func New(text string, opts ...Option) (*Linker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = &log.Logger
	}
	if o.tokenizer == nil {
		tok, err := tokenizer.NewTiktoken(tokenizer.DefaultEncoding)
		if err != nil {
			return nil, fmt.Errorf("create tokenizer: %w", err)
		}
		o.tokenizer = tok
	}

	schema := ddl.ParseWithOptions(text, o.parseOptions)
	if len(schema.Tables) == 0 {
		return nil, ErrNoTables
	}
	for _, fk := range o.extraKeys {
		schema.ForeignKeys = append(schema.ForeignKeys, ddl.NewForeignKey(
			strings.ToLower(fk.FromTable),
			strings.ToLower(fk.FromColumn),
			strings.ToLower(fk.ToTable),
			strings.ToLower(fk.ToColumn),
		))
	}

	graph := tablegraph.NewGraph(schema.Tables, schema.ForeignKeys)
	o.logger.Debug().
		Int("Tables", graph.Len()).
		Int("ForeignKeys", len(schema.ForeignKeys)).
		Int("Edges", len(graph.Edges())).
		Msg("foreign key graph built")

	columns := columnindex.New(schema.Tables, o.stopList)

	res, err := resolver.New(resolver.Config{
		Tables:          schema.TableNames(),
		EntityMap:       o.entityMap,
		Columns:         columns,
		MinColumnLength: o.minColumnLength,
		FallbackTables:  o.fallbackTables,
		Logger:          o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create resolver: %w", err)
	}

	definitions := make(map[string]string, len(schema.Tables))
	for _, t := range schema.Tables {
		definitions[t.Name] = t.Definition
	}

	return &Linker{
		schema:      schema,
		definitions: definitions,
		graph:       graph,
		columns:     columns,
		resolver:    res,
		tokenizer:   o.tokenizer,
		fullTokens:  o.tokenizer.Count(schema.CreateBlocks()),
		logger:      o.logger,
	}, nil
}

// PruneForQuery - builds a Linker and prunes the schema for a single query.
func PruneForQuery(query, text string, maxDepth int, opts ...Option) (*PruneResult, error) {
	l, err := New(text, opts...)
	if err != nil {
		return nil, err
	}
	return l.Prune(query, maxDepth), nil
}

// Prune - resolves the seed tables, expands them over the foreign key graph by maxDepth hops and projects
// the schema to the selected tables.
func (l *Linker) Prune(query string, maxDepth int) *PruneResult {
	seeds := l.ResolveTables(query)
	selected := l.FindMinimalTables(seeds, maxDepth)
	pruned := l.PruneSchema(selected)
	prunedTokens := l.tokenizer.Count(pruned)
	reduction := ReductionPct(l.fullTokens, prunedTokens)

	l.logger.Debug().
		Int("SelectedTables", len(selected)).
		Int("FullTokens", l.fullTokens).
		Int("PrunedTokens", prunedTokens).
		Float64("ReductionPct", reduction).
		Msg("schema pruned")

	return &PruneResult{
		Query:              query,
		SeedTables:         seeds,
		SelectedTables:     selected,
		PrunedSchema:       pruned,
		FKPaths:            l.FKPaths(selected),
		FullSchemaTokens:   l.fullTokens,
		PrunedSchemaTokens: prunedTokens,
		ReductionPct:       reduction,
	}
}

// ResolveTables - returns the sorted seed tables for the query. The result is never empty.
func (l *Linker) ResolveTables(query string) []string {
	return l.resolver.Resolve(query).Sorted()
}

// ResolveTablesLayers - like ResolveTables but with the first layers of the resolver only.
func (l *Linker) ResolveTablesLayers(query string, layers int) []string {
	return l.resolver.ResolveLayers(query, layers).Sorted()
}

// FindMinimalTables - expands the seeds over the foreign key graph. See tablegraph.Graph.FindMinimalTables.
func (l *Linker) FindMinimalTables(seeds []string, maxDepth int) []string {
	return l.graph.FindMinimalTables(seeds, maxDepth)
}

// PruneSchema - returns the definitions of the selected tables ordered by name and separated by a blank
// line. Unknown tables are skipped.
func (l *Linker) PruneSchema(selected []string) string {
	names := slices.Clone(selected)
	slices.Sort(names)
	names = slices.Compact(names)

	blocks := make([]string, 0, len(names))
	for _, name := range names {
		def, ok := l.definitions[name]
		if !ok || def == "" {
			continue
		}
		blocks = append(blocks, def)
	}
	return strings.Join(blocks, "\n\n")
}

// FKPaths - returns the foreign keys whose both ends are selected, in declaration order.
func (l *Linker) FKPaths(selected []string) []FKPath {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}
	paths := make([]FKPath, 0)
	for _, fk := range l.schema.ForeignKeys {
		_, fromOk := set[fk.FromTable]
		_, toOk := set[fk.ToTable]
		if fromOk && toOk {
			paths = append(paths, FKPath{From: fk.FromTable, To: fk.ToTable, Via: fk.FromColumn})
		}
	}
	return paths
}

// CountTokens - counts the tokens of the text with the linker tokenizer.
func (l *Linker) CountTokens(text string) int {
	return l.tokenizer.Count(text)
}

// FullSchemaTokens - token count of all CREATE TABLE blocks of the DDL.
func (l *Linker) FullSchemaTokens() int {
	return l.fullTokens
}

// Tables - returns the sorted table names.
func (l *Linker) Tables() []string {
	return l.schema.TableNames()
}

func (l *Linker) ForeignKeys() []ddl.ForeignKey {
	return l.schema.ForeignKeys
}

func (l *Linker) Graph() *tablegraph.Graph {
	return l.graph
}

func (l *Linker) ColumnIndex() *columnindex.Index {
	return l.columns
}

func (l *Linker) Resolver() *resolver.Resolver {
	return l.resolver
}

func (l *Linker) Tokenizer() tokenizer.Tokenizer {
	return l.tokenizer
}

// ReductionPct - percentage of tokens saved by pruning, rounded to one decimal. Zero when the full
// schema has no tokens.
func ReductionPct(fullTokens, prunedTokens int) float64 {
	if fullTokens <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(fullTokens - prunedTokens)).
		Div(decimal.NewFromInt(int64(fullTokens))).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		InexactFloat64()
}
