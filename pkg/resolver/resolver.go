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
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/schemalink/pkg/columnindex"
)

const (
	// LayerTableNames - table names and their naive singular forms.
	LayerTableNames = 1
	// LayerEntities - business terms from the EntityMap.
	LayerEntities = 2
	// LayerColumns - indexed column names.
	LayerColumns = 3

	DefaultMinColumnLength = 6
)

var (
	ErrEmptyFallback = errors.New("fallback tables cannot be empty")

	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// DefaultFallbackTables - the most central tables of the demo schema, used when nothing else matched.
var DefaultFallbackTables = []string{"orders", "products", "customers"}

type Config struct {
	// Tables - the table universe, lower-cased.
	Tables []string
	// EntityMap - business vocabulary.
	EntityMap EntityMap
	// Columns - the column index. Nil disables the column layer.
	Columns *columnindex.Index
	// MinColumnLength - columns shorter than this never match.
	MinColumnLength int
	// FallbackTables - returned when no layer matched.
	FallbackTables []string
	Logger         *zerolog.Logger
}

type tableTerm struct {
	table    string
	singular string
}

// Resolver - deterministic matcher from a natural language query to seed tables. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	tables          []tableTerm
	entityMap       EntityMap
	columns         *columnindex.Index
	minColumnLength int
	fallback        []string
	logger          *zerolog.Logger
}

func New(cfg Config) (*Resolver, error) {
	if len(cfg.FallbackTables) == 0 {
		return nil, ErrEmptyFallback
	}
	minLen := cfg.MinColumnLength
	if minLen <= 0 {
		minLen = DefaultMinColumnLength
	}
	logger := cfg.Logger
	if logger == nil {
		logger = &log.Logger
	}

	tables := make([]tableTerm, 0, len(cfg.Tables))
	for _, t := range cfg.Tables {
		t = strings.ToLower(t)
		tables = append(tables, tableTerm{
			table:    t,
			singular: strings.TrimRight(t, "s"),
		})
	}

	return &Resolver{
		tables:          tables,
		entityMap:       cfg.EntityMap.Normalize(),
		columns:         cfg.Columns,
		minColumnLength: minLen,
		fallback:        append([]string(nil), cfg.FallbackTables...),
		logger:          logger,
	}, nil
}

// Resolve - runs all three layers.
func (r *Resolver) Resolve(query string) Seeds {
	return r.ResolveLayers(query, LayerColumns)
}

// ResolveLayers - resolves the query with the first layers only. It is used to measure the
// contribution of each layer. The result is never empty: when nothing matched the fallback tables are
// returned.
//
// Matching is by substring, so a table "order" matches inside "border" as well.
func (r *Resolver) ResolveLayers(query string, layers int) Seeds {
	seeds := NewSeeds()
	queryLower := strings.ToLower(query)
	resolved := make(map[string]struct{})

	if layers >= LayerTableNames {
		for _, t := range r.tables {
			if strings.Contains(queryLower, t.table) {
				seeds.Add(t.table)
				resolved[t.table] = struct{}{}
			} else if t.singular != "" && strings.Contains(queryLower, t.singular) {
				seeds.Add(t.table)
				resolved[t.singular] = struct{}{}
			}
		}
	}

	if layers >= LayerEntities {
		for _, word := range wordRe.FindAllString(queryLower, -1) {
			tables, ok := r.entityMap[word]
			if !ok {
				continue
			}
			seeds.Add(tables...)
			resolved[word] = struct{}{}
		}
	}

	if layers >= LayerColumns && r.columns != nil {
		for _, col := range r.columns.Columns() {
			if len(col) < r.minColumnLength {
				continue
			}
			// a term resolved by an earlier layer must not be counted twice
			if _, ok := resolved[col]; ok {
				continue
			}
			if strings.Contains(queryLower, col) {
				seeds.Add(r.columns.Tables(col)...)
			}
		}
	}

	if len(seeds) == 0 {
		r.logger.Warn().
			Str("Query", query).
			Strs("FallbackTables", r.fallback).
			Msg("no seed tables resolved: falling back to common tables")
		return NewSeeds(r.fallback...)
	}
	return seeds
}

// FallbackTables - returns a copy of the fallback tables.
func (r *Resolver) FallbackTables() []string {
	return append([]string(nil), r.fallback...)
}
