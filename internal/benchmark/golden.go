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

package benchmark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/greenmaskio/schemalink/internal/storages"
	"github.com/greenmaskio/schemalink/internal/utils/ioutils"
)

const OutcomeAllowed = "allowed"

var (
	ErrInvalidGoldenFile  = errors.New("invalid golden queries file")
	ErrNoPrunableQueries  = errors.New("no prunable golden queries")
	ErrGoldenQueryMissing = errors.New("golden query not found")
)

// GoldenQuery - a natural language question with the tables a correct SQL answer touches.
type GoldenQuery struct {
	ID              string   `json:"id" yaml:"id"`
	NLQuery         string   `json:"nl_query" yaml:"nl_query"`
	ExpectedTables  []string `json:"expected_tables" yaml:"expected_tables"`
	ExpectedOutcome string   `json:"expected_outcome" yaml:"expected_outcome"`
}

// IsPrunable - only allowed queries with known expected tables can be scored.
func (gq *GoldenQuery) IsPrunable() bool {
	return gq.ExpectedOutcome == OutcomeAllowed && len(gq.ExpectedTables) > 0
}

// ParseGoldenQueries - parses a JSON array of golden queries. An object with the array under the "queries"
// key is accepted as well.
func ParseGoldenQueries(data []byte) ([]*GoldenQuery, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("malformed json: %w", ErrInvalidGoldenFile)
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("queries")
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("expected an array of queries: %w", ErrInvalidGoldenFile)
	}

	var (
		res []*GoldenQuery
		err error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		gq := &GoldenQuery{
			ID:              value.Get("id").String(),
			NLQuery:         value.Get("nl_query").String(),
			ExpectedOutcome: value.Get("expected_outcome").String(),
			ExpectedTables:  make([]string, 0),
		}
		if gq.ID == "" || gq.NLQuery == "" {
			err = fmt.Errorf("query %d: id and nl_query are required: %w", key.Int(), ErrInvalidGoldenFile)
			return false
		}
		for _, t := range value.Get("expected_tables").Array() {
			gq.ExpectedTables = append(gq.ExpectedTables, strings.ToLower(t.String()))
		}
		res = append(res, gq)
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// LoadGoldenQueries - reads the golden queries from the storage when st is not nil, otherwise from the
// local file. Files with the .gz extension are decompressed.
func LoadGoldenQueries(ctx context.Context, st storages.Storager, path string) ([]*GoldenQuery, error) {
	var (
		data []byte
		err  error
	)
	if st != nil {
		data, err = storages.ReadObject(ctx, st, path)
	} else {
		data, err = readLocalFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read golden queries: %w", err)
	}
	return ParseGoldenQueries(data)
}

func readLocalFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// ReadAll closes the file
	data, _, err := ioutils.ReadAll(path, f)
	return data, err
}

// Prunable - returns the queries that can be scored.
func Prunable(queries []*GoldenQuery) []*GoldenQuery {
	res := make([]*GoldenQuery, 0, len(queries))
	for _, gq := range queries {
		if gq.IsPrunable() {
			res = append(res, gq)
		}
	}
	return res
}

// FilterByID - returns the prunable query with the provided id.
func FilterByID(queries []*GoldenQuery, id string) ([]*GoldenQuery, error) {
	for _, gq := range Prunable(queries) {
		if gq.ID == id {
			return []*GoldenQuery{gq}, nil
		}
	}
	return nil, fmt.Errorf("prunable query with id \"%s\": %w", id, ErrGoldenQueryMissing)
}
