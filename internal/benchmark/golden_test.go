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
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/schemalink/internal/utils/testutils"
)

const goldenFixture = "testdata/golden_queries.json"

func TestParseGoldenQueries(t *testing.T) {
	data, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)

	queries, err := ParseGoldenQueries(data)
	require.NoError(t, err)
	require.Len(t, queries, 8)
	assert.Equal(t, "GQ-001", queries[0].ID)
	assert.Equal(t, []string{"customers", "orders"}, queries[0].ExpectedTables)
	assert.True(t, queries[0].IsPrunable())
	assert.False(t, queries[6].IsPrunable(), "blocked query")
	assert.False(t, queries[7].IsPrunable(), "empty expected tables")
	assert.Len(t, Prunable(queries), 6)
}

func TestParseGoldenQueries_Wrapped(t *testing.T) {
	data := []byte(`{"queries": [{"id": "Q1", "nl_query": "orders", "expected_tables": ["Orders"], "expected_outcome": "allowed"}]}`)
	queries, err := ParseGoldenQueries(data)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, []string{"orders"}, queries[0].ExpectedTables)
	assert.Equal(t, OutcomeAllowed, queries[0].ExpectedOutcome)
	assert.True(t, queries[0].IsPrunable())
}

// TestParseGoldenQueries_OutcomeIsExact - the outcome is compared as written, "Allowed" is not scored
func TestParseGoldenQueries_OutcomeIsExact(t *testing.T) {
	data := []byte(`[
  {"id": "Q1", "nl_query": "orders", "expected_tables": ["orders"], "expected_outcome": "Allowed"},
  {"id": "Q2", "nl_query": "orders", "expected_tables": ["orders"], "expected_outcome": "ALLOWED"},
  {"id": "Q3", "nl_query": "orders", "expected_tables": ["orders"], "expected_outcome": "allowed"}
]`)
	queries, err := ParseGoldenQueries(data)
	require.NoError(t, err)
	require.Len(t, queries, 3)
	assert.Equal(t, "Allowed", queries[0].ExpectedOutcome)
	assert.False(t, queries[0].IsPrunable())
	assert.False(t, queries[1].IsPrunable())
	assert.True(t, queries[2].IsPrunable())
	assert.Len(t, Prunable(queries), 1)
}

func TestParseGoldenQueries_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: `[{"id": `},
		{name: "not an array", data: `{"id": "Q1"}`},
		{name: "missing id", data: `[{"nl_query": "orders"}]`},
		{name: "missing query", data: `[{"id": "Q1"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGoldenQueries([]byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidGoldenFile)
		})
	}
}

func TestLoadGoldenQueries_LocalGzip(t *testing.T) {
	data, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err = gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "golden.json.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	queries, err := LoadGoldenQueries(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Len(t, queries, 8)
}

func TestLoadGoldenQueries_Storage(t *testing.T) {
	ctx := context.Background()
	data, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)

	st := &testutils.StorageMock{}
	st.On("Exists", mock.Anything, "golden.json").Return(true, nil)
	st.On("GetObject", mock.Anything, "golden.json").Return(io.NopCloser(bytes.NewReader(data)), nil)

	queries, err := LoadGoldenQueries(ctx, st, "golden.json")
	require.NoError(t, err)
	assert.Len(t, queries, 8)
	st.AssertExpectations(t)
}

func TestLoadGoldenQueries_NotFound(t *testing.T) {
	_, err := LoadGoldenQueries(context.Background(), nil, filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilterByID(t *testing.T) {
	data, err := os.ReadFile(goldenFixture)
	require.NoError(t, err)
	queries, err := ParseGoldenQueries(data)
	require.NoError(t, err)

	res, err := FilterByID(queries, "GQ-003")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "GQ-003", res[0].ID)

	_, err = FilterByID(queries, "GQ-007")
	require.ErrorIs(t, err, ErrGoldenQueryMissing)
}
