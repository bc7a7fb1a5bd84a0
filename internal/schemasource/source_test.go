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

package schemasource

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/storages"
	"github.com/greenmaskio/schemalink/internal/storages/directory"
	"github.com/greenmaskio/schemalink/internal/utils/testutils"
	"github.com/greenmaskio/schemalink/pkg/columnindex"
	"github.com/greenmaskio/schemalink/pkg/ddl"
)

const testDDL = `CREATE TABLE customers (
    customer_id SERIAL PRIMARY KEY,
    email VARCHAR(200)
);
`

func int32Ptr(v int32) *int32 {
	return &v
}

func writeGzip(t *testing.T, filePath, data string) {
	t.Helper()
	f, err := os.Create(filePath)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func TestColumnType(t *testing.T) {
	tests := []struct {
		dataType   string
		isSerial   bool
		charLength *int32
		precision  *int32
		scale      *int32
		expected   string
	}{
		{dataType: "integer", isSerial: true, expected: "SERIAL"},
		{dataType: "integer", expected: "INTEGER"},
		{dataType: "bigint", isSerial: true, expected: "BIGSERIAL"},
		{dataType: "numeric", precision: int32Ptr(12), scale: int32Ptr(2), expected: "NUMERIC(12,2)"},
		{dataType: "numeric", expected: "NUMERIC"},
		{dataType: "character varying", charLength: int32Ptr(100), expected: "VARCHAR(100)"},
		{dataType: "timestamp with time zone", expected: "TIMESTAMP"},
		{dataType: "double precision", expected: "DOUBLE PRECISION"},
		{dataType: "jsonb", expected: "JSONB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, columnType(tt.dataType, tt.isSerial, tt.charLength, tt.precision, tt.scale))
		})
	}
}

func TestRenderDDL(t *testing.T) {
	tables := []*TableDefinition{
		{
			Name: "customers",
			Columns: []*Column{
				{Name: "customer_id", Type: "SERIAL", NotNull: true},
				{Name: "email", Type: "VARCHAR(200)"},
			},
			PrimaryKey: []string{"customer_id"},
		},
		{
			Name: "orders",
			Columns: []*Column{
				{Name: "order_id", Type: "SERIAL", NotNull: true},
				{Name: "customer_id", Type: "INTEGER", NotNull: true},
				{Name: "order_date", Type: "DATE"},
			},
			PrimaryKey: []string{"order_id"},
		},
		{
			Name: "order_tags",
			Columns: []*Column{
				{Name: "order_id", Type: "INTEGER", NotNull: true},
				{Name: "tag", Type: "TEXT", NotNull: true},
			},
			PrimaryKey: []string{"order_id", "tag"},
		},
	}
	fks := []ddl.ForeignKey{
		ddl.NewForeignKey("orders", "customer_id", "customers", "customer_id"),
		ddl.NewForeignKey("order_tags", "order_id", "orders", "order_id"),
	}

	text := RenderDDL(tables, fks)
	assert.Contains(t, text, "    customer_id SERIAL PRIMARY KEY,\n")
	assert.Contains(t, text, "    customer_id INTEGER NOT NULL,\n")
	assert.Contains(t, text, "    PRIMARY KEY (order_id, tag)\n);")
	assert.Contains(t, text, "ALTER TABLE ONLY orders ADD FOREIGN KEY (customer_id) REFERENCES customers(customer_id);")

	// the rendered text goes through the regular parser
	schema := ddl.Parse(text)
	assert.Equal(t, []string{"customers", "order_tags", "orders"}, schema.TableNames())
	assert.Equal(t, fks, schema.ForeignKeys)
	idx := columnindex.New(schema.Tables, columnindex.DefaultStopList)
	assert.Equal(t, []string{"orders"}, idx.Tables("order_date"))
	assert.Equal(t, []string{"order_tags", "orders"}, idx.Tables("order_id"))

	assert.Equal(t, "", RenderDDL(nil, nil))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	plain := path.Join(dir, "schema.sql")
	require.NoError(t, os.WriteFile(plain, []byte(testDDL), 0600))
	compressed := path.Join(dir, "schema.sql.gz")
	writeGzip(t, compressed, testDDL)

	text, err := LoadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, testDDL, text)

	text, err = LoadFile(compressed)
	require.NoError(t, err)
	assert.Equal(t, testDDL, text)

	_, err = LoadFile(path.Join(dir, "missing.sql"))
	require.Error(t, err)

	_, err = LoadFile("")
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestLoadFromStorage(t *testing.T) {
	st := &testutils.StorageMock{}
	st.On("Exists", mock.Anything, "retail/schema.sql").Return(true, nil)
	st.On("GetObject", mock.Anything, "retail/schema.sql").
		Return(io.NopCloser(bytes.NewBufferString(testDDL)), nil)
	st.On("Exists", mock.Anything, "missing.sql").Return(false, nil)
	st.On("GetCwd").Return("/")

	text, err := LoadFromStorage(context.Background(), st, "retail/schema.sql")
	require.NoError(t, err)
	assert.Equal(t, testDDL, text)

	_, err = LoadFromStorage(context.Background(), st, "missing.sql")
	require.ErrorIs(t, err, storages.ErrFileNotFound)

	_, err = LoadFromStorage(context.Background(), st, "")
	require.ErrorIs(t, err, ErrEmptyPath)

	st.AssertExpectations(t)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeGzip(t, path.Join(dir, "schema.sql.gz"), testDDL)
	require.NoError(t, os.WriteFile(path.Join(dir, "other.sql"), []byte("CREATE TABLE other (id INTEGER);"), 0600))

	cfg := domains.NewDefaultConfig()
	cfg.Schema.Source = domains.SchemaSourceStorage
	cfg.Schema.Path = "schema.sql.gz"
	cfg.Storage.Directory = &directory.Config{Path: dir}

	text, err := Load(context.Background(), cfg, "")
	require.NoError(t, err)
	assert.Equal(t, testDDL, text)

	// the override always reads a local file
	text, err = Load(context.Background(), cfg, path.Join(dir, "other.sql"))
	require.NoError(t, err)
	assert.Contains(t, text, "CREATE TABLE other")

	cfg.Schema.Source = "mysql"
	_, err = Load(context.Background(), cfg, "")
	require.ErrorIs(t, err, ErrUnknownSource)

	cfg.Schema.Source = domains.SchemaSourcePostgres
	_, err = Load(context.Background(), cfg, "")
	require.ErrorIs(t, err, ErrEmptyDsn)
}
