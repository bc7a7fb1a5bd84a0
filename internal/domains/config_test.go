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

package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/schemalink/pkg/ddl"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.Same(t, cfg, NewConfig())

	assert.Equal(t, SchemaSourceFile, cfg.Schema.Source)
	assert.Equal(t, StorageTypeDirectory, cfg.Storage.Type)
	assert.Equal(t, 2, cfg.Linker.MaxDepth)
	assert.Equal(t, 6, cfg.Linker.MinColumnLength)
	assert.Equal(t, []string{"orders", "products", "customers"}, cfg.Linker.FallbackTables)
	assert.Equal(t, []string{"orders", "order_items"}, cfg.Linker.EntityMap["revenue"])
	assert.True(t, cfg.Linker.ColumnReferences)
	assert.Equal(t, "recall >= 0.8", cfg.Benchmark.PassCondition)
}

func TestNewDefaultConfig_Independent(t *testing.T) {
	a := NewDefaultConfig()
	b := NewDefaultConfig()
	a.Linker.FallbackTables[0] = "changed"
	a.Linker.EntityMap["revenue"] = nil
	assert.Equal(t, "orders", b.Linker.FallbackTables[0])
	assert.NotEmpty(t, b.Linker.EntityMap["revenue"])
}

func TestForeignKeys(t *testing.T) {
	vrs := []*VirtualReference{
		{
			Name: "invoices",
			References: []*Reference{
				{
					Name:    "orders",
					Columns: []*ReferencedColumn{{Name: "order_ref", Referenced: "order_id"}},
				},
				{
					Name:    "customers",
					Columns: []*ReferencedColumn{{Name: "customer_id"}},
				},
				{
					Name: "warehouses",
				},
			},
		},
	}

	assert.Equal(t, []ddl.ForeignKey{
		ddl.NewForeignKey("invoices", "order_ref", "orders", "order_id"),
		ddl.NewForeignKey("invoices", "customer_id", "customers", "customer_id"),
		ddl.NewForeignKey("invoices", "", "warehouses", ""),
	}, ForeignKeys(vrs))
	assert.Empty(t, ForeignKeys(nil))
}
