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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/schemalink/pkg/columnindex"
	"github.com/greenmaskio/schemalink/pkg/ddl"
)

var testTables = []ddl.Table{
	ddl.NewTable("products", `CREATE TABLE products (
    product_id SERIAL PRIMARY KEY,
    product_name VARCHAR(100),
    category VARCHAR(50)
);`),
	ddl.NewTable("customers", `CREATE TABLE customers (
    customer_id SERIAL PRIMARY KEY,
    name VARCHAR(100),
    email VARCHAR(200)
);`),
	ddl.NewTable("orders", `CREATE TABLE orders (
    order_id SERIAL PRIMARY KEY,
    customer_id INTEGER,
    order_date DATE
);`),
	ddl.NewTable("order_items", `CREATE TABLE order_items (
    item_id SERIAL PRIMARY KEY,
    order_id INTEGER,
    quantity INTEGER
);`),
	ddl.NewTable("profitability_analysis", `CREATE TABLE profitability_analysis (
    analysis_id SERIAL PRIMARY KEY,
    revenue NUMERIC(12,2),
    margin_pct NUMERIC(5,2)
);`),
	ddl.NewTable("suppliers", `CREATE TABLE suppliers (
    supplier_id SERIAL PRIMARY KEY,
    unit_cost NUMERIC(10,2)
);`),
}

func newTestResolver(t *testing.T, entityMap EntityMap) *Resolver {
	t.Helper()
	names := make([]string, 0, len(testTables))
	for _, tbl := range testTables {
		names = append(names, tbl.Name)
	}
	r, err := New(Config{
		Tables:         names,
		EntityMap:      entityMap,
		Columns:        columnindex.New(testTables, columnindex.DefaultStopList),
		FallbackTables: DefaultFallbackTables,
	})
	require.NoError(t, err)
	return r
}

func TestResolver_Resolve(t *testing.T) {
	r := newTestResolver(t, DefaultEntityMap())

	tests := []struct {
		name       string
		query      string
		contains   []string
		notContain []string
	}{
		{
			name:     "direct table name",
			query:    "Show all orders",
			contains: []string{"orders"},
		},
		{
			name:     "singular form",
			query:    "Show details for each product",
			contains: []string{"products"},
		},
		{
			name:     "case insensitive",
			query:    "LIST CUSTOMERS",
			contains: []string{"customers"},
		},
		{
			name:       "business entity",
			query:      "total revenue",
			contains:   []string{"orders", "order_items"},
			notContain: []string{"profitability_analysis"},
		},
		{
			name:     "column name",
			query:    "average unit_cost",
			contains: []string{"suppliers"},
		},
		{
			name:     "column owned by a single table",
			query:    "what was the quantity",
			contains: []string{"order_items"},
		},
		{
			// known false positive of the substring match
			name:     "substring inside another word",
			query:    "border crossings",
			contains: []string{"orders"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seeds := r.Resolve(tt.query)
			for _, c := range tt.contains {
				assert.True(t, seeds.Has(c), "expected %s in %v", c, seeds.Sorted())
			}
			for _, c := range tt.notContain {
				assert.False(t, seeds.Has(c), "unexpected %s in %v", c, seeds.Sorted())
			}
		})
	}
}

func TestResolver_ColumnLayerSkipsResolvedWords(t *testing.T) {
	withEntities := newTestResolver(t, DefaultEntityMap())
	seeds := withEntities.Resolve("Show total revenue by product category")
	require.False(t, seeds.Has("profitability_analysis"))
	require.True(t, seeds.Has("orders"))
	require.True(t, seeds.Has("order_items"))
	require.True(t, seeds.Has("products"))

	withoutEntities := newTestResolver(t, nil)
	seeds = withoutEntities.Resolve("Show total revenue by product category")
	require.True(t, seeds.Has("profitability_analysis"))
}

func TestResolver_ShortColumnsAreIgnored(t *testing.T) {
	r, err := New(Config{
		Tables:          []string{"ledger"},
		Columns:         columnindex.New([]ddl.Table{ddl.NewTable("ledger", "CREATE TABLE ledger (\n    amount NUMERIC,\n    tax NUMERIC\n);")}, nil),
		MinColumnLength: 6,
		FallbackTables:  []string{"fallback"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ledger"}, r.Resolve("sum of amount").Sorted())
	require.Equal(t, []string{"fallback"}, r.Resolve("sum of tax").Sorted())
}

func TestResolver_Fallback(t *testing.T) {
	r := newTestResolver(t, DefaultEntityMap())
	for _, q := range []string{"What is the meaning of life?", "", "   ", "¿Qué?"} {
		seeds := r.Resolve(q)
		require.Equal(t, []string{"customers", "orders", "products"}, seeds.Sorted(), "query %q", q)
	}
}

func TestResolver_ResolveLayers(t *testing.T) {
	r := newTestResolver(t, DefaultEntityMap())
	query := "total revenue by unit_cost"

	l1 := r.ResolveLayers(query, LayerTableNames)
	require.Equal(t, DefaultFallbackTables, r.FallbackTables())
	require.ElementsMatch(t, []string{"orders", "products", "customers"}, l1.Sorted())

	l2 := r.ResolveLayers(query, LayerEntities)
	require.Equal(t, []string{"order_items", "orders"}, l2.Sorted())

	l3 := r.ResolveLayers(query, LayerColumns)
	require.Equal(t, []string{"order_items", "orders", "suppliers"}, l3.Sorted())
	require.Equal(t, l3, r.Resolve(query))
}

func TestNew_EmptyFallback(t *testing.T) {
	_, err := New(Config{Tables: []string{"a"}})
	require.ErrorIs(t, err, ErrEmptyFallback)
}

func TestEntityMap_Normalize(t *testing.T) {
	em := EntityMap{
		"Revenue":  {"Orders", "order_items", "orders"},
		" revenue": {"invoices"},
		"":         {"x"},
		"empty":    {" "},
	}
	n := em.Normalize()
	require.ElementsMatch(t, []string{"orders", "order_items", "invoices"}, n["revenue"])
	require.Equal(t, []string{"revenue"}, n.Terms())
}
