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

package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDDL = `
CREATE TABLE products (
    product_id SERIAL PRIMARY KEY,
    product_name VARCHAR(100),
    category VARCHAR(50)
);

CREATE TABLE customers (
    customer_id SERIAL PRIMARY KEY,
    name VARCHAR(100),
    email VARCHAR(200)
);

CREATE TABLE orders (
    order_id SERIAL PRIMARY KEY,
    customer_id INTEGER,
    order_date DATE,
    FOREIGN KEY (customer_id)
        REFERENCES customers(customer_id)
);

CREATE TABLE order_items (
    item_id SERIAL PRIMARY KEY,
    order_id INTEGER,
    product_id INTEGER,
    quantity INTEGER,
    total_price NUMERIC(12,2),
    FOREIGN KEY (order_id)
        REFERENCES orders(order_id),
    FOREIGN KEY (product_id)
        REFERENCES products(product_id)
);
`

func TestParse_Tables(t *testing.T) {
	s := Parse(sampleDDL)
	require.Equal(t, []string{"customers", "order_items", "orders", "products"}, s.TableNames())

	orders, ok := s.Table("orders")
	require.True(t, ok)
	assert.Contains(t, orders.Definition, "CREATE TABLE orders")
	assert.Contains(t, orders.Definition, "REFERENCES customers(customer_id)\n);")
	assert.NotContains(t, orders.Definition, "order_items")

	_, ok = s.Table("unknown")
	assert.False(t, ok)
}

func TestParse_ForeignKeys(t *testing.T) {
	s := Parse(sampleDDL)
	expected := []ForeignKey{
		{FromTable: "orders", FromColumn: "customer_id", ToTable: "customers", ToColumn: "customer_id"},
		{FromTable: "order_items", FromColumn: "order_id", ToTable: "orders", ToColumn: "order_id"},
		{FromTable: "order_items", FromColumn: "product_id", ToTable: "products", ToColumn: "product_id"},
	}
	require.Equal(t, expected, s.ForeignKeys)
}

func TestParse_AlterTableForeignKeys(t *testing.T) {
	text := `
-- operational noise
DROP TABLE IF EXISTS shipments;
CREATE TABLE IF NOT EXISTS Warehouses (
    warehouse_id SERIAL PRIMARY KEY
);
create table shipments (
    shipment_id serial primary key,
    warehouse_id integer,
    carrier_id integer
);
CREATE TABLE carriers (
    carrier_id SERIAL PRIMARY KEY
);
ALTER TABLE shipments ADD FOREIGN KEY (warehouse_id) REFERENCES warehouses(warehouse_id);
ALTER TABLE ONLY Shipments ADD CONSTRAINT fk_carrier FOREIGN KEY (Carrier_ID) REFERENCES carriers (carrier_id);
`
	s := Parse(text)
	require.Equal(t, []string{"carriers", "shipments", "warehouses"}, s.TableNames())
	require.Equal(t, []ForeignKey{
		{FromTable: "shipments", FromColumn: "warehouse_id", ToTable: "warehouses", ToColumn: "warehouse_id"},
		{FromTable: "shipments", FromColumn: "carrier_id", ToTable: "carriers", ToColumn: "carrier_id"},
	}, s.ForeignKeys)
}

func TestParse_ColumnReferences(t *testing.T) {
	text := `
CREATE TABLE departments (
    department_id SERIAL PRIMARY KEY
);
CREATE TABLE employees (
    employee_id SERIAL PRIMARY KEY,
    department_id INTEGER NOT NULL REFERENCES departments(department_id),
    manager_id INTEGER REFERENCES employees (employee_id),
    CONSTRAINT fk_dep FOREIGN KEY (department_id) REFERENCES departments(department_id)
);
`
	t.Run("enabled", func(t *testing.T) {
		s := Parse(text)
		require.ElementsMatch(t, []ForeignKey{
			{FromTable: "employees", FromColumn: "department_id", ToTable: "departments", ToColumn: "department_id"},
			{FromTable: "employees", FromColumn: "department_id", ToTable: "departments", ToColumn: "department_id"},
			{FromTable: "employees", FromColumn: "manager_id", ToTable: "employees", ToColumn: "employee_id"},
		}, s.ForeignKeys)
	})

	t.Run("disabled", func(t *testing.T) {
		s := ParseWithOptions(text, ParseOptions{ColumnReferences: false})
		require.Equal(t, []ForeignKey{
			{FromTable: "employees", FromColumn: "department_id", ToTable: "departments", ToColumn: "department_id"},
		}, s.ForeignKeys)
	})
}

func TestParse_MalformedIsSkipped(t *testing.T) {
	text := `
CREATE TABLE a (
    a_id SERIAL PRIMARY KEY,
    FOREIGN KEY b_id REFERENCES b
);
ALTER TABLE a ADD FOREIGN KEY (b_id) REFERENCES;
`
	s := Parse(text)
	require.Equal(t, []string{"a"}, s.TableNames())
	require.Empty(t, s.ForeignKeys)
}

func TestParse_Empty(t *testing.T) {
	s := Parse("SELECT 1;")
	require.Empty(t, s.Tables)
	require.Empty(t, s.ForeignKeys)
	require.Equal(t, "", s.CreateBlocks())
}

func TestSchema_CreateBlocks(t *testing.T) {
	text := `
-- comment
DROP TABLE IF EXISTS a;
CREATE TABLE a (
    a_id SERIAL
);
GRANT SELECT ON a TO reader;
CREATE TABLE b (
    b_id SERIAL
);
`
	s := Parse(text)
	require.Equal(t,
		"CREATE TABLE a (\n    a_id SERIAL\n);\n\nCREATE TABLE b (\n    b_id SERIAL\n);",
		s.CreateBlocks(),
	)
}
