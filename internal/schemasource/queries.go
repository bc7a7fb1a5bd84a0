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

const (
	// tableColumnsQuery - columns of the ordinary tables of the provided schemas in the declaration order
	tableColumnsQuery = `
		SELECT c.table_name::TEXT,
		       c.column_name::TEXT,
		       c.data_type::TEXT,
		       c.is_nullable::TEXT = 'NO'                         AS "NotNull",
		       coalesce(c.column_default::TEXT, '') LIKE 'nextval(%' AS "IsSerial",
		       c.character_maximum_length::INT,
		       c.numeric_precision::INT,
		       c.numeric_scale::INT
		FROM information_schema.columns c
		         JOIN information_schema.tables t
		              ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE t.table_type = 'BASE TABLE'
		  AND c.table_schema = ANY ($1)
		ORDER BY c.table_schema, c.table_name, c.ordinal_position
	`

	// primaryKeysQuery - primary key columns in the key order
	primaryKeysQuery = `
		SELECT cl.relname::TEXT,
		       a.attname::TEXT
		FROM pg_catalog.pg_constraint con
		         JOIN pg_catalog.pg_class cl ON cl.oid = con.conrelid
		         JOIN pg_catalog.pg_namespace n ON n.oid = cl.relnamespace
		         CROSS JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
		         JOIN pg_catalog.pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
		WHERE con.contype = 'p'
		  AND n.nspname = ANY ($1)
		ORDER BY n.nspname, cl.relname, k.ord
	`

	// foreignKeysQuery - one row per column pair of every foreign key
	foreignKeysQuery = `
		SELECT cl.relname::TEXT  AS "FromTable",
		       a.attname::TEXT   AS "FromColumn",
		       rcl.relname::TEXT AS "ToTable",
		       ra.attname::TEXT  AS "ToColumn"
		FROM pg_catalog.pg_constraint con
		         JOIN pg_catalog.pg_class cl ON cl.oid = con.conrelid
		         JOIN pg_catalog.pg_namespace n ON n.oid = cl.relnamespace
		         JOIN pg_catalog.pg_class rcl ON rcl.oid = con.confrelid
		         CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS k(attnum, rattnum, ord)
		         JOIN pg_catalog.pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
		         JOIN pg_catalog.pg_attribute ra ON ra.attrelid = con.confrelid AND ra.attnum = k.rattnum
		WHERE con.contype = 'f'
		  AND n.nspname = ANY ($1)
		ORDER BY n.nspname, cl.relname, con.conname, k.ord
	`
)
