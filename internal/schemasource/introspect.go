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
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/greenmaskio/schemalink/pkg/ddl"
)

// Querier - the part of pgx.Tx and *pgx.Conn used by the introspection.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Column struct {
	Name    string
	Type    string
	NotNull bool
}

type TableDefinition struct {
	Name       string
	Columns    []*Column
	PrimaryKey []string
}

// Introspect - reads tables, primary keys and foreign keys of the schemas from the catalog. Tables are
// identified by the bare name: equally named tables of different schemas are merged.
func Introspect(ctx context.Context, q Querier, schemas []string) ([]*TableDefinition, []ddl.ForeignKey, error) {
	tables, err := getTables(ctx, q, schemas)
	if err != nil {
		return nil, nil, err
	}
	if err := setPrimaryKeys(ctx, q, schemas, tables); err != nil {
		return nil, nil, err
	}
	fks, err := getForeignKeys(ctx, q, schemas)
	if err != nil {
		return nil, nil, err
	}
	return tables, fks, nil
}

func getTables(ctx context.Context, q Querier, schemas []string) ([]*TableDefinition, error) {
	rows, err := q.Query(ctx, tableColumnsQuery, schemas)
	if err != nil {
		return nil, fmt.Errorf("unable execute tableColumnsQuery: %w", err)
	}
	defer rows.Close()

	var res []*TableDefinition
	idx := make(map[string]*TableDefinition)
	for rows.Next() {
		var tableName, columnName, dataType string
		var notNull, isSerial bool
		var charLength, precision, scale *int32
		err = rows.Scan(&tableName, &columnName, &dataType, &notNull, &isSerial, &charLength, &precision, &scale)
		if err != nil {
			return nil, fmt.Errorf("cannot scan tableColumnsQuery: %w", err)
		}
		t, ok := idx[tableName]
		if !ok {
			t = &TableDefinition{Name: tableName}
			idx[tableName] = t
			res = append(res, t)
		}
		t.Columns = append(t.Columns, &Column{
			Name:    columnName,
			Type:    columnType(dataType, isSerial, charLength, precision, scale),
			NotNull: notNull,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading tableColumnsQuery: %w", err)
	}
	return res, nil
}

func setPrimaryKeys(ctx context.Context, q Querier, schemas []string, tables []*TableDefinition) error {
	idx := make(map[string]*TableDefinition, len(tables))
	for _, t := range tables {
		idx[t.Name] = t
	}

	rows, err := q.Query(ctx, primaryKeysQuery, schemas)
	if err != nil {
		return fmt.Errorf("unable execute primaryKeysQuery: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tableName, columnName string
		if err = rows.Scan(&tableName, &columnName); err != nil {
			return fmt.Errorf("cannot scan primaryKeysQuery: %w", err)
		}
		if t, ok := idx[tableName]; ok {
			t.PrimaryKey = append(t.PrimaryKey, columnName)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading primaryKeysQuery: %w", err)
	}
	return nil
}

func getForeignKeys(ctx context.Context, q Querier, schemas []string) ([]ddl.ForeignKey, error) {
	rows, err := q.Query(ctx, foreignKeysQuery, schemas)
	if err != nil {
		return nil, fmt.Errorf("unable execute foreignKeysQuery: %w", err)
	}
	defer rows.Close()

	var res []ddl.ForeignKey
	for rows.Next() {
		var fk ddl.ForeignKey
		if err = rows.Scan(&fk.FromTable, &fk.FromColumn, &fk.ToTable, &fk.ToColumn); err != nil {
			return nil, fmt.Errorf("cannot scan foreignKeysQuery: %w", err)
		}
		res = append(res, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading foreignKeysQuery: %w", err)
	}
	return res, nil
}

// columnType - renders the information_schema type in the short form used by hand written DDL, so the
// column index recognises the column.
func columnType(dataType string, isSerial bool, charLength, precision, scale *int32) string {
	switch dataType {
	case "integer":
		if isSerial {
			return "SERIAL"
		}
		return "INTEGER"
	case "bigint":
		if isSerial {
			return "BIGSERIAL"
		}
		return "BIGINT"
	case "smallint":
		return "SMALLINT"
	case "numeric":
		if precision != nil && scale != nil {
			return fmt.Sprintf("NUMERIC(%d,%d)", *precision, *scale)
		}
		return "NUMERIC"
	case "character varying":
		if charLength != nil {
			return fmt.Sprintf("VARCHAR(%d)", *charLength)
		}
		return "VARCHAR"
	case "character":
		if charLength != nil {
			return fmt.Sprintf("CHAR(%d)", *charLength)
		}
		return "CHAR"
	case "timestamp without time zone", "timestamp with time zone":
		return "TIMESTAMP"
	}
	return strings.ToUpper(dataType)
}

// RenderDDL - renders the introspected schema as CREATE TABLE statements followed by one ALTER TABLE per
// foreign key column pair, the layout pg_dump produces.
func RenderDDL(tables []*TableDefinition, fks []ddl.ForeignKey) string {
	sb := strings.Builder{}
	for i, t := range tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("CREATE TABLE ")
		sb.WriteString(t.Name)
		sb.WriteString(" (\n")
		lines := make([]string, 0, len(t.Columns)+1)
		for _, c := range t.Columns {
			line := fmt.Sprintf("    %s %s", c.Name, c.Type)
			if len(t.PrimaryKey) == 1 && t.PrimaryKey[0] == c.Name {
				line += " PRIMARY KEY"
			} else if c.NotNull {
				line += " NOT NULL"
			}
			lines = append(lines, line)
		}
		if len(t.PrimaryKey) > 1 {
			lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", strings.Join(t.PrimaryKey, ", ")))
		}
		sb.WriteString(strings.Join(lines, ",\n"))
		sb.WriteString("\n);\n")
	}

	if len(fks) > 0 {
		sb.WriteString("\n")
	}
	for _, fk := range fks {
		fmt.Fprintf(&sb,
			"ALTER TABLE ONLY %s ADD FOREIGN KEY (%s) REFERENCES %s(%s);\n",
			fk.FromTable, fk.FromColumn, fk.ToTable, fk.ToColumn,
		)
	}
	return sb.String()
}
