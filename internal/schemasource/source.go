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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/storages"
	"github.com/greenmaskio/schemalink/internal/storages/builder"
	"github.com/greenmaskio/schemalink/internal/utils/ioutils"
	"github.com/greenmaskio/schemalink/internal/utils/pgerrors"
)

var (
	ErrEmptyPath         = errors.New("schema path is empty")
	ErrEmptyDsn          = errors.New("postgres dsn is empty")
	ErrUnknownSource     = errors.New("unknown schema source")
	ErrEmptyIntrospected = errors.New("no tables found in the introspected schemas")
)

// Load - returns the DDL text from the source configured in cfg.Schema. The override path, when not empty,
// replaces cfg.Schema.Path and forces the file source.
func Load(ctx context.Context, cfg *domains.Config, overridePath string) (string, error) {
	if overridePath != "" {
		return LoadFile(overridePath)
	}
	switch cfg.Schema.Source {
	case domains.SchemaSourceFile, "":
		return LoadFile(cfg.Schema.Path)
	case domains.SchemaSourceStorage:
		st, err := builder.GetStorage(ctx, &cfg.Storage, &cfg.Log)
		if err != nil {
			return "", fmt.Errorf("error building storage: %w", err)
		}
		return LoadFromStorage(ctx, st, cfg.Schema.Path)
	case domains.SchemaSourcePostgres:
		return LoadFromPostgres(ctx, &cfg.Schema.Postgres)
	}
	return "", fmt.Errorf("source \"%s\": %w", cfg.Schema.Source, ErrUnknownSource)
}

// LoadFile - reads the DDL file. Files with the .gz extension are decompressed.
func LoadFile(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open schema file: %w", err)
	}
	data, n, err := ioutils.ReadAll(path, f)
	if err != nil {
		return "", err
	}
	log.Debug().
		Str("Path", path).
		Int64("StoredBytes", n).
		Int("Bytes", len(data)).
		Msg("schema loaded from file")
	return string(data), nil
}

func LoadFromStorage(ctx context.Context, st storages.Storager, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyPath
	}
	data, err := storages.ReadObject(ctx, st, key)
	if err != nil {
		return "", fmt.Errorf("cannot read schema from storage: %w", err)
	}
	return string(data), nil
}

// LoadFromPostgres - introspects a live database in a read only transaction and renders its tables and
// foreign keys as DDL.
func LoadFromPostgres(ctx context.Context, cfg *domains.PostgresConfig) (string, error) {
	if cfg.Dsn == "" {
		return "", ErrEmptyDsn
	}
	schemas := cfg.Schemas
	if len(schemas) == 0 {
		schemas = []string{"public"}
	}

	conn, err := connect(ctx, cfg.Dsn)
	if err != nil {
		return "", fmt.Errorf("cannot connect to postgres: %w", pgerrors.Wrap(err))
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("error closing postgres connection")
		}
	}()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return "", fmt.Errorf("unable to start transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Debug().Err(err).Msg("unable to rollback transaction")
		}
	}()

	startedAt := time.Now()
	tables, fks, err := Introspect(ctx, tx, schemas)
	if err != nil {
		return "", fmt.Errorf("cannot introspect schema: %w", pgerrors.Wrap(err))
	}
	if len(tables) == 0 {
		return "", fmt.Errorf("schemas %v: %w", schemas, ErrEmptyIntrospected)
	}
	log.Debug().
		Strs("Schemas", schemas).
		Int("Tables", len(tables)).
		Int("ForeignKeys", len(fks)).
		Dur("Elapsed", time.Since(startedAt)).
		Msg("schema introspected")

	return RenderDDL(tables, fks), nil
}

func connect(ctx context.Context, dsn string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, err
	}
	return conn, nil
}
