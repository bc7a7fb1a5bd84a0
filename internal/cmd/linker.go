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

package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/schemasource"
	"github.com/greenmaskio/schemalink/pkg/ddl"
	"github.com/greenmaskio/schemalink/pkg/linker"
	"github.com/greenmaskio/schemalink/pkg/tokenizer"
)

// NewLinker - loads the DDL from the configured source (or ddlPath when set) and builds the Linker from
// the linker and tokenizer sections of the config. The DDL text is returned as well.
func NewLinker(ctx context.Context, cfg *domains.Config, ddlPath string) (*linker.Linker, string, error) {
	text, err := schemasource.Load(ctx, cfg, ddlPath)
	if err != nil {
		return nil, "", fmt.Errorf("cannot load schema: %w", err)
	}

	tok, err := tokenizer.New(cfg.Tokenizer.Type, cfg.Tokenizer.Encoding)
	if err != nil {
		return nil, "", fmt.Errorf("cannot create tokenizer: %w", err)
	}

	l, err := linker.New(text, linkerOptions(cfg, tok)...)
	if err != nil {
		return nil, "", err
	}
	log.Debug().
		Int("Tables", len(l.Tables())).
		Int("ForeignKeys", len(l.ForeignKeys())).
		Str("Tokenizer", tok.Name()).
		Msg("linker initialized")
	return l, text, nil
}

func linkerOptions(cfg *domains.Config, tok tokenizer.Tokenizer) []linker.Option {
	opts := []linker.Option{
		linker.WithTokenizer(tok),
		linker.WithLogger(log.Logger),
		linker.WithParseOptions(ddl.ParseOptions{ColumnReferences: cfg.Linker.ColumnReferences}),
		linker.WithFallbackTables(cfg.Linker.FallbackTables),
		linker.WithColumnStopList(cfg.Linker.ColumnStopList),
	}
	if cfg.Linker.EntityMap != nil {
		opts = append(opts, linker.WithEntityMap(cfg.Linker.EntityMap))
	}
	if cfg.Linker.MinColumnLength > 0 {
		opts = append(opts, linker.WithMinColumnLength(cfg.Linker.MinColumnLength))
	}
	if len(cfg.Linker.VirtualReferences) > 0 {
		opts = append(opts, linker.WithVirtualForeignKeys(domains.ForeignKeys(cfg.Linker.VirtualReferences)))
	}
	return opts
}
