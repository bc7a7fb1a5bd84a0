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

package linker

import (
	"github.com/rs/zerolog"

	"github.com/greenmaskio/schemalink/pkg/columnindex"
	"github.com/greenmaskio/schemalink/pkg/ddl"
	"github.com/greenmaskio/schemalink/pkg/resolver"
	"github.com/greenmaskio/schemalink/pkg/tokenizer"
)

type options struct {
	entityMap       resolver.EntityMap
	stopList        []string
	fallbackTables  []string
	minColumnLength int
	parseOptions    ddl.ParseOptions
	extraKeys       []ddl.ForeignKey
	tokenizer       tokenizer.Tokenizer
	logger          *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		entityMap:       resolver.DefaultEntityMap(),
		stopList:        columnindex.DefaultStopList,
		fallbackTables:  resolver.DefaultFallbackTables,
		minColumnLength: resolver.DefaultMinColumnLength,
		parseOptions:    ddl.DefaultParseOptions(),
	}
}

type Option func(o *options)

// WithEntityMap - replaces the built-in business vocabulary.
func WithEntityMap(em resolver.EntityMap) Option {
	return func(o *options) {
		o.entityMap = em
	}
}

// WithColumnStopList - replaces the list of column names excluded from the column index.
func WithColumnStopList(stopList []string) Option {
	return func(o *options) {
		o.stopList = stopList
	}
}

func WithFallbackTables(tables []string) Option {
	return func(o *options) {
		o.fallbackTables = tables
	}
}

func WithMinColumnLength(n int) Option {
	return func(o *options) {
		o.minColumnLength = n
	}
}

func WithParseOptions(po ddl.ParseOptions) Option {
	return func(o *options) {
		o.parseOptions = po
	}
}

// WithVirtualForeignKeys - adds foreign keys that are not declared in the DDL. Keys referring to tables
// missing from the DDL are ignored like any other dangling key.
func WithVirtualForeignKeys(fks []ddl.ForeignKey) Option {
	return func(o *options) {
		o.extraKeys = append(o.extraKeys, fks...)
	}
}

// WithTokenizer - sets the tokenizer used for the token accounting. By default the tiktoken o200k_base
// encoding is used.
func WithTokenizer(t tokenizer.Tokenizer) Option {
	return func(o *options) {
		o.tokenizer = t
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}
