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
	"sync"

	"github.com/rs/zerolog"

	"github.com/greenmaskio/schemalink/internal/storages/directory"
	"github.com/greenmaskio/schemalink/internal/storages/s3"
	"github.com/greenmaskio/schemalink/pkg/columnindex"
	"github.com/greenmaskio/schemalink/pkg/linker"
	"github.com/greenmaskio/schemalink/pkg/resolver"
	"github.com/greenmaskio/schemalink/pkg/tokenizer"
)

var (
	Cfg  *Config
	once sync.Once
)

const (
	SchemaSourceFile     = "file"
	SchemaSourceStorage  = "storage"
	SchemaSourcePostgres = "postgres"

	StorageTypeDirectory = "directory"
	StorageTypeS3        = "s3"

	defaultStorageType       = StorageTypeDirectory
	defaultPassCondition     = "recall >= 0.8"
	defaultConcurrency       = 4
	defaultGoldenQueriesPath = "golden_queries.json"
)

// NewConfig - returns the process wide config populated with the defaults.
func NewConfig() *Config {
	once.Do(
		func() {
			Cfg = NewDefaultConfig()
		},
	)
	return Cfg
}

// NewDefaultConfig - returns a fresh config populated with the defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: "text",
			Level:  zerolog.LevelInfoValue,
		},
		Schema: SchemaConfig{
			Source: SchemaSourceFile,
			Postgres: PostgresConfig{
				Schemas: []string{"public"},
			},
		},
		Storage: StorageConfig{
			Type:      defaultStorageType,
			S3:        s3.NewConfig(),
			Directory: directory.NewConfig(),
		},
		Linker: LinkerConfig{
			MaxDepth:         linker.DefaultMaxDepth,
			MinColumnLength:  resolver.DefaultMinColumnLength,
			FallbackTables:   append([]string(nil), resolver.DefaultFallbackTables...),
			ColumnStopList:   append([]string(nil), columnindex.DefaultStopList...),
			EntityMap:        resolver.DefaultEntityMap(),
			ColumnReferences: true,
		},
		Tokenizer: TokenizerConfig{
			Type:     tokenizer.TypeTiktoken,
			Encoding: tokenizer.DefaultEncoding,
		},
		Benchmark: BenchmarkConfig{
			GoldenQueries: defaultGoldenQueriesPath,
			PassCondition: defaultPassCondition,
			Concurrency:   defaultConcurrency,
		},
	}
}

type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log" json:"log"`
	Schema    SchemaConfig    `mapstructure:"schema" yaml:"schema" json:"schema"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage" json:"storage"`
	Linker    LinkerConfig    `mapstructure:"linker" yaml:"linker" json:"linker"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer" yaml:"tokenizer" json:"tokenizer"`
	Benchmark BenchmarkConfig `mapstructure:"benchmark" yaml:"benchmark" json:"benchmark"`
}

type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
}

type SchemaConfig struct {
	// Source - where the DDL comes from: file, storage or postgres
	Source string `mapstructure:"source" yaml:"source" json:"source,omitempty"`
	// Path - file path or storage object key. Files with the .gz extension are decompressed
	Path     string         `mapstructure:"path" yaml:"path" json:"path,omitempty"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres" json:"postgres"`
}

type PostgresConfig struct {
	Dsn     string   `mapstructure:"dsn" yaml:"dsn" json:"-"`
	Schemas []string `mapstructure:"schemas" yaml:"schemas" json:"schemas,omitempty"`
}

type StorageConfig struct {
	Type      string            `mapstructure:"type" yaml:"type" json:"type,omitempty"`
	S3        *s3.Config        `mapstructure:"s3" json:"s3,omitempty" yaml:"s3"`
	Directory *directory.Config `mapstructure:"directory" json:"directory,omitempty" yaml:"directory"`
}

type LinkerConfig struct {
	MaxDepth          int                 `mapstructure:"max_depth" yaml:"max_depth" json:"max_depth"`
	MinColumnLength   int                 `mapstructure:"min_column_length" yaml:"min_column_length" json:"min_column_length"`
	FallbackTables    []string            `mapstructure:"fallback_tables" yaml:"fallback_tables" json:"fallback_tables"`
	ColumnStopList    []string            `mapstructure:"column_stop_list" yaml:"column_stop_list" json:"column_stop_list"`
	EntityMap         resolver.EntityMap  `mapstructure:"entity_map" yaml:"entity_map" json:"entity_map"`
	ColumnReferences  bool                `mapstructure:"column_references" yaml:"column_references" json:"column_references"`
	VirtualReferences []*VirtualReference `mapstructure:"virtual_references" yaml:"virtual_references" json:"virtual_references,omitempty"`
}

type TokenizerConfig struct {
	// Type - tiktoken or word
	Type     string `mapstructure:"type" yaml:"type" json:"type"`
	Encoding string `mapstructure:"encoding" yaml:"encoding" json:"encoding,omitempty"`
}

type BenchmarkConfig struct {
	GoldenQueries string `mapstructure:"golden_queries" yaml:"golden_queries" json:"golden_queries"`
	// PassCondition - expression evaluated per query over precision, recall, reduction_pct, selected and
	// expected
	PassCondition string `mapstructure:"pass_condition" yaml:"pass_condition" json:"pass_condition"`
	Concurrency   int    `mapstructure:"concurrency" yaml:"concurrency" json:"concurrency"`
	// MaxDepth - traversal depth used by the benchmark. 0 evaluates the seeds only
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth" json:"max_depth"`
}
