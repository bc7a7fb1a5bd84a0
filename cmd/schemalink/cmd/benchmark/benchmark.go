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

package benchmark

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdInternals "github.com/greenmaskio/schemalink/internal/cmd"
	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/utils/logger"
)

var (
	Cmd = &cobra.Command{
		Use:   "benchmark",
		Args:  cobra.NoArgs,
		Short: "measures table selection precision and recall against the golden queries",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.Level, Config.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("error setting up logger")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			l, text, err := cmdInternals.NewLinker(ctx, Config, ddlPath)
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}
			queries, err := cmdInternals.LoadGoldenQueries(ctx, Config)
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}

			report, err := cmdInternals.Benchmark(ctx, os.Stdout, l, text, queries, &Config.Benchmark, params)
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}
			if len(report.Failures) > 0 {
				log.Fatal().
					Strs("Failures", report.Failures).
					Str("PassCondition", report.PassCondition).
					Msg("benchmark failed")
			}
		},
	}
	Config  = domains.NewConfig()
	ddlPath string
	params  = &cmdInternals.BenchmarkParams{}
)

func init() {
	goldenFlagName := "golden"
	Cmd.Flags().String(
		goldenFlagName, "golden_queries.json", "golden queries file (json, optionally gzipped)",
	)
	flag := Cmd.Flags().Lookup(goldenFlagName)
	if err := viper.BindPFlag("benchmark.golden_queries", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}

	depthFlagName := "depth"
	Cmd.Flags().Int(
		depthFlagName, 0, "number of foreign key hops added around the resolved tables",
	)
	flag = Cmd.Flags().Lookup(depthFlagName)
	if err := viper.BindPFlag("benchmark.max_depth", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}

	passCondFlagName := "pass-condition"
	Cmd.Flags().String(
		passCondFlagName, "recall >= 0.8",
		"expression over precision, recall, reduction_pct, selected, expected and seeds",
	)
	flag = Cmd.Flags().Lookup(passCondFlagName)
	if err := viper.BindPFlag("benchmark.pass_condition", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}

	Cmd.Flags().StringVar(&ddlPath, "ddl", "", "DDL file to read instead of the configured schema source")
	Cmd.Flags().StringVar(&params.QueryID, "query", "", "run a single golden query by id")
	Cmd.Flags().BoolVarP(&params.Verbose, "verbose", "v", false, "print selected, missing and extra tables")
	Cmd.Flags().StringVarP(
		&params.Format, "format", "f", cmdInternals.FormatText, "output format [text|json|yaml]",
	)
}
