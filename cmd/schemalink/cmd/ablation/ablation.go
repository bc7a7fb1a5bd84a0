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

package ablation

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cmdInternals "github.com/greenmaskio/schemalink/internal/cmd"
	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/utils/logger"
)

var (
	Cmd = &cobra.Command{
		Use:   "ablation",
		Args:  cobra.NoArgs,
		Short: "compares the resolver layer configurations L1, L1+L2 and L1+L2+L3 on the golden queries",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.Level, Config.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("error setting up logger")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if goldenPath != "" {
				Config.Benchmark.GoldenQueries = goldenPath
			}

			l, _, err := cmdInternals.NewLinker(ctx, Config, ddlPath)
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}
			queries, err := cmdInternals.LoadGoldenQueries(ctx, Config)
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}
			_, err = cmdInternals.Ablation(ctx, os.Stdout, l, queries, Config.Benchmark.Concurrency, format)
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config     = domains.NewConfig()
	ddlPath    string
	goldenPath string
	format     string
)

func init() {
	// benchmark.golden_queries is bound to the benchmark command flag
	Cmd.Flags().StringVar(&goldenPath, "golden", "", "golden queries file, overrides benchmark.golden_queries")
	Cmd.Flags().StringVar(&ddlPath, "ddl", "", "DDL file to read instead of the configured schema source")
	Cmd.Flags().StringVarP(&format, "format", "f", cmdInternals.FormatText, "output format [text|json|yaml]")
}
