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

package prune

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdInternals "github.com/greenmaskio/schemalink/internal/cmd"
	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/utils/logger"
)

var (
	Cmd = &cobra.Command{
		Use:   "prune [flags] query",
		Args:  cobra.MinimumNArgs(1),
		Short: "prints the minimal set of tables and the pruned DDL for the question",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.Level, Config.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("error setting up logger")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			l, _, err := cmdInternals.NewLinker(ctx, Config, ddlPath)
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}

			params.Query = strings.Join(args, " ")
			params.MaxDepth = Config.Linker.MaxDepth
			if err := cmdInternals.Prune(os.Stdout, l, params); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config  = domains.NewConfig()
	ddlPath string
	params  = &cmdInternals.PruneParams{}
)

func init() {
	depthFlagName := "depth"
	Cmd.Flags().Int(
		depthFlagName, 2, "number of foreign key hops added around the resolved tables",
	)
	flag := Cmd.Flags().Lookup(depthFlagName)
	if err := viper.BindPFlag("linker.max_depth", flag); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}

	Cmd.Flags().StringVar(&ddlPath, "ddl", "", "DDL file to read instead of the configured schema source")
	Cmd.Flags().StringVarP(
		&params.Format, "format", "f", cmdInternals.FormatText, "output format [text|json|yaml|template]",
	)
	Cmd.Flags().StringVar(
		&params.Template, "template", "", "go template rendered with the prune result, sprig functions available",
	)
	Cmd.Flags().BoolVar(&params.ShowSchema, "show-schema", false, "print the pruned DDL in text format")
}
