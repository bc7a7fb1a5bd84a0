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

package resolve

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cmdInternals "github.com/greenmaskio/schemalink/internal/cmd"
	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/utils/logger"
	"github.com/greenmaskio/schemalink/pkg/resolver"
)

var (
	Cmd = &cobra.Command{
		Use:   "resolve [flags] query",
		Args:  cobra.MinimumNArgs(1),
		Short: "prints the seed tables of the question without the graph expansion",
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
			if err := cmdInternals.Resolve(os.Stdout, l, strings.Join(args, " "), layers, format); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config  = domains.NewConfig()
	ddlPath string
	layers  int
	format  string
)

func init() {
	Cmd.Flags().StringVar(&ddlPath, "ddl", "", "DDL file to read instead of the configured schema source")
	Cmd.Flags().IntVar(
		&layers, "layers", resolver.LayerColumns, "resolver layers to apply [1 - table names|2 - entities|3 - columns]",
	)
	Cmd.Flags().StringVarP(&format, "format", "f", cmdInternals.FormatText, "output format [text|json|yaml]")
}
