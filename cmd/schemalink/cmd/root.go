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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/schemalink/cmd/schemalink/cmd/ablation"
	"github.com/greenmaskio/schemalink/cmd/schemalink/cmd/benchmark"
	"github.com/greenmaskio/schemalink/cmd/schemalink/cmd/prune"
	"github.com/greenmaskio/schemalink/cmd/schemalink/cmd/resolve"
	"github.com/greenmaskio/schemalink/cmd/schemalink/cmd/show_graph"
	"github.com/greenmaskio/schemalink/internal/domains"
	configUtils "github.com/greenmaskio/schemalink/internal/utils/config"
)

const (
	appName               = "schemalink"
	defaultConfigFileName = "config.yml"
)

var (
	Version    string
	Commit     string
	CommitDate string

	RootCmd = &cobra.Command{
		Use:   appName,
		Short: "Schemalink selects the tables a natural language question needs",
		Long: "Deterministic schema linker and pruner. It parses CREATE TABLE DDL, builds a foreign key " +
			"graph, resolves the tables mentioned by a question and expands them over the graph, so only " +
			"the relevant part of a large schema is sent to an LLM. DDL can be read from a file, a " +
			"storage (directory and S3) or introspected from PostgreSQL",
	}
	cfgFile string
	Config  = domains.NewConfig()
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				CommitDate = setting.Value
			}
		}
	}
	if Version != "" {
		RootCmd.Version = fmt.Sprintf("%s %s %s", Version, Commit, CommitDate)
	} else {
		RootCmd.Version = fmt.Sprintf("%s %s", Commit, CommitDate)
	}

	cobra.OnInitialize(initConfig)
	// Removing short help flag from default
	RootCmd.PersistentFlags().BoolP("help", "", false, "help for schemalink")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file ")
	RootCmd.PersistentFlags().StringP("log-format", "", "text", "logging format [text|json]")
	RootCmd.PersistentFlags().StringP("log-level", "", zerolog.LevelInfoValue,
		fmt.Sprintf(
			"logging level %s|%s|%s|%s",
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
			zerolog.LevelErrorValue,
		),
	)

	RootCmd.AddCommand(prune.Cmd)
	RootCmd.AddCommand(resolve.Cmd)
	RootCmd.AddCommand(show_graph.Cmd)
	RootCmd.AddCommand(benchmark.Cmd)
	RootCmd.AddCommand(ablation.Cmd)

	if err := viper.BindPFlag("log.format", RootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	if err := viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	RootCmd.InitDefaultCompletionCmd()
	RootCmd.InitDefaultHelpCmd()
	RootCmd.InitDefaultVersionFlag()

	for _, c := range RootCmd.Commands() {
		if c.Name() == "completion" || c.Name() == "help" {
			c.DisableFlagParsing = true
			for _, subc := range c.Commands() {
				subc.DisableFlagParsing = true
			}
		}
	}
}

// defaultConfigFile - returns the config from the user config directory if it exists.
func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, appName, defaultConfigFileName)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("Path", path).Msg("cannot access default config file")
		}
		return ""
	}
	return path
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = defaultConfigFile()
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Msg("error reading from config file")
		}
	}

	viper.SetEnvPrefix(appName)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	decoderCfg := func(cfg *mapstructure.DecoderConfig) {
		cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			configUtils.EntityMapHookFunc(),
			configUtils.StringToSliceWithBracketHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}

	// mapstructure merges into a filled map, a configured entity map replaces the built-in one
	if viper.IsSet("linker.entity_map") {
		Config.Linker.EntityMap = nil
	}

	if err := viper.Unmarshal(Config, decoderCfg); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
