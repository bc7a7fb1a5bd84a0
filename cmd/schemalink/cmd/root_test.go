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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetConfig - restores the config file flag and the viper instance after the test
func resetConfig(t *testing.T) {
	t.Helper()
	origCfgFile := cfgFile
	origConfig := *Config
	t.Cleanup(func() {
		cfgFile = origCfgFile
		*Config = origConfig
		viper.Reset()
	})
	cfgFile = ""
	viper.Reset()
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestExplicitConfigFile - an explicitly provided config takes precedence over the default one
func TestExplicitConfigFile(t *testing.T) {
	resetConfig(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	explicitConfigPath := filepath.Join(tempDir, "explicit.yml")
	writeConfig(t, explicitConfigPath, `
log:
  level: info
`)
	writeConfig(t, filepath.Join(tempDir, appName, defaultConfigFileName), `
log:
  level: debug
`)

	cfgFile = explicitConfigPath
	initConfig()

	assert.Equal(t, "info", viper.GetString("log.level"))
	assert.Equal(t, explicitConfigPath, cfgFile)
}

// TestDefaultConfigFile - without --config the file from the user config directory is used
func TestDefaultConfigFile(t *testing.T) {
	resetConfig(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	defaultPath := filepath.Join(tempDir, appName, defaultConfigFileName)
	writeConfig(t, defaultPath, `
log:
  level: debug
`)

	initConfig()

	assert.Equal(t, "debug", viper.GetString("log.level"))
	assert.Equal(t, defaultPath, cfgFile)
}

func TestNoConfigFile(t *testing.T) {
	resetConfig(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	initConfig()

	assert.Equal(t, "", cfgFile)
}

func TestConfigDecoding(t *testing.T) {
	resetConfig(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("SCHEMALINK_LINKER_MAX_DEPTH", "3")

	cfgFile = filepath.Join(tempDir, "config.yml")
	writeConfig(t, cfgFile, `
linker:
  max_depth: 1
  fallback_tables: '["orders", "customers"]'
  column_stop_list: id,name
  entity_map:
    refund: returns, transactions
    payroll: [employees]
tokenizer:
  type: word
`)

	initConfig()

	assert.Equal(t, 3, Config.Linker.MaxDepth)
	assert.Equal(t, []string{"orders", "customers"}, Config.Linker.FallbackTables)
	assert.Equal(t, []string{"id", "name"}, Config.Linker.ColumnStopList)
	assert.Equal(t, []string{"returns", "transactions"}, Config.Linker.EntityMap["refund"])
	assert.Equal(t, []string{"employees"}, Config.Linker.EntityMap["payroll"])
	assert.NotContains(t, Config.Linker.EntityMap, "revenue")
	assert.Len(t, Config.Linker.EntityMap, 2)
	assert.Equal(t, "word", Config.Tokenizer.Type)
}

// TestConfigDecoding_DefaultEntityMap - the built-in entity map survives a config without entity_map
func TestConfigDecoding_DefaultEntityMap(t *testing.T) {
	resetConfig(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfgFile = filepath.Join(tempDir, "config.yml")
	writeConfig(t, cfgFile, `
linker:
  max_depth: 1
`)

	initConfig()

	assert.Equal(t, 1, Config.Linker.MaxDepth)
	assert.Equal(t, []string{"orders", "order_items"}, Config.Linker.EntityMap["revenue"])
}
