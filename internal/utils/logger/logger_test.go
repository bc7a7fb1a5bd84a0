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

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() {
		log.Logger = saved
	})

	buf := bytes.NewBuffer(nil)
	require.NoError(t, setLogLevel(buf, zerolog.LevelInfoValue, LogFormatJsonValue))
	assert.Equal(t, zerolog.InfoLevel, log.Logger.GetLevel())

	log.Debug().Msg("hidden")
	log.Info().Str("Table", "orders").Msg("visible")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "visible", record["message"])
	assert.Equal(t, "orders", record["Table"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetLogLevel_Debug(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() {
		log.Logger = saved
	})

	buf := bytes.NewBuffer(nil)
	require.NoError(t, setLogLevel(buf, zerolog.LevelDebugValue, LogFormatJsonValue))
	log.Debug().Msg("debug")
	assert.Contains(t, buf.String(), `"pid"`)
	assert.Contains(t, buf.String(), `"caller"`)
}

func TestSetLogLevel_Errors(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() {
		log.Logger = saved
	})

	require.ErrorContains(t, SetLogLevel("trace", LogFormatTextValue), "unknown log level")
	require.ErrorContains(t, SetLogLevel(zerolog.LevelInfoValue, "xml"), "unknown log format")
	require.NoError(t, SetLogLevel(zerolog.LevelWarnValue, LogFormatTextValue))
}
