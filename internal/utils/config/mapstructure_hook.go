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

package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/greenmaskio/schemalink/pkg/resolver"
)

// EntityMapHookFunc - decodes resolver.EntityMap. The whole map may be a JSON string (environment
// variables) and every term may map to a list of tables or to a comma separated string.
func EntityMapHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != reflect.TypeOf(resolver.EntityMap{}) {
			return data, nil
		}

		if raw, ok := data.(string); ok && strings.TrimSpace(raw) == "" {
			return resolver.EntityMap{}, nil
		}
		src, err := cast.ToStringMapE(data)
		if err != nil {
			return nil, fmt.Errorf("cannot decode entity map: %w", err)
		}

		res := make(resolver.EntityMap, len(src))
		for term, v := range src {
			tables, err := toTableList(v)
			if err != nil {
				return nil, fmt.Errorf("cannot decode tables of term \"%s\": %w", term, err)
			}
			res[term] = tables
		}
		return res, nil
	}
}

func toTableList(v interface{}) ([]string, error) {
	if s, ok := v.(string); ok {
		return splitList(s), nil
	}
	return cast.ToStringSliceE(v)
}

// StringToSliceWithBracketHookFunc - decodes a JSON array string like ["orders", "products"] into a
// string slice. Other strings are left to the next hook.
func StringToSliceWithBracketHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Kind,
		t reflect.Kind,
		data interface{}) (interface{}, error) {
		if f != reflect.String || t != reflect.Slice {
			return data, nil
		}

		raw := strings.TrimSpace(data.(string))
		if !strings.HasPrefix(raw, "[") {
			return data, nil
		}
		var res []string
		if err := json.Unmarshal([]byte(raw), &res); err != nil {
			return data, nil
		}
		return res, nil
	}
}

func splitList(s string) []string {
	res := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}
