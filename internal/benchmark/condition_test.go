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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassCond(t *testing.T) {
	res := &QueryResult{
		Precision:      0.5,
		Recall:         1,
		ReductionPct:   80.5,
		SelectedTables: []string{"customers", "orders"},
		ExpectedTables: []string{"orders"},
		SeedTables:     []string{"orders"},
	}

	tests := []struct {
		name     string
		cond     string
		expected bool
	}{
		{name: "empty", cond: "", expected: true},
		{name: "recall", cond: "recall == 1.0", expected: true},
		{name: "precision", cond: "precision >= 0.75", expected: false},
		{name: "reduction", cond: "reduction_pct > 80 && recall >= 1", expected: true},
		{name: "membership", cond: `"customers" in selected && len(seeds) == 1`, expected: true},
		{name: "expected subset", cond: `all(expected, {# in selected})`, expected: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := NewPassCond(tt.cond)
			require.NoError(t, err)
			assert.Equal(t, tt.cond, pc.String())
			passed, err := pc.Evaluate(res)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, passed)
		})
	}
}

func TestPassCond_CompileErrors(t *testing.T) {
	tests := []struct {
		name string
		cond string
	}{
		{name: "syntax", cond: "recall >="},
		{name: "unknown variable", cond: "f1 > 0.5"},
		{name: "not boolean", cond: "precision + recall"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPassCond(tt.cond)
			require.Error(t, err)
		})
	}
}
