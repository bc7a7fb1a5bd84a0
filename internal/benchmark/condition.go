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
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

const (
	envPrecision    = "precision"
	envRecall       = "recall"
	envReductionPct = "reduction_pct"
	envSelected     = "selected"
	envExpected     = "expected"
	envSeeds        = "seeds"
)

// PassCond - decides whether a scored query passes. If the condition is empty every query passes.
type PassCond struct {
	cond *vm.Program
	src  string
}

func NewPassCond(src string) (*PassCond, error) {
	if src == "" {
		return &PassCond{}, nil
	}
	cond, err := expr.Compile(src, expr.Env(newEnv(0, 0, 0, nil, nil, nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile pass condition: %w", err)
	}
	return &PassCond{
		cond: cond,
		src:  src,
	}, nil
}

// Evaluate - runs the compiled condition against the query metrics.
func (pc *PassCond) Evaluate(res *QueryResult) (bool, error) {
	if pc.cond == nil {
		return true, nil
	}
	env := newEnv(res.Precision, res.Recall, res.ReductionPct, res.SelectedTables, res.ExpectedTables, res.SeedTables)
	output, err := expr.Run(pc.cond, env)
	if err != nil {
		return false, fmt.Errorf("unable to evaluate pass condition: %w", err)
	}
	passed, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("pass condition should return boolean, got (%T) and value %+v", output, output)
	}
	return passed, nil
}

func (pc *PassCond) String() string {
	return pc.src
}

func newEnv(precision, recall, reductionPct float64, selected, expected, seeds []string) map[string]any {
	return map[string]any{
		envPrecision:    precision,
		envRecall:       recall,
		envReductionPct: reductionPct,
		envSelected:     selected,
		envExpected:     expected,
		envSeeds:        seeds,
	}
}
