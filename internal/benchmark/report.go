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
	"time"
)

// QueryResult - the outcome of a single golden query.
type QueryResult struct {
	ID             string   `json:"id" yaml:"id"`
	Query          string   `json:"query" yaml:"query"`
	ExpectedTables []string `json:"expected_tables" yaml:"expected_tables"`
	SeedTables     []string `json:"seed_tables" yaml:"seed_tables"`
	SelectedTables []string `json:"selected_tables" yaml:"selected_tables"`
	Missing        []string `json:"missing" yaml:"missing"`
	Extra          []string `json:"extra" yaml:"extra"`
	FullTokens     int      `json:"full_schema_tokens" yaml:"full_schema_tokens"`
	PrunedTokens   int      `json:"pruned_schema_tokens" yaml:"pruned_schema_tokens"`
	ReductionPct   float64  `json:"reduction_pct" yaml:"reduction_pct"`
	Precision      float64  `json:"precision" yaml:"precision"`
	Recall         float64  `json:"recall" yaml:"recall"`
	Passed         bool     `json:"passed" yaml:"passed"`
}

type Summary struct {
	Queries            int     `json:"queries" yaml:"queries"`
	Passed             int     `json:"passed" yaml:"passed"`
	Failed             int     `json:"failed" yaml:"failed"`
	MeanReductionPct   float64 `json:"mean_reduction_pct" yaml:"mean_reduction_pct"`
	MedianReductionPct float64 `json:"median_reduction_pct" yaml:"median_reduction_pct"`
	MeanPrecision      float64 `json:"mean_precision" yaml:"mean_precision"`
	MeanRecall         float64 `json:"mean_recall" yaml:"mean_recall"`
	TotalFullTokens    int     `json:"total_full_tokens" yaml:"total_full_tokens"`
	TotalPrunedTokens  int     `json:"total_pruned_tokens" yaml:"total_pruned_tokens"`
	SavedTokens        int     `json:"saved_tokens" yaml:"saved_tokens"`
}

// Report - the benchmark outcome. Results keep the order of the golden file.
type Report struct {
	RunID             string         `json:"run_id" yaml:"run_id"`
	StartedAt         time.Time      `json:"started_at" yaml:"started_at"`
	Elapsed           time.Duration  `json:"elapsed" yaml:"elapsed"`
	SchemaFingerprint string         `json:"schema_fingerprint" yaml:"schema_fingerprint"`
	SchemaTables      int            `json:"schema_tables" yaml:"schema_tables"`
	Tokenizer         string         `json:"tokenizer" yaml:"tokenizer"`
	MaxDepth          int            `json:"max_depth" yaml:"max_depth"`
	PassCondition     string         `json:"pass_condition" yaml:"pass_condition"`
	Results           []*QueryResult `json:"results" yaml:"results"`
	Summary           Summary        `json:"summary" yaml:"summary"`
	Failures          []string       `json:"failures" yaml:"failures"`
}

func newSummary(results []*QueryResult) Summary {
	s := Summary{Queries: len(results)}
	reductions := make([]float64, 0, len(results))
	precisions := make([]float64, 0, len(results))
	recalls := make([]float64, 0, len(results))
	for _, r := range results {
		reductions = append(reductions, r.ReductionPct)
		precisions = append(precisions, r.Precision)
		recalls = append(recalls, r.Recall)
		s.TotalFullTokens += r.FullTokens
		s.TotalPrunedTokens += r.PrunedTokens
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	s.MeanReductionPct = Mean(reductions)
	s.MedianReductionPct = Median(reductions)
	s.MeanPrecision = Mean(precisions)
	s.MeanRecall = Mean(recalls)
	s.SavedTokens = s.TotalFullTokens - s.TotalPrunedTokens
	return s
}
