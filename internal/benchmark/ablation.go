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
	"context"
	"fmt"

	"github.com/greenmaskio/schemalink/pkg/linker"
	"github.com/greenmaskio/schemalink/pkg/resolver"
)

// LayerConfig - a resolver configuration of the ablation study: the first Layers layers are enabled.
type LayerConfig struct {
	Name   string `json:"name" yaml:"name"`
	Layers int    `json:"layers" yaml:"layers"`
}

var DefaultLayerConfigs = []LayerConfig{
	{Name: "L1", Layers: resolver.LayerTableNames},
	{Name: "L1+L2", Layers: resolver.LayerEntities},
	{Name: "L1+L2+L3", Layers: resolver.LayerColumns},
}

type LayerResult struct {
	LayerConfig   `yaml:",inline"`
	MeanPrecision float64        `json:"mean_precision" yaml:"mean_precision"`
	MeanRecall    float64        `json:"mean_recall" yaml:"mean_recall"`
	FailCount     int            `json:"fail_count" yaml:"fail_count"`
	Failures      []string       `json:"failures" yaml:"failures"`
	Results       []*QueryResult `json:"results" yaml:"results"`
}

type AblationReport struct {
	Queries int            `json:"queries" yaml:"queries"`
	Layers  []*LayerResult `json:"layers" yaml:"layers"`
}

// RunAblation - measures the contribution of every resolver layer. Each configuration scores the seeds
// only (depth 0); a query fails when some expected table is missed.
func RunAblation(
	ctx context.Context, l *linker.Linker, queries []*GoldenQuery, configs []LayerConfig, concurrency int,
) (*AblationReport, error) {
	prunable := Prunable(queries)
	if len(prunable) == 0 {
		return nil, ErrNoPrunableQueries
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	report := &AblationReport{Queries: len(prunable)}
	for _, cfg := range configs {
		results := make([]*QueryResult, len(prunable))
		err := parallel(ctx, len(prunable), concurrency, func(i int) error {
			gq := prunable[i]
			seeds := l.ResolveTablesLayers(gq.NLQuery, cfg.Layers)
			selected := l.FindMinimalTables(seeds, 0)
			precision, recall := PrecisionRecall(selected, gq.ExpectedTables)
			missing, extra := Diff(selected, gq.ExpectedTables)
			results[i] = &QueryResult{
				ID:             gq.ID,
				Query:          gq.NLQuery,
				ExpectedTables: gq.ExpectedTables,
				SeedTables:     seeds,
				SelectedTables: selected,
				Missing:        missing,
				Extra:          extra,
				Precision:      precision,
				Recall:         recall,
				Passed:         recall >= 1,
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("configuration %s: %w", cfg.Name, err)
		}

		lr := &LayerResult{
			LayerConfig: cfg,
			Failures:    make([]string, 0),
			Results:     results,
		}
		precisions := make([]float64, 0, len(results))
		recalls := make([]float64, 0, len(results))
		for _, r := range results {
			precisions = append(precisions, r.Precision)
			recalls = append(recalls, r.Recall)
			if !r.Passed {
				lr.FailCount++
				lr.Failures = append(lr.Failures, r.ID)
			}
		}
		lr.MeanPrecision = Mean(precisions)
		lr.MeanRecall = Mean(recalls)
		report.Layers = append(report.Layers, lr)
	}
	return report, nil
}

// Findings - short interpretation of the default three layer comparison.
func (ar *AblationReport) Findings() []string {
	if len(ar.Layers) != len(DefaultLayerConfigs) {
		return nil
	}
	l1, l12, l123 := ar.Layers[0], ar.Layers[1], ar.Layers[2]
	var res []string
	if l12.MeanRecall > l1.MeanRecall {
		res = append(res, fmt.Sprintf(
			"entity layer adds +%.2f recall (%d -> %d failures)",
			l12.MeanRecall-l1.MeanRecall, l1.FailCount, l12.FailCount,
		))
	}
	if l123.MeanPrecision != l12.MeanPrecision || l123.MeanRecall != l12.MeanRecall {
		res = append(res, fmt.Sprintf(
			"column layer changes precision by %+.2f and recall by %+.2f (%d -> %d failures)",
			l123.MeanPrecision-l12.MeanPrecision, l123.MeanRecall-l12.MeanRecall, l12.FailCount, l123.FailCount,
		))
	}
	return res
}
