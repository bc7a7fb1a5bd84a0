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
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/schemalink/internal/benchmark"
	"github.com/greenmaskio/schemalink/internal/domains"
	"github.com/greenmaskio/schemalink/internal/storages"
	"github.com/greenmaskio/schemalink/internal/storages/builder"
	stringsUtils "github.com/greenmaskio/schemalink/internal/utils/strings"
	"github.com/greenmaskio/schemalink/pkg/linker"
)

type BenchmarkParams struct {
	QueryID string
	Verbose bool
	Format  string
}

// LoadGoldenQueries - reads the golden file from the storage when the schema is taken from the storage,
// otherwise from the local file system.
func LoadGoldenQueries(ctx context.Context, cfg *domains.Config) ([]*benchmark.GoldenQuery, error) {
	var st storages.Storager
	if cfg.Schema.Source == domains.SchemaSourceStorage {
		var err error
		st, err = builder.GetStorage(ctx, &cfg.Storage, &cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("error building storage: %w", err)
		}
	}
	return benchmark.LoadGoldenQueries(ctx, st, cfg.Benchmark.GoldenQueries)
}

// Benchmark - scores the golden queries and prints the report. The report is returned so the caller can
// decide about the exit code.
func Benchmark(
	ctx context.Context, w io.Writer, l *linker.Linker, schemaText string, queries []*benchmark.GoldenQuery,
	cfg *domains.BenchmarkConfig, params *BenchmarkParams,
) (*benchmark.Report, error) {
	if params.QueryID != "" {
		var err error
		queries, err = benchmark.FilterByID(queries, params.QueryID)
		if err != nil {
			return nil, err
		}
	}

	r, err := benchmark.NewRunner(l, benchmark.Config{
		MaxDepth:      cfg.MaxDepth,
		Concurrency:   cfg.Concurrency,
		PassCondition: cfg.PassCondition,
		Fingerprint:   benchmark.Fingerprint(schemaText),
	})
	if err != nil {
		return nil, err
	}
	report, err := r.Run(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("benchmark error: %w", err)
	}

	switch params.Format {
	case FormatText, "":
		err = printReportText(w, report, params.Verbose)
	case FormatJson:
		err = printJson(w, report)
	case FormatYaml:
		err = printYaml(w, report)
	default:
		err = unknownFormatError(params.Format)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("RunID", report.RunID).
		Int("Passed", report.Summary.Passed).
		Int("Failed", report.Summary.Failed).
		Msg("benchmark completed")
	return report, nil
}

func printReportText(w io.Writer, report *benchmark.Report, verbose bool) error {
	_, err := fmt.Fprintf(
		w, "Run: %s\nSchema: %s (%d tables)\nTokenizer: %s\nDepth: %d\nPass condition: %s\n",
		report.RunID, report.SchemaFingerprint, report.SchemaTables, report.Tokenizer, report.MaxDepth,
		report.PassCondition,
	)
	if err != nil {
		return err
	}

	header := []string{"ID", "Query", "Precision", "Recall", "Reduction %", "Passed"}
	if verbose {
		header = append(header, "Selected", "Missing", "Extra")
	}
	results := newTable(w, header...)
	for _, res := range report.Results {
		row := []string{
			res.ID,
			stringsUtils.WrapString(res.Query, maxCellLength),
			strconv.FormatFloat(res.Precision, 'f', 2, 64),
			strconv.FormatFloat(res.Recall, 'f', 2, 64),
			strconv.FormatFloat(res.ReductionPct, 'f', 1, 64),
			strconv.FormatBool(res.Passed),
		}
		if verbose {
			row = append(
				row,
				stringsUtils.JoinWrapped(res.SelectedTables, ", ", maxCellLength/2),
				stringsUtils.JoinWrapped(res.Missing, ", ", maxCellLength/2),
				stringsUtils.JoinWrapped(res.Extra, ", ", maxCellLength/2),
			)
		}
		results.Append(row)
	}
	results.Render()

	s := report.Summary
	summary := newTable(w, "Metric", "Value")
	summary.AppendBulk([][]string{
		{"queries", strconv.Itoa(s.Queries)},
		{"passed", strconv.Itoa(s.Passed)},
		{"failed", strconv.Itoa(s.Failed)},
		{"mean precision", strconv.FormatFloat(s.MeanPrecision, 'f', 4, 64)},
		{"mean recall", strconv.FormatFloat(s.MeanRecall, 'f', 4, 64)},
		{"mean reduction %", strconv.FormatFloat(s.MeanReductionPct, 'f', 1, 64)},
		{"median reduction %", strconv.FormatFloat(s.MedianReductionPct, 'f', 1, 64)},
		{"full tokens", strconv.Itoa(s.TotalFullTokens)},
		{"pruned tokens", strconv.Itoa(s.TotalPrunedTokens)},
		{"saved tokens", strconv.Itoa(s.SavedTokens)},
	})
	summary.Render()
	return nil
}
