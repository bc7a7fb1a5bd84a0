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
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/greenmaskio/schemalink/pkg/linker"
)

const defaultConcurrency = 4

type Config struct {
	// MaxDepth - foreign key hops added to the seeds. The reference benchmark scores the seeds only (0)
	MaxDepth      int
	Concurrency   int
	PassCondition string
	// Fingerprint - schema fingerprint put into the report, see Fingerprint
	Fingerprint string
}

// Runner - scores golden queries against a Linker. The Linker is shared by the workers.
type Runner struct {
	linker      *linker.Linker
	passCond    *PassCond
	maxDepth    int
	concurrency int
	fingerprint string
	logger      *zerolog.Logger
}

func NewRunner(l *linker.Linker, cfg Config) (*Runner, error) {
	pc, err := NewPassCond(cfg.PassCondition)
	if err != nil {
		return nil, err
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Runner{
		linker:      l,
		passCond:    pc,
		maxDepth:    cfg.MaxDepth,
		concurrency: concurrency,
		fingerprint: cfg.Fingerprint,
		logger:      &log.Logger,
	}, nil
}

// Run - scores the prunable queries in parallel and aggregates the report.
func (r *Runner) Run(ctx context.Context, queries []*GoldenQuery) (*Report, error) {
	prunable := Prunable(queries)
	if len(prunable) == 0 {
		return nil, ErrNoPrunableQueries
	}

	runID := uuid.New().String()
	startedAt := time.Now()
	r.logger.Debug().
		Str("RunID", runID).
		Int("Queries", len(prunable)).
		Int("Concurrency", r.concurrency).
		Msg("benchmark started")

	results := make([]*QueryResult, len(prunable))
	err := parallel(ctx, len(prunable), r.concurrency, func(i int) error {
		res, err := r.evaluate(prunable[i])
		if err != nil {
			return fmt.Errorf("query %s: %w", prunable[i].ID, err)
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:             runID,
		StartedAt:         startedAt,
		Elapsed:           time.Since(startedAt),
		SchemaFingerprint: r.fingerprint,
		SchemaTables:      len(r.linker.Tables()),
		Tokenizer:         r.linker.Tokenizer().Name(),
		MaxDepth:          r.maxDepth,
		PassCondition:     r.passCond.String(),
		Results:           results,
		Summary:           newSummary(results),
		Failures:          make([]string, 0),
	}
	for _, res := range results {
		if !res.Passed {
			report.Failures = append(report.Failures, res.ID)
		}
	}

	r.logger.Debug().
		Str("RunID", runID).
		Int("Passed", report.Summary.Passed).
		Int("Failed", report.Summary.Failed).
		Dur("Elapsed", report.Elapsed).
		Msg("benchmark finished")
	return report, nil
}

func (r *Runner) evaluate(gq *GoldenQuery) (*QueryResult, error) {
	pr := r.linker.Prune(gq.NLQuery, r.maxDepth)
	precision, recall := PrecisionRecall(pr.SelectedTables, gq.ExpectedTables)
	missing, extra := Diff(pr.SelectedTables, gq.ExpectedTables)
	res := &QueryResult{
		ID:             gq.ID,
		Query:          gq.NLQuery,
		ExpectedTables: gq.ExpectedTables,
		SeedTables:     pr.SeedTables,
		SelectedTables: pr.SelectedTables,
		Missing:        missing,
		Extra:          extra,
		FullTokens:     pr.FullSchemaTokens,
		PrunedTokens:   pr.PrunedSchemaTokens,
		ReductionPct:   pr.ReductionPct,
		Precision:      precision,
		Recall:         recall,
	}
	passed, err := r.passCond.Evaluate(res)
	if err != nil {
		return nil, err
	}
	res.Passed = passed
	return res, nil
}

// parallel - calls fn for every index in [0, n) with at most concurrency calls in flight. The first error
// cancels the remaining calls.
func parallel(ctx context.Context, n, concurrency int, fn func(i int) error) error {
	eg, gtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := gtx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return eg.Wait()
}
