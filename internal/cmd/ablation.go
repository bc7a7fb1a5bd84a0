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

	"github.com/greenmaskio/schemalink/internal/benchmark"
	stringsUtils "github.com/greenmaskio/schemalink/internal/utils/strings"
	"github.com/greenmaskio/schemalink/pkg/linker"
)

// Ablation - compares the resolver layer configurations on the golden queries.
func Ablation(
	ctx context.Context, w io.Writer, l *linker.Linker, queries []*benchmark.GoldenQuery, concurrency int,
	format string,
) (*benchmark.AblationReport, error) {
	report, err := benchmark.RunAblation(ctx, l, queries, benchmark.DefaultLayerConfigs, concurrency)
	if err != nil {
		return nil, fmt.Errorf("ablation error: %w", err)
	}

	switch format {
	case FormatText, "":
		err = printAblationText(w, report)
	case FormatJson:
		err = printJson(w, report)
	case FormatYaml:
		err = printYaml(w, report)
	default:
		err = unknownFormatError(format)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func printAblationText(w io.Writer, report *benchmark.AblationReport) error {
	table := newTable(w, "Configuration", "Mean precision", "Mean recall", "Failures", "Failed queries")
	for _, lr := range report.Layers {
		table.Append([]string{
			lr.Name,
			strconv.FormatFloat(lr.MeanPrecision, 'f', 4, 64),
			strconv.FormatFloat(lr.MeanRecall, 'f', 4, 64),
			fmt.Sprintf("%d/%d", lr.FailCount, report.Queries),
			stringsUtils.JoinWrapped(lr.Failures, ", ", maxCellLength/2),
		})
	}
	table.Render()

	for _, f := range report.Findings() {
		if _, err := fmt.Fprintf(w, "- %s\n", f); err != nil {
			return err
		}
	}
	return nil
}
