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
	"encoding/hex"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/spaolacci/murmur3"
)

// PrecisionRecall - table selection quality against the expected tables. An empty expectation is always
// met; an empty selection never is.
func PrecisionRecall(selected, expected []string) (precision, recall float64) {
	if len(expected) == 0 {
		return 1, 1
	}
	if len(selected) == 0 {
		return 0, 0
	}
	sel := uniq(selected)
	exp := uniq(expected)
	tp := 0
	for t := range sel {
		if _, ok := exp[t]; ok {
			tp++
		}
	}
	return float64(tp) / float64(len(sel)), float64(tp) / float64(len(exp))
}

// Diff - returns the sorted expected tables that were not selected and the selected tables that were not
// expected.
func Diff(selected, expected []string) (missing, extra []string) {
	sel := uniq(selected)
	exp := uniq(expected)
	missing = make([]string, 0)
	extra = make([]string, 0)
	for t := range exp {
		if _, ok := sel[t]; !ok {
			missing = append(missing, t)
		}
	}
	for t := range sel {
		if _, ok := exp[t]; !ok {
			extra = append(extra, t)
		}
	}
	slices.Sort(missing)
	slices.Sort(extra)
	return missing, extra
}

// Mean - arithmetic mean. 0 for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).InexactFloat64()
}

// Median - the middle value, or the mean of the two middle values. 0 for an empty input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return decimal.NewFromFloat(sorted[mid-1]).
		Add(decimal.NewFromFloat(sorted[mid])).
		Div(decimal.NewFromInt(2)).
		InexactFloat64()
}

// Fingerprint - murmur3 128 bit hash of the schema text. It identifies the schema a report was produced
// for.
func Fingerprint(text string) string {
	h := murmur3.New128()
	// hash.Hash never returns an error on Write
	_, _ = h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func uniq(items []string) map[string]struct{} {
	res := make(map[string]struct{}, len(items))
	for _, item := range items {
		res[item] = struct{}{}
	}
	return res
}
