// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedtab derives speedup ratios between Polly, LLVM and
// Loopy from a table of per-benchmark execution times and summarizes
// them.
package speedtab

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/zchee/speedstat/benchframe"
)

// Input columns of a results table, in seconds.
const (
	PollySec = "Polly_SEC"
	LLVMSec  = "LLVM_SEC"
	LoopySec = "Loopy_SEC"
)

// Derived speedup columns.
const (
	PollyLoopySpeedup = "Polly_Loopy_speedup"
	LLVMLoopySpeedup  = "LLVM_Loopy_speedup"
	PollyLLVMSpeedup  = "Polly_LLVM_speedup"
)

// Required is the set of columns every results table must have.
var Required = []string{PollySec, LLVMSec, LoopySec}

// A Speedup defines a derived column as the ratio Num/Den of two
// input columns.
type Speedup struct {
	Name     string
	Num, Den string
}

// Speedups is the list of columns added by Derive, in order.
var Speedups = []Speedup{
	{PollyLoopySpeedup, PollySec, LoopySec},
	{LLVMLoopySpeedup, LLVMSec, LoopySec},
	{PollyLLVMSpeedup, LLVMSec, PollySec},
}

// Derive appends the Speedups columns to t. Existing columns are not
// modified, and deriving twice leaves t unchanged.
func Derive(t *benchframe.Table) error {
	for _, s := range Speedups {
		vals, err := t.Ratio(s.Num, s.Den)
		if err != nil {
			return fmt.Errorf("deriving %s: %w", s.Name, err)
		}
		if err := t.AddFloats(s.Name, vals); err != nil {
			return err
		}
	}
	return nil
}

// DefaultExclude is the set of outlier rows left out of the summary
// means of the polybench results.
var DefaultExclude = []int{17, 19}

// filteredRatios returns num/den for every row of t whose index is not
// in exclude. NaN ratios are dropped. Indices in exclude that are out
// of range are ignored.
func filteredRatios(t *benchframe.Table, num, den string, exclude []int) ([]float64, error) {
	ratios, err := t.Ratio(num, den)
	if err != nil {
		return nil, err
	}
	skip := make(map[int]bool, len(exclude))
	for _, i := range exclude {
		skip[i] = true
	}
	xs := make([]float64, 0, len(ratios))
	for i, r := range ratios {
		if skip[i] || math.IsNaN(r) {
			continue
		}
		xs = append(xs, r)
	}
	return xs, nil
}

// FilteredMean returns the arithmetic mean of num/den over the rows of
// t not in exclude. Rows with a NaN ratio are skipped. If no rows
// remain, the mean is NaN.
func FilteredMean(t *benchframe.Table, num, den string, exclude []int) (float64, error) {
	xs, err := filteredRatios(t, num, den, exclude)
	if err != nil {
		return 0, err
	}
	return mean(xs), nil
}

// FilteredGeoMean is like FilteredMean, but returns the geometric
// mean. It is NaN if any remaining ratio is not positive.
func FilteredGeoMean(t *benchframe.Table, num, den string, exclude []int) (float64, error) {
	xs, err := filteredRatios(t, num, den, exclude)
	if err != nil {
		return 0, err
	}
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return stats.GeoMean(xs), nil
}

// mean is stats.Mean with infinities summed the way IEEE addition
// would: a single sign of infinity wins, both signs give NaN.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var pos, neg bool
	for _, x := range xs {
		pos = pos || math.IsInf(x, 1)
		neg = neg || math.IsInf(x, -1)
	}
	switch {
	case pos && neg:
		return math.NaN()
	case pos:
		return math.Inf(1)
	case neg:
		return math.Inf(-1)
	}
	return stats.Mean(xs)
}

// A Stat is a labeled summary of the ratio Num/Den.
type Stat struct {
	Label    string
	Num, Den string
}

// A Config describes one run of the report pipeline.
type Config struct {
	// Input is the path of the results file.
	Input string
	// Derive adds the Speedups columns before printing.
	Derive bool
	// Exclude is the set of row indices left out of Stats.
	Exclude []int
	// Stats are the summaries printed after the table.
	Stats []Stat
}

// Presets are the two standard reports. "polybench" reads the
// polybench timing table and shows the derived columns; "log" reads
// the timing log and summarizes the raw columns directly.
var Presets = map[string]Config{
	"polybench": {
		Input:   "tests/polybench.csv",
		Derive:  true,
		Exclude: DefaultExclude,
		Stats: []Stat{
			{"Mean polly speedup rate", LLVMSec, PollySec},
			{"Mean loopy speedup rate", LLVMSec, LoopySec},
		},
	},
	"log": {
		Input:   "tests/polybench.log",
		Derive:  false,
		Exclude: DefaultExclude,
		Stats: []Stat{
			{"Polly speedup rate", LLVMSec, PollySec},
			{"Loopy speedup rate", LLVMSec, LoopySec},
		},
	},
}

// A Summary is a computed Stat.
type Summary struct {
	Stat
	Mean    float64
	GeoMean float64
}

// A Report is a results table together with its summaries.
type Report struct {
	Table     *benchframe.Table
	Summaries []Summary
}

// Analyze derives columns of t as cfg requests and computes its
// summaries. t is modified in place.
func Analyze(t *benchframe.Table, cfg Config) (*Report, error) {
	if cfg.Derive {
		if err := Derive(t); err != nil {
			return nil, err
		}
	}
	r := &Report{Table: t}
	for _, st := range cfg.Stats {
		m, err := FilteredMean(t, st.Num, st.Den, cfg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", st.Label, err)
		}
		gm, err := FilteredGeoMean(t, st.Num, st.Den, cfg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", st.Label, err)
		}
		r.Summaries = append(r.Summaries, Summary{st, m, gm})
	}
	return r, nil
}
