// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/zchee/speedstat/benchframe"
	"github.com/zchee/speedstat/benchtsv"
	"github.com/zchee/speedstat/cmd/speedstat/internal/texttab"
)

// Opts controls how a Report is rendered.
type Opts struct {
	// Color enables ANSI colors in summary lines.
	Color bool
	// GeoMean adds a geometric mean line after each mean.
	GeoMean bool
}

// maxDecimals bounds the decimals shown for float columns in text
// tables.
const maxDecimals = 6

// ToText renders the table followed by the summary lines, assuming a
// fixed-width font.
func (r *Report) ToText(w io.Writer, opts Opts) error {
	if err := WriteTable(w, r.Table); err != nil {
		return err
	}
	return r.WriteSummaries(w, opts)
}

// ToCSV renders the table as comma-separated values to w, with the
// row index in the first column. Summary lines are written in text
// format to the "summaries" Writer so as not to interrupt the CSV.
func (r *Report) ToCSV(w, summaries io.Writer, opts Opts) error {
	o := csv.NewWriter(w)
	t := r.Table
	row := append([]string{""}, t.Names()...)
	o.Write(row)
	for i := 0; i < t.Len(); i++ {
		row = append(row[:0], strconv.Itoa(i))
		for _, c := range t.Columns() {
			row = append(row, benchtsv.Field(c, i))
		}
		o.Write(row)
	}
	o.Flush()
	if err := o.Error(); err != nil {
		return err
	}
	return r.WriteSummaries(summaries, opts)
}

// ToTSV renders the table in the tab-separated results format to w.
// Summary lines go to the "summaries" Writer.
func (r *Report) ToTSV(w, summaries io.Writer, opts Opts) error {
	if err := benchtsv.NewWriter(w).Write(r.Table); err != nil {
		return err
	}
	return r.WriteSummaries(summaries, opts)
}

// WriteSummaries writes one "label value" line per summary.
func (r *Report) WriteSummaries(w io.Writer, opts Opts) error {
	val := color.New(color.FgGreen)
	note := color.New(color.FgHiBlack)
	if opts.Color {
		val.EnableColor()
		note.EnableColor()
	} else {
		val.DisableColor()
		note.DisableColor()
	}
	for _, s := range r.Summaries {
		if _, err := fmt.Fprintln(w, s.Label, val.Sprint(s.Mean)); err != nil {
			return err
		}
		if opts.GeoMean {
			if _, err := fmt.Fprintln(w, s.Label, note.Sprint("(geomean)"), val.Sprint(s.GeoMean)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteTable writes t as a fixed-width text table. The first column
// is the row index. Numeric columns are right-aligned and each float
// column uses one number of decimals for all of its values.
func WriteTable(w io.Writer, t *benchframe.Table) error {
	var o texttab.Table
	cols := t.Columns()

	o.Row()
	o.Cell("", texttab.Right)
	for _, c := range cols {
		o.Cell(c.Name, alignOf(c))
	}

	prec := make([]int, len(cols))
	for j, c := range cols {
		if c.Kind == benchframe.Float {
			prec[j] = decimals(c.Floats)
		}
	}
	for i := 0; i < t.Len(); i++ {
		o.Row()
		o.Cell(strconv.Itoa(i), texttab.Right)
		for j, c := range cols {
			if c.Kind == benchframe.String {
				o.Cell(c.Strings[i], texttab.Left)
				continue
			}
			o.Cell(formatCell(c.Floats[i], prec[j]), texttab.Right)
		}
	}
	return o.Format(w)
}

func alignOf(c *benchframe.Column) texttab.Align {
	if c.Kind == benchframe.Float {
		return texttab.Right
	}
	return texttab.Left
}

// decimals returns the number of decimals needed to show every finite
// value of xs exactly, capped at maxDecimals.
func decimals(xs []float64) int {
	d := 0
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if dot := strings.IndexByte(s, '.'); dot >= 0 {
			if n := len(s) - dot - 1; n > d {
				d = n
			}
		}
		if d >= maxDecimals {
			return maxDecimals
		}
	}
	return d
}

func formatCell(x float64, prec int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', prec, 64)
}
