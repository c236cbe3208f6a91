// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtsv

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/zchee/speedstat/benchframe"
)

// A Writer writes tables in the tab-separated results format.
type Writer struct {
	w   *csv.Writer
	row []string
}

// NewWriter returns a writer that writes tab-separated results to w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &Writer{w: cw}
}

// Write writes t as a header line followed by one line per row, and
// flushes the output. Loading the output with Read reproduces the
// column names and values of t.
func (w *Writer) Write(t *benchframe.Table) error {
	cols := t.Columns()
	w.row = append(w.row[:0], t.Names()...)
	if err := w.w.Write(w.row); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		w.row = w.row[:0]
		for _, c := range cols {
			w.row = append(w.row, Field(c, i))
		}
		if err := w.w.Write(w.row); err != nil {
			return err
		}
	}
	w.w.Flush()
	return w.w.Error()
}

// Field returns the text of row i of column c as it appears in a
// results file. Floats use the shortest representation that parses
// back to the same value. NaN is written as an empty field.
func Field(c *benchframe.Column, i int) string {
	if c.Kind == benchframe.String {
		return c.Strings[i]
	}
	return FormatFloat(c.Floats[i])
}

// FormatFloat formats v for a results file.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e21) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
