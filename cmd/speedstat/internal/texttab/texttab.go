// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out tables of text in fixed-width columns.
package texttab

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// An Align specifies how a cell is aligned within its column.
type Align int

const (
	Left Align = iota
	Right
	Center
)

// DefaultMargin separates adjacent columns.
const DefaultMargin = "  "

// A Table accumulates rows of cells and formats them so that each
// column is as wide as its widest cell.
//
// Cells are added to the current row with Cell. Row starts a new row.
type Table struct {
	rows [][]cell
}

type cell struct {
	text  string
	align Align
}

// Row starts a new row.
func (t *Table) Row() {
	t.rows = append(t.rows, nil)
}

// Cell appends a cell to the current row, starting a row if there are
// none yet.
func (t *Table) Cell(text string, align Align) {
	if len(t.rows) == 0 {
		t.Row()
	}
	r := &t.rows[len(t.rows)-1]
	*r = append(*r, cell{text, align})
}

// NumRows returns the number of rows in t.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Format writes t to w. Columns are separated by DefaultMargin and
// trailing spaces are trimmed from each line.
func (t *Table) Format(w io.Writer) error {
	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c.text); n > widths[i] {
				widths[i] = n
			}
		}
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for i, c := range row {
			if i > 0 {
				line.WriteString(DefaultMargin)
			}
			pad := widths[i] - utf8.RuneCountInString(c.text)
			switch c.align {
			case Left:
				line.WriteString(c.text)
				line.WriteString(strings.Repeat(" ", pad))
			case Right:
				line.WriteString(strings.Repeat(" ", pad))
				line.WriteString(c.text)
			case Center:
				line.WriteString(strings.Repeat(" ", pad/2))
				line.WriteString(c.text)
				line.WriteString(strings.Repeat(" ", pad-pad/2))
			}
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
