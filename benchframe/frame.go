// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchframe provides an in-memory columnar table of
// benchmark results.
//
// A Table is an ordered sequence of rows identified by their
// zero-based position, with a set of named, typed columns. Tables are
// built once, typically by package benchtsv, and then extended with
// derived columns. Rows are never added or removed after
// construction, so a row's position identifies the same benchmark in
// every column.
package benchframe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// A Kind is the type of values held by a Column.
type Kind int

const (
	// String columns hold arbitrary text, such as benchmark names.
	String Kind = iota
	// Float columns hold float64 measurements. Missing values are
	// NaN.
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Column is a single named column of a Table.
type Column struct {
	Name string
	Kind Kind

	// Floats holds the values of a Float column.
	Floats []float64
	// Strings holds the values of a String column.
	Strings []string
}

// Len returns the number of values in c.
func (c *Column) Len() int {
	if c.Kind == Float {
		return len(c.Floats)
	}
	return len(c.Strings)
}

var (
	// ErrNoColumn is returned when a named column does not exist.
	ErrNoColumn = errors.New("no such column")
	// ErrNotNumeric is returned when a Float column is required
	// but the named column holds strings.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrLength is returned when a column's length does not match
	// the table's row count.
	ErrLength = errors.New("column length does not match row count")
)

// A Table is a columnar table of benchmark results.
//
// The zero value is an empty table with no rows and no columns. The
// row count is fixed by the first column added.
type Table struct {
	cols   []*Column
	byName map[string]int
	n      int
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	return t.n
}

// Columns returns the columns of t in order. The caller must not
// modify the returned slice.
func (t *Table) Columns() []*Column {
	return t.cols
}

// Names returns the names of the columns of t in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the column called name, or nil if there is none.
func (t *Table) Column(name string) *Column {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// Floats returns the values of the Float column called name.
func (t *Table) Floats(name string) ([]float64, error) {
	c := t.Column(name)
	if c == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNoColumn)
	}
	if c.Kind != Float {
		return nil, fmt.Errorf("%s: %w", name, ErrNotNumeric)
	}
	return c.Floats, nil
}

// Add appends column c to t. If t already has a column with the same
// name, c replaces it in place, so re-deriving a column is
// idempotent. The first column added to an empty table sets its row
// count; every later column must have exactly that many values.
func (t *Table) Add(c *Column) error {
	if len(t.cols) == 0 {
		t.n = c.Len()
	} else if c.Len() != t.n {
		return fmt.Errorf("%s: %w (%d != %d)", c.Name, ErrLength, c.Len(), t.n)
	}
	if t.byName == nil {
		t.byName = make(map[string]int)
	}
	if i, ok := t.byName[c.Name]; ok {
		t.cols[i] = c
		return nil
	}
	t.byName[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// AddFloats is shorthand for adding a Float column.
func (t *Table) AddFloats(name string, vals []float64) error {
	return t.Add(&Column{Name: name, Kind: Float, Floats: vals})
}

// AddStrings is shorthand for adding a String column.
func (t *Table) AddStrings(name string, vals []string) error {
	return t.Add(&Column{Name: name, Kind: String, Strings: vals})
}

// Ratio returns the row-wise quotient num[i]/den[i] of two Float
// columns. Division by zero and missing values follow IEEE 754
// semantics and yield ±Inf or NaN.
func (t *Table) Ratio(num, den string) ([]float64, error) {
	xs, err := t.Floats(num)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(den)
	if err != nil {
		return nil, err
	}
	out := make([]float64, t.n)
	for i := range out {
		out[i] = xs[i] / ys[i]
	}
	return out, nil
}

// missing is the set of field values treated as a missing number.
var missing = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

// IsMissing reports whether field denotes a missing value.
func IsMissing(field string) bool {
	return missing[field]
}

// ParseValue parses field as a number. Missing values parse as NaN.
// Values out of float64 range parse as ±Inf without error.
func ParseValue(field string) (float64, error) {
	if IsMissing(field) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

// ParseColumn builds a column from raw field values, inferring its
// Kind. The column is Float if every field parses with ParseValue, so
// a column of only missing values is Float and all NaN. Otherwise it
// is String and keeps the fields verbatim.
func ParseColumn(name string, fields []string) *Column {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return &Column{Name: name, Kind: String, Strings: fields}
		}
		vals[i] = v
	}
	return &Column{Name: name, Kind: Float, Floats: vals}
}
