// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtsv reads and writes tab-separated benchmark results
// files.
//
// A results file is plain text. The first line is a header naming the
// columns, and every following line is a data row with one field per
// header column, separated by tabs. The delimiter is always a tab,
// whatever the file's extension.
package benchtsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zchee/speedstat/benchframe"
)

// A Reader reads rows from a tab-separated results file.
//
// Its API is modeled on bufio.Scanner. The header is read by the
// first call to Scan.
type Reader struct {
	r        *csv.Reader
	fileName string
	started  bool
	header   []string
	row      []string
	line     int
	err      error
}

// A SyntaxError reports malformed input on a particular line of a
// results file. Line 1 is the header.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

// Is reports whether target is ErrMalformed, so every SyntaxError
// matches errors.Is(err, ErrMalformed).
func (s *SyntaxError) Is(target error) bool {
	return target == ErrMalformed
}

// ErrMalformed matches every *SyntaxError.
var ErrMalformed = errors.New("malformed results file")

// NewReader returns a reader that parses tab-separated results from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	// The header fixes the field count for every row.
	cr.FieldsPerRecord = 0
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{r: cr, fileName: fileName}
}

// Header returns the column names. It is valid after the first call
// to Scan.
func (r *Reader) Header() []string {
	return r.header
}

// Scan advances the reader to the next data row and reports whether a
// row was read. The caller should use Row to get the row. If Scan
// reaches EOF or an error occurs, it returns false, in which case the
// caller should use Err to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.started {
		r.started = true
		if !r.readHeader() {
			return false
		}
	}

	rec, err := r.r.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		r.err = r.wrap(err)
		return false
	}
	r.row = rec
	r.line, _ = r.r.FieldPos(0)
	return true
}

func (r *Reader) readHeader() bool {
	hdr, err := r.r.Read()
	if err == io.EOF {
		r.err = &SyntaxError{r.fileName, 1, "missing header"}
		return false
	}
	if err != nil {
		r.err = r.wrap(err)
		return false
	}
	line, _ := r.r.FieldPos(0)
	seen := make(map[string]bool, len(hdr))
	for _, name := range hdr {
		if seen[name] {
			r.err = &SyntaxError{r.fileName, line, fmt.Sprintf("duplicate column %q", name)}
			return false
		}
		seen[name] = true
	}
	r.header = hdr
	r.line = line
	return true
}

// wrap converts an encoding/csv error into a SyntaxError. I/O errors
// are returned with the file name attached.
func (r *Reader) wrap(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		msg := pe.Err.Error()
		if errors.Is(pe.Err, csv.ErrFieldCount) {
			msg = fmt.Sprintf("wrong number of fields (want %d)", len(r.header))
		}
		return &SyntaxError{r.fileName, pe.StartLine, msg}
	}
	return fmt.Errorf("%s: %w", r.fileName, err)
}

// Row returns the fields of the last row read by Scan. The caller
// may retain the slice.
func (r *Reader) Row() []string {
	return r.row
}

// Line returns the line number of the last row read by Scan.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first error that was encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

// Load reads the results file at path into a table. Each name in
// required must be a numeric column of the file.
//
// If path does not exist, the error satisfies errors.Is(err,
// fs.ErrNotExist). Malformed input is reported as a *SyntaxError.
func Load(path string, required ...string) (*benchframe.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path, required...)
}

// Read reads a results file from r into a table. fileName is used in
// error messages. Each name in required must be a numeric column.
func Read(r io.Reader, fileName string, required ...string) (*benchframe.Table, error) {
	tr := NewReader(r, fileName)
	var rows [][]string
	var lines []int
	for tr.Scan() {
		rows = append(rows, tr.Row())
		lines = append(lines, tr.Line())
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}
	hdr := tr.Header()

	t := new(benchframe.Table)
	fields := make([]string, len(rows))
	for col, name := range hdr {
		for i, row := range rows {
			fields[i] = row[col]
		}
		c := benchframe.ParseColumn(name, append([]string(nil), fields...))
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}

	for _, name := range required {
		c := t.Column(name)
		if c == nil {
			return nil, &SyntaxError{tr.fileName, 1, fmt.Sprintf("missing column %q", name)}
		}
		if c.Kind == benchframe.Float {
			continue
		}
		// Report the first field that is not a number.
		for i, f := range c.Strings {
			if _, err := benchframe.ParseValue(f); err != nil {
				return nil, &SyntaxError{tr.fileName, lines[i], fmt.Sprintf("column %q: non-numeric value %q", name, f)}
			}
		}
	}
	return t, nil
}
