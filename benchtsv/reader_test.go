// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtsv

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zchee/speedstat/benchframe"
)

var required = []string{"Polly_SEC", "LLVM_SEC", "Loopy_SEC"}

func TestReader(t *testing.T) {
	const data = "kernel\tPolly_SEC\tLLVM_SEC\tLoopy_SEC\n" +
		"2mm\t2\t4\t1\n" +
		"\n" +
		"3mm\t4\t8\t2\n"
	r := NewReader(strings.NewReader(data), "test")
	var rows [][]string
	var lines []int
	for r.Scan() {
		rows = append(rows, r.Row())
		lines = append(lines, r.Line())
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	if want := []string{"kernel", "Polly_SEC", "LLVM_SEC", "Loopy_SEC"}; !reflect.DeepEqual(r.Header(), want) {
		t.Errorf("header: got %v, want %v", r.Header(), want)
	}
	wantRows := [][]string{{"2mm", "2", "4", "1"}, {"3mm", "4", "8", "2"}}
	if !reflect.DeepEqual(rows, wantRows) {
		t.Errorf("rows: got %v, want %v", rows, wantRows)
	}
	if want := []int{2, 4}; !reflect.DeepEqual(lines, want) {
		t.Errorf("lines: got %v, want %v", lines, want)
	}
}

func TestRead(t *testing.T) {
	const data = "kernel\tPolly_SEC\tLLVM_SEC\tLoopy_SEC\n" +
		"2mm\t2\t4\t1\n" +
		"3mm\t4\t8\t\n" +
		"atax\t6\t12\t3\n"
	tab, err := Read(strings.NewReader(data), "test", required...)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 3 {
		t.Fatalf("got %d rows, want 3", tab.Len())
	}
	if c := tab.Column("kernel"); c.Kind != benchframe.String {
		t.Errorf("kernel has kind %v, want string", c.Kind)
	}
	loopy, err := tab.Floats("Loopy_SEC")
	if err != nil {
		t.Fatal(err)
	}
	if loopy[0] != 1 || !math.IsNaN(loopy[1]) || loopy[2] != 3 {
		t.Errorf("Loopy_SEC: got %v, want [1 NaN 3]", loopy)
	}
}

func TestReadErrors(t *testing.T) {
	type testCase struct {
		name, input string
		line        int
		msg         string
	}
	for _, test := range []testCase{
		{
			"empty",
			"",
			1, "missing header",
		},
		{
			"shortRow",
			"Polly_SEC\tLLVM_SEC\tLoopy_SEC\n1\t2\t3\n1\t2\n",
			3, "wrong number of fields (want 3)",
		},
		{
			"longRow",
			"Polly_SEC\tLLVM_SEC\tLoopy_SEC\n1\t2\t3\t4\n",
			2, "wrong number of fields (want 3)",
		},
		{
			"missingColumn",
			"Polly_SEC\tLLVM_SEC\n1\t2\n",
			1, `missing column "Loopy_SEC"`,
		},
		{
			"duplicateColumn",
			"Polly_SEC\tLLVM_SEC\tLoopy_SEC\tLLVM_SEC\n",
			1, `duplicate column "LLVM_SEC"`,
		},
		{
			"nonNumeric",
			"Polly_SEC\tLLVM_SEC\tLoopy_SEC\n1\t2\t3\n1\tslow\t3\n",
			3, `column "LLVM_SEC": non-numeric value "slow"`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(test.input), "test", required...)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("got %v, want a malformed input error", err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("got %T, want *SyntaxError", err)
			}
			want := &SyntaxError{"test", test.line, test.msg}
			if !reflect.DeepEqual(se, want) {
				t.Errorf("got %q, want %q", se, want)
			}
		})
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), required...)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
	if errors.Is(err, ErrMalformed) {
		t.Errorf("missing file reported as malformed: %v", err)
	}
}

func TestLoadExtension(t *testing.T) {
	// The delimiter is a tab whatever the suffix.
	const data = "Polly_SEC\tLLVM_SEC\tLoopy_SEC\n1\t2\t4\n"
	dir := t.TempDir()
	for _, name := range []string{"results.csv", "results.log"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
		tab, err := Load(path, required...)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got, want := tab.Names(), required; !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got columns %v, want %v", name, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	const data = "kernel\tPolly_SEC\tLLVM_SEC\tLoopy_SEC\n" +
		"2mm\t1.5\t3\t0.75\n" +
		"3mm\t0.00001\t12.125\t\n" +
		"atax\t1e+22\tinf\t3\n"
	tab, err := Read(strings.NewReader(data), "test", required...)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(tab); err != nil {
		t.Fatal(err)
	}
	want := "kernel\tPolly_SEC\tLLVM_SEC\tLoopy_SEC\n" +
		"2mm\t1.5\t3\t0.75\n" +
		"3mm\t1e-05\t12.125\t\n" +
		"atax\t1e+22\tinf\t3\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	// And the values survive a second trip.
	tab2, err := Read(&buf, "test2", required...)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range required {
		a, _ := tab.Floats(name)
		b, _ := tab2.Floats(name)
		for i := range a {
			if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
				t.Errorf("%s[%d]: %v != %v", name, i, a[i], b[i])
			}
		}
	}
}
