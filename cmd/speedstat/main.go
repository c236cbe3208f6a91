// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Speedstat compares the execution times of benchmarks compiled with
// Polly, plain LLVM, and Loopy.
//
// Usage:
//
//	speedstat [flags] [input]
//
// The input is a tab-separated results file whose first line names
// the columns. It must have the numeric columns Polly_SEC, LLVM_SEC
// and Loopy_SEC, giving each benchmark's execution time in seconds
// under each tool. Other columns, such as the benchmark name, are
// shown unchanged. The delimiter is a tab even if the file is named
// ".csv".
//
// speedstat prints the table and then two summary lines: the mean
// speedup of Polly over LLVM (LLVM_SEC / Polly_SEC) and the mean
// speedup of Loopy over LLVM (LLVM_SEC / Loopy_SEC). Rows 17 and 19
// are outliers in the polybench results and are left out of the
// means by default; use -exclude to change this.
//
// Presets
//
// The -preset flag selects one of two standard reports.
//
// "polybench" (the default) reads tests/polybench.csv and adds three
// derived columns before printing the table:
//
//	Polly_Loopy_speedup = Polly_SEC / Loopy_SEC
//	LLVM_Loopy_speedup  = LLVM_SEC / Loopy_SEC
//	Polly_LLVM_speedup  = LLVM_SEC / Polly_SEC
//
// The summaries are labeled "Mean polly speedup rate" and "Mean loopy
// speedup rate".
//
// "log" reads tests/polybench.log, prints it as is, and labels its
// summaries "Polly speedup rate" and "Loopy speedup rate".
//
// An input argument overrides the preset's file, and -derive
// overrides whether the derived columns are added.
//
// Example
//
//	$ speedstat -exclude= small.csv
//	   kernel  Polly_SEC  LLVM_SEC  Loopy_SEC  Polly_Loopy_speedup  LLVM_Loopy_speedup  Polly_LLVM_speedup
//	0  2mm             2         4          1                    2                   4                   2
//	1  3mm             4         8          2                    2                   4                   2
//	2  atax            6        12          3                    2                   4                   2
//	Mean polly speedup rate 2
//	Mean loopy speedup rate 4
//
// Division by zero and missing values are not errors: they show up as
// NaN or inf in the table. Rows whose ratio is NaN are skipped when
// computing a mean.
//
// Output formats
//
// -format csv and -format tsv print the table as comma- or
// tab-separated values instead. In these formats the summary lines
// are written to standard error.
//
// Storing results
//
// -db driver:dsn additionally stores the table, including derived
// columns, in a SQL database. The drivers "sqlite3" and "mysql" are
// supported. For example:
//
//	speedstat -db sqlite3:results.db -db-table polybench
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/term"

	"github.com/zchee/speedstat/benchdb"
	"github.com/zchee/speedstat/benchtsv"
	"github.com/zchee/speedstat/cmd/speedstat/internal/speedtab"
)

func usage(flags *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(flags.Output(), `Usage: speedstat [flags] [input]

speedstat reads a tab-separated table of Polly, LLVM and Loopy
execution times, prints it, and prints the mean speedups of Polly and
Loopy over LLVM.

For details, see "go doc github.com/zchee/speedstat/cmd/speedstat".

`)
		flags.PrintDefaults()
	}
}

// errUsage reports a command line error. The details have already
// been printed.
var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("speedstat: ")
	log.SetFlags(0)

	err := speedstat(os.Stdout, os.Stderr, os.Args[1:])
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func speedstat(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("speedstat", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = usage(flags)
	flagPreset := flags.String("preset", "polybench", "use report `name` ("+strings.Join(presetNames(), " or ")+")")
	flagDerive := flags.Bool("derive", false, "add the derived speedup columns (default set by -preset)")
	flagExclude := flags.String("exclude", "17,19", "leave the comma-separated row `indices` out of the means")
	flagFormat := flags.String("format", "text", "print the table in `format`:\n  text - plain text\n  csv  - comma-separated values (summaries are written to stderr)\n  tsv  - tab-separated values (summaries are written to stderr)\n")
	flagGeoMean := flags.Bool("geomean", false, "also print the geometric mean of each ratio")
	flagColor := flags.String("color", "auto", "color summary values: auto, always or never")
	flagDB := flags.String("db", "", "also store the table in the database `driver:dsn`")
	flagDBTable := flags.String("db-table", "", "store into SQL table `name` (default: input file name)")
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return errUsage
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return errUsage
	}

	cfg, ok := speedtab.Presets[*flagPreset]
	if !ok {
		return fmt.Errorf("-preset must be %s", strings.Join(presetNames(), " or "))
	}
	if flags.NArg() == 1 {
		cfg.Input = flags.Arg(0)
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "derive" {
			cfg.Derive = *flagDerive
		}
	})
	exclude, err := parseIndices(*flagExclude)
	if err != nil {
		return fmt.Errorf("parsing -exclude: %w", err)
	}
	cfg.Exclude = exclude

	opts := speedtab.Opts{GeoMean: *flagGeoMean}
	switch *flagColor {
	default:
		return fmt.Errorf("-color must be auto, always or never")
	case "auto":
		opts.Color = isTerminal(w)
	case "always":
		opts.Color = true
	case "never":
	}

	var format func(r *speedtab.Report) error
	switch *flagFormat {
	default:
		return fmt.Errorf("-format must be text, csv or tsv")
	case "text":
		format = func(r *speedtab.Report) error { return r.ToText(w, opts) }
	case "csv":
		format = func(r *speedtab.Report) error { return r.ToCSV(w, wErr, opts) }
	case "tsv":
		format = func(r *speedtab.Report) error { return r.ToTSV(w, wErr, opts) }
	}

	var db *benchdb.DB
	if *flagDB != "" {
		driver, dsn, err := benchdb.ParseTarget(*flagDB)
		if err != nil {
			return err
		}
		if db, err = benchdb.Open(driver, dsn); err != nil {
			return err
		}
		defer db.Close()
	}

	// Nothing is printed until the whole input has been read.
	t, err := benchtsv.Load(cfg.Input, speedtab.Required...)
	if err != nil {
		return err
	}
	report, err := speedtab.Analyze(t, cfg)
	if err != nil {
		return err
	}
	if err := format(report); err != nil {
		return err
	}

	if db != nil {
		name := *flagDBTable
		if name == "" {
			base := filepath.Base(cfg.Input)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if err := db.Store(context.Background(), name, report.Table); err != nil {
			return err
		}
	}
	return nil
}

func presetNames() []string {
	var names []string
	for name := range speedtab.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseIndices parses a comma-separated list of row indices. An empty
// list is valid.
func parseIndices(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			return nil, fmt.Errorf("negative row index %d", i)
		}
		out = append(out, i)
	}
	return out, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
