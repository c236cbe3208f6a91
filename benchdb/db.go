// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdb stores benchmark result tables in a SQL database.
//
// The caller must import the database driver, for example
//
//	import _ "github.com/mattn/go-sqlite3"
//
// Supported drivers are "sqlite3" and "mysql".
package benchdb

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/zchee/speedstat/benchframe"
)

// DB is a handle to a results database.
type DB struct {
	sql    *sql.DB
	driver string
}

// Open opens the database named by dsn using driver.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case "sqlite3", "mysql":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{sql: db, driver: driver}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.sql.Close()
}

// quote quotes a SQL identifier for db's dialect.
func (db *DB) quote(name string) string {
	if db.driver == "mysql" {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// IndexColumn is the name of the column holding each row's position.
const IndexColumn = "idx"

// Store writes t to the SQL table called name, replacing any previous
// contents. The SQL table has an integer IndexColumn followed by one
// column per column of t; Float columns become DOUBLE and String
// columns TEXT. Non-finite floats are stored as NULL.
func (db *DB) Store(ctx context.Context, name string, t *benchframe.Table) (err error) {
	cols := t.Columns()
	for _, c := range cols {
		if c.Name == IndexColumn {
			return fmt.Errorf("storing %s: column name %q is reserved", name, IndexColumn)
		}
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	table := db.quote(name)
	defs := []string{db.quote(IndexColumn) + " INTEGER"}
	names := []string{db.quote(IndexColumn)}
	for _, c := range cols {
		typ := "TEXT"
		if c.Kind == benchframe.Float {
			typ = "DOUBLE"
		}
		defs = append(defs, db.quote(c.Name)+" "+typ)
		names = append(names, db.quote(c.Name))
	}
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("storing %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("storing %s: %w", name, err)
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	insert, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(names, ", "), marks))
	if err != nil {
		return fmt.Errorf("storing %s: %w", name, err)
	}
	defer insert.Close()

	args := make([]interface{}, len(names))
	for i := 0; i < t.Len(); i++ {
		args[0] = i
		for j, c := range cols {
			args[j+1] = value(c, i)
		}
		if _, err := insert.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("storing %s row %d: %w", name, i, err)
		}
	}
	return tx.Commit()
}

func value(c *benchframe.Column, i int) interface{} {
	if c.Kind == benchframe.String {
		return c.Strings[i]
	}
	v := c.Floats[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// ParseTarget splits a "driver:dsn" database target, as accepted by
// the -db flag.
func ParseTarget(target string) (driver, dsn string, err error) {
	i := strings.IndexByte(target, ':')
	if i <= 0 || i == len(target)-1 {
		return "", "", fmt.Errorf("database target %q is not of the form driver:dsn", target)
	}
	return target[:i], target[i+1:], nil
}
