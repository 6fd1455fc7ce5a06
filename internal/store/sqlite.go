// Package store loads cleaned datasets into a SQLite database with explicit
// per-column types and the lookup indexes the query surface expects.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/jackie3981/baseball-scrapping/internal/clean"
	"github.com/jackie3981/baseball-scrapping/internal/model"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

// DB wraps the SQLite handle.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database and configures WAL mode.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// LoadResult reports one dataset's migration.
type LoadResult struct {
	Table       string
	Rows        int
	Indexes     []string
	NullCounts  map[string]int
	Validations []string
}

// LoadDataset replaces the dataset's table: typed columns, batch insert,
// indexes, then the post-load validations. Empty values become NULL, never
// zero.
func (d *DB) LoadDataset(ctx context.Context, ds *sink.Dataset) (*LoadResult, error) {
	table := ds.Name
	if len(ds.Columns) == 0 {
		return nil, eris.Errorf("store: dataset %s has no columns", table)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "store: begin %s", table)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quote(table))); err != nil {
		return nil, eris.Wrapf(err, "store: drop %s", table)
	}
	if _, err := tx.ExecContext(ctx, createStmt(table, ds.Columns)); err != nil {
		return nil, eris.Wrapf(err, "store: create %s", table)
	}

	stmt, err := tx.PrepareContext(ctx, insertStmt(table, ds.Columns))
	if err != nil {
		return nil, eris.Wrapf(err, "store: prepare insert %s", table)
	}
	defer stmt.Close()

	for _, row := range ds.Rows {
		args := make([]any, len(ds.Columns))
		for i, v := range row {
			if v == "" {
				args[i] = nil
			} else {
				args[i] = v
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return nil, eris.Wrapf(err, "store: insert into %s", table)
		}
	}

	indexes, err := createIndexes(ctx, tx, table, ds.Columns)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrapf(err, "store: commit %s", table)
	}

	result := &LoadResult{
		Table:   table,
		Rows:    len(ds.Rows),
		Indexes: indexes,
	}
	if result.NullCounts, err = d.countNulls(ctx, table, ds.Columns); err != nil {
		return nil, err
	}
	if result.Validations, err = d.validate(ctx, table, ds.Columns); err != nil {
		return nil, err
	}
	return result, nil
}

// createStmt builds the typed CREATE TABLE using the clean pass's type
// table, so storage affinity always matches coercion.
func createStmt(table string, cols []string) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quote(c) + " " + sqlType(c)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quote(table), strings.Join(defs, ", "))
}

func insertStmt(table string, cols []string) string {
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

func sqlType(col string) string {
	switch clean.TypeOf(col) {
	case clean.TypeInteger:
		return "INTEGER"
	case clean.TypeReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// quote wraps an identifier; stat columns like "2B" are not bare-word safe.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// indexSpecs are the lookup indexes: each single key column plus the
// composites the query patterns use.
var indexSpecs = []struct {
	suffix string
	cols   []string
}{
	{"year", []string{model.ColYear}},
	{"league", []string{model.ColLeague}},
	{"team", []string{model.ColTeam}},
	{"player", []string{model.ColPlayer}},
	{"statistic", []string{model.ColStatistic}},
	{"year_league", []string{model.ColYear, model.ColLeague}},
	{"year_team", []string{model.ColYear, model.ColTeam}},
	{"year_stat", []string{model.ColYear, model.ColStatistic}},
}

func createIndexes(ctx context.Context, tx *sql.Tx, table string, cols []string) ([]string, error) {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}

	var created []string
	for _, spec := range indexSpecs {
		ok := true
		for _, c := range spec.cols {
			if !present[c] {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		quoted := make([]string, len(spec.cols))
		for i, c := range spec.cols {
			quoted[i] = quote(c)
		}
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			quote("idx_"+table+"_"+spec.suffix), quote(table), strings.Join(quoted, ", "))
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, eris.Wrapf(err, "store: index %s on %s", spec.suffix, table)
		}
		created = append(created, strings.Join(spec.cols, "+"))
	}
	return created, nil
}

func (d *DB) countNulls(ctx context.Context, table string, cols []string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range cols {
		var n int
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IS NULL", quote(table), quote(c))
		if err := d.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "store: null count %s.%s", table, c)
		}
		if n > 0 {
			counts[c] = n
		}
	}
	return counts, nil
}
