package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jackie3981/baseball-scrapping/internal/clean"
	"github.com/jackie3981/baseball-scrapping/internal/model"
)

// validate runs the known-data checks after a table is loaded. Findings are
// reported, never fatal: the data still loads, the report flags the surprise.
func (d *DB) validate(ctx context.Context, table string, cols []string) ([]string, error) {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}

	var findings []string

	// Rows whose player is the not-kept sentinel must carry a NULL value;
	// a non-null value there means the cleaning pass missed one.
	if present[model.ColPlayer] && present[model.ColValue] {
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ? AND %s IS NOT NULL",
			quote(table), quote(model.ColPlayer), quote(model.ColValue))
		var n int
		if err := d.db.QueryRowContext(ctx, q, clean.DataNotKept).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "store: sentinel check %s", table)
		}
		if n > 0 {
			findings = append(findings, fmt.Sprintf("%d %q rows still carry a value", n, clean.DataNotKept))
		}
	}

	switch {
	case strings.HasSuffix(table, "_Team_Pitching_Complete"):
		more, err := d.validatePitchingComplete(ctx, table, present)
		if err != nil {
			return nil, err
		}
		findings = append(findings, more...)
	case strings.HasSuffix(table, "_Team_Standings"):
		more, err := d.validateStandings(ctx, table, present)
		if err != nil {
			return nil, err
		}
		findings = append(findings, more...)
	}
	return findings, nil
}

// validatePitchingComplete confirms the column gaps the 2002-2004 source
// pages are known to have. Those nulls are expected; their absence means the
// source changed shape.
func (d *DB) validatePitchingComplete(ctx context.Context, table string, present map[string]bool) ([]string, error) {
	checks := []struct {
		year   int
		league string
		col    string
	}{
		{2002, "", "G"},
		{2003, "", "SVO"},
		{2004, "AL", "G"},
		{2004, "AL", "SVO"},
	}

	var findings []string
	for _, c := range checks {
		if !present[c.col] {
			continue
		}
		args := []any{c.year}
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ? AND %s IS NOT NULL",
			quote(table), quote(model.ColYear), quote(c.col))
		if c.league != "" {
			if !present[model.ColLeague] {
				continue
			}
			q += fmt.Sprintf(" AND %s = ?", quote(model.ColLeague))
			args = append(args, c.league)
		}
		var n int
		if err := d.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "store: pitching check %s", table)
		}
		if n > 0 {
			scope := fmt.Sprintf("%d", c.year)
			if c.league != "" {
				scope = fmt.Sprintf("%d %s", c.year, c.league)
			}
			findings = append(findings, fmt.Sprintf("%s: %d rows have non-null %s, expected all null", scope, n, c.col))
		}
	}
	return findings, nil
}

// validateStandings confirms the 2013 Cubs games-behind value survived
// cleaning; that cell is a known glyph casualty on the source page.
func (d *DB) validateStandings(ctx context.Context, table string, present map[string]bool) ([]string, error) {
	if !strings.HasPrefix(table, "NL_") {
		return nil, nil
	}
	if !present[model.ColYear] || !present[model.ColTeam] || !present[model.ColGB] {
		return nil, nil
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = 2013 AND %s = ?",
		quote(model.ColGB), quote(table), quote(model.ColYear), quote(model.ColTeam))
	var gb sql.NullFloat64
	err := d.db.QueryRowContext(ctx, q, "Cubs").Scan(&gb)
	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, eris.Wrapf(err, "store: standings check %s", table)
	}
	if !gb.Valid {
		return []string{"2013 Cubs games-behind is null, glyph repair did not apply"}, nil
	}
	return nil, nil
}
