package extract

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jackie3981/baseball-scrapping/internal/almanac"
	"github.com/jackie3981/baseball-scrapping/internal/model"
)

// splitMarkers are the second-cell texts that signal a split-season layout
// with an extra column after the team name. Only "Final" rows are kept;
// partial-season rows would double-count a team's season.
var splitMarkers = map[string]bool{
	"Final":    true,
	"1st Half": true,
	"2nd Half": true,
	"(a)":      true,
	"(b)":      true,
}

// defaultDivision labels rows before any division header is seen.
const defaultDivision = "Standard"

// Standings extracts team standings from a table. A failure in one row is
// recorded as an issue and that row is skipped; the table continues.
func Standings(t almanac.Table, year int, league string) ([]model.StandingRecord, []RowIssue) {
	var (
		records  []model.StandingRecord
		issues   []RowIssue
		division = defaultDivision
	)

	for i, row := range t.Rows {
		switch classifyRow(row) {
		case RowSkip:
			continue
		case RowDivisionHeader:
			division = row.Cells[0].Text
			continue
		}

		rec, err := standingsRow(row, year, league, division)
		if err != nil {
			issues = append(issues, RowIssue{Row: i, Err: err})
			continue
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records, issues
}

// standingsRow parses one data row. A nil record with nil error means the
// row is a deliberate skip (no team link, exhibition artifact, or a
// partial-season split row).
func standingsRow(row almanac.Row, year int, league, division string) (*model.StandingRecord, error) {
	cells := row.Cells

	// Team identity comes from the first cell's link; linkless rows and
	// All-Star / World Series links are exhibition artifacts.
	team := cells[0].LinkText
	if team == "" {
		return nil, nil
	}
	if strings.Contains(team, "All-Star") || strings.Contains(team, "World Series") {
		return nil, nil
	}

	// Split-season marker in the second cell shifts every later column by
	// one; only the "Final" total survives.
	offset := 0
	if len(cells) > 1 && splitMarkers[cells[1].Text] {
		if cells[1].Text != "Final" {
			return nil, nil
		}
		offset = 1
	}

	rec := model.StandingRecord{
		Year:     year,
		League:   league,
		Division: division,
		Team:     team,
	}

	if len(cells) < 5+offset {
		// Too short to carry a win/loss line; keep the team row as-is.
		return &rec, nil
	}

	var err error
	if rec.Wins, err = parseIntCell(cells[1+offset].Text); err != nil {
		return nil, eris.Wrapf(err, "standings: wins for %s", team)
	}
	if rec.Losses, err = parseIntCell(cells[2+offset].Text); err != nil {
		return nil, eris.Wrapf(err, "standings: losses for %s", team)
	}

	if len(cells) >= 7+offset {
		if err := wideStandings(&rec, cells, offset); err != nil {
			return nil, eris.Wrapf(err, "standings: %s", team)
		}
	} else {
		if rec.WP, err = parseFloatCell(cells[3+offset].Text); err != nil {
			return nil, eris.Wrapf(err, "standings: win pct for %s", team)
		}
		if rec.GB, err = parseGB(cells[4+offset].Text); err != nil {
			return nil, eris.Wrapf(err, "standings: games behind for %s", team)
		}
	}

	if rec.WP != nil && (*rec.WP < 0 || *rec.WP > 1) {
		return nil, eris.Errorf("standings: win pct %v out of range for %s", *rec.WP, team)
	}
	return &rec, nil
}

// wideStandings handles rows wide enough for an optional ties column. No
// header names the column reliably across eras, so the shape of the next
// cell decides: a decimal in [0,1] marks it as win percentage, making the
// candidate a ties count. Otherwise there is no ties column and the
// candidate itself is the win percentage.
func wideStandings(rec *model.StandingRecord, cells []almanac.Cell, offset int) error {
	candidate := strings.TrimSpace(cells[3+offset].Text)
	next := strings.TrimSpace(cells[4+offset].Text)

	nextVal, nextErr := strconv.ParseFloat(next, 64)
	isWP := nextErr == nil && nextVal >= 0 && nextVal <= 1 && strings.Contains(next, ".")

	var err error
	if isWP {
		if candidate != "" && candidate != "0" {
			if rec.Ties, err = parseIntCell(candidate); err != nil {
				return eris.Wrap(err, "ties")
			}
		}
		if rec.WP, err = parseFloatCell(next); err != nil {
			return eris.Wrap(err, "win pct")
		}
		if rec.GB, err = parseGB(cells[5+offset].Text); err != nil {
			return eris.Wrap(err, "games behind")
		}
		if len(cells) >= 7+offset {
			if rec.Payroll, err = parsePayroll(cells[6+offset].Text); err != nil {
				return eris.Wrap(err, "payroll")
			}
		}
		return nil
	}

	if rec.WP, err = parseFloatCell(candidate); err != nil {
		return eris.Wrap(err, "win pct")
	}
	if rec.GB, err = parseGB(next); err != nil {
		return eris.Wrap(err, "games behind")
	}
	if len(cells) >= 6+offset {
		if rec.Payroll, err = parsePayroll(cells[5+offset].Text); err != nil {
			return eris.Wrap(err, "payroll")
		}
	}
	return nil
}
