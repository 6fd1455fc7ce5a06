package extract

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jackie3981/baseball-scrapping/internal/almanac"
	"github.com/jackie3981/baseball-scrapping/internal/model"
)

// TeamStats extracts the wide per-team stat layout. Column labels come from
// the banner row; for era-overridden seasons the fixed target set and
// synonym table decide the mapping instead of raw position.
func TeamStats(t almanac.Table, year int, league string, stat model.StatType) ([]model.TeamStatRecord, []RowIssue) {
	headers := headerLabels(t)
	if len(headers) == 0 {
		// A review table without a banner row has nothing to map.
		return nil, []RowIssue{{Row: 0, Err: eris.New("team stats: no banner row")}}
	}

	era, hasEra := lookupEra(year, stat)

	var (
		records []model.TeamStatRecord
		issues  []RowIssue
	)
	for i, row := range t.Rows {
		if classifyRow(row) == RowSkip || len(row.Cells) < 3 {
			continue
		}
		team := teamName(row.Cells[0])
		if team == "" || isExhibition(team) {
			continue
		}

		rec := model.TeamStatRecord{
			Year:   year,
			League: league,
			Team:   team,
			Type:   stat,
			Stats:  make(map[string]*string),
		}
		if hasEra {
			mapEraColumns(&rec, row.Cells, headers, era)
		} else {
			mapPositionalColumns(&rec, row.Cells, headers)
		}
		if len(rec.Columns) == 0 {
			issues = append(issues, RowIssue{Row: i, Err: eris.Errorf("team stats: no columns mapped for %s", team)})
			continue
		}
		records = append(records, rec)
	}
	return records, issues
}

// headerLabels reads the non-empty banner-row labels in order.
func headerLabels(t almanac.Table) []string {
	var labels []string
	for _, c := range t.HeaderCells() {
		if c.Text != "" {
			labels = append(labels, c.Text)
		}
	}
	return labels
}

// mapPositionalColumns is the general case: cell i maps to header label i.
// Labels beyond the cell count and cells beyond the label count are dropped.
// The team label itself is skipped; team identity is already set.
func mapPositionalColumns(rec *model.TeamStatRecord, cells []almanac.Cell, headers []string) {
	n := min(len(cells), len(headers))
	for i := 0; i < n; i++ {
		label := headers[i]
		if strings.EqualFold(label, "TEAM") {
			continue
		}
		rec.Columns = append(rec.Columns, label)
		rec.Stats[label] = model.StrPtr(stripCommas(cells[i].Text))
	}
}

// mapEraColumns matches by translated label: each target column is located
// in the translated header, and a target missing from the header stays nil
// for every row of the table. That is an expected condition for these
// seasons, not a defect.
func mapEraColumns(rec *model.TeamStatRecord, cells []almanac.Cell, headers []string, era eraRule) {
	index := make(map[string]int, len(headers))
	for i, label := range headers {
		index[era.translate(label)] = i
	}
	for _, target := range era.Targets {
		if target == "TEAM" {
			continue
		}
		rec.Columns = append(rec.Columns, target)
		if idx, ok := index[target]; ok && idx < len(cells) {
			rec.Stats[target] = model.StrPtr(stripCommas(cells[idx].Text))
		} else {
			rec.Stats[target] = nil
		}
	}
}

// teamName prefers the first cell's link text, falling back to plain text.
func teamName(c almanac.Cell) string {
	if c.LinkText != "" {
		return c.LinkText
	}
	return c.Text
}

func isExhibition(team string) bool {
	return strings.Contains(team, "All-Star") ||
		strings.Contains(team, "World Series") ||
		strings.Contains(team, "Seasonal Events")
}
