package extract

import "github.com/jackie3981/baseball-scrapping/internal/almanac"

// RowKind is the structural classification of one table row, computed once
// per row from class tags, row-span, and cell count. Extractors branch on
// the kind instead of re-inspecting raw attributes.
type RowKind int

const (
	// RowSkip covers empty rows, banner/header rows, and greyed-out rows.
	RowSkip RowKind = iota
	// RowDivisionHeader is a standings division label spanning several rows.
	RowDivisionHeader
	// RowDataStart opens a leader group: >=5 cells with a statistic-tagged
	// first cell.
	RowDataStart
	// RowDataPair is a 2-cell co-leader row inside an open group.
	RowDataPair
	// RowDataSingle is a 1-cell continuation-team row inside an open group.
	RowDataSingle
	// RowDataTriple is a self-contained (player, team, value) row.
	RowDataTriple
	// RowData is any other data row (standings and team-stat rows).
	RowData
)

// statisticClass tags the first cell of rows that carry a statistic label.
const statisticClass = "datacolBlue"

var divisionLabels = map[string]bool{"East": true, "Central": true, "West": true}

// classifyRow computes the RowKind from structural predicates alone; it
// never consults extractor state.
func classifyRow(r almanac.Row) RowKind {
	if len(r.Cells) == 0 {
		return RowSkip
	}
	first := r.Cells[0]
	if first.HasClass("grey") || r.HasClass("grey") {
		return RowSkip
	}
	if first.HasClass("banner") || first.HasClass("header") {
		return RowSkip
	}
	if first.RowSpan > 1 && divisionLabels[first.Text] {
		return RowDivisionHeader
	}
	switch {
	case len(r.Cells) >= 5 && first.HasClass(statisticClass):
		return RowDataStart
	case len(r.Cells) == 1:
		return RowDataSingle
	case len(r.Cells) == 2:
		return RowDataPair
	case len(r.Cells) == 3:
		return RowDataTriple
	}
	return RowData
}
