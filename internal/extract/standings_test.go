package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackie3981/baseball-scrapping/internal/almanac"
)

func teamCell(name string) almanac.Cell {
	return almanac.Cell{Text: name, LinkText: name, LinkHref: "/teams/" + name + ".shtml"}
}

func textCells(texts ...string) []almanac.Cell {
	cells := make([]almanac.Cell, len(texts))
	for i, t := range texts {
		cells[i] = almanac.Cell{Text: t}
	}
	return cells
}

func standingsRowOf(team string, rest ...string) almanac.Row {
	return almanac.Row{Cells: append([]almanac.Cell{teamCell(team)}, textCells(rest...)...)}
}

func TestStandingsBasicRow(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		standingsRowOf("Yankees", "95", "67", "0.586", "--"),
	}}

	records, issues := Standings(table, 1977, "AL")
	require.Empty(t, issues)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 1977, r.Year)
	assert.Equal(t, "AL", r.League)
	assert.Equal(t, "Standard", r.Division)
	assert.Equal(t, "Yankees", r.Team)
	require.NotNil(t, r.Wins)
	assert.Equal(t, 95, *r.Wins)
	require.NotNil(t, r.Losses)
	assert.Equal(t, 67, *r.Losses)
	assert.Nil(t, r.Ties)
	require.NotNil(t, r.WP)
	assert.InDelta(t, 0.586, *r.WP, 0.0001)
	require.NotNil(t, r.GB)
	assert.Zero(t, *r.GB) // "--" means leading, not missing
}

func TestStandingsDivisions(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		{Cells: []almanac.Cell{{Text: "East", RowSpan: 5}}},
		standingsRowOf("Orioles", "97", "65", "0.599", "--"),
		{Cells: []almanac.Cell{{Text: "West", RowSpan: 5}}},
		standingsRowOf("Royals", "102", "60", "0.630", "--"),
	}}

	records, issues := Standings(table, 1977, "AL")
	require.Empty(t, issues)
	require.Len(t, records, 2)
	assert.Equal(t, "East", records[0].Division)
	assert.Equal(t, "West", records[1].Division)
}

func TestStandingsTiesHeuristic(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		// Ties column present and non-zero: next cell is a decimal in [0,1].
		standingsRowOf("Tigers", "88", "58", "3", "0.603", "--", "$82,000,000"),
		// Ties column present but "0": stays null.
		standingsRowOf("Twins", "85", "62", "0", "0.578", "3.5", "$71,439,500"),
		// No ties column: the candidate itself is the win percentage.
		standingsRowOf("Royals", "76", "86", "0.469", "14", "$47,294,000", "x"),
	}}

	records, issues := Standings(table, 2004, "AL")
	require.Empty(t, issues)
	require.Len(t, records, 3)

	tigers := records[0]
	require.NotNil(t, tigers.Ties)
	assert.Equal(t, 3, *tigers.Ties)
	assert.InDelta(t, 0.603, *tigers.WP, 0.0001)
	assert.Zero(t, *tigers.GB)
	require.NotNil(t, tigers.Payroll)
	assert.InDelta(t, 82000000, *tigers.Payroll, 0.5)

	twins := records[1]
	assert.Nil(t, twins.Ties)
	assert.InDelta(t, 0.578, *twins.WP, 0.0001)
	assert.InDelta(t, 3.5, *twins.GB, 0.0001)

	royals := records[2]
	assert.Nil(t, royals.Ties)
	assert.InDelta(t, 0.469, *royals.WP, 0.0001)
	assert.InDelta(t, 14, *royals.GB, 0.0001)
	require.NotNil(t, royals.Payroll)
	assert.InDelta(t, 47294000, *royals.Payroll, 0.5)
}

func TestStandingsSplitSeason(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		standingsRowOf("Dodgers", "1st Half", "36", "21", "0.632", "--"),
		standingsRowOf("Dodgers", "2nd Half", "27", "26", "0.509", "6"),
		standingsRowOf("Dodgers", "Final", "63", "47", "0.573", "--"),
	}}

	records, issues := Standings(table, 1981, "NL")
	require.Empty(t, issues)
	// Only the Final total survives; partial halves would double-count.
	require.Len(t, records, 1)
	assert.Equal(t, 63, *records[0].Wins)
	assert.Equal(t, 47, *records[0].Losses)
}

func TestStandingsGBRepairs(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		standingsRowOf("Cubs", "80", "82", "0.494", "12Â½"),
		standingsRowOf("Mets", "77", "84", "0.478", "15,5"),
	}}

	records, issues := Standings(table, 1971, "NL")
	require.Empty(t, issues)
	require.Len(t, records, 2)
	assert.InDelta(t, 12.5, *records[0].GB, 0.0001)
	assert.InDelta(t, 15.5, *records[1].GB, 0.0001)
}

func TestStandingsSkips(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		{Cells: []almanac.Cell{{Text: "TEAM", Class: "banner"}, {Text: "W", Class: "banner"}}},
		// No link: not a team row.
		{Cells: textCells("Totals", "780", "776", "", "")},
		standingsRowOf("1933 All-Star Game", "x", "y", "z", "w"),
		standingsRowOf("Senators", "99", "53", "0.651", "--"),
	}}

	records, issues := Standings(table, 1933, "AL")
	require.Empty(t, issues)
	require.Len(t, records, 1)
	assert.Equal(t, "Senators", records[0].Team)
}

func TestStandingsShortRowKeepsTeam(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		standingsRowOf("Resolutes", "?"),
	}}

	records, issues := Standings(table, 1873, "NL")
	require.Empty(t, issues)
	require.Len(t, records, 1)
	assert.Equal(t, "Resolutes", records[0].Team)
	assert.Nil(t, records[0].Wins)
	assert.Nil(t, records[0].WP)
}

func TestStandingsBadCellIsIssue(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		standingsRowOf("Braves", "ninety", "67", "0.586", "--"),
		standingsRowOf("Giants", "90", "72", "0.556", "5"),
	}}

	records, issues := Standings(table, 1993, "NL")
	require.Len(t, issues, 1)
	assert.Error(t, issues[0].Err)
	// The bad row is dropped; the table continues.
	require.Len(t, records, 1)
	assert.Equal(t, "Giants", records[0].Team)
}

func TestStandingsWPOutOfRange(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		standingsRowOf("Reds", "90", "72", "5.560", "5"),
	}}

	records, issues := Standings(table, 1993, "NL")
	assert.Empty(t, records)
	require.Len(t, issues, 1)
}
