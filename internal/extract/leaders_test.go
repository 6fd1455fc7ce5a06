package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackie3981/baseball-scrapping/internal/almanac"
)

func statCell(text string) almanac.Cell {
	return almanac.Cell{Text: text, Class: "datacolBlue"}
}

func groupStart(statistic string, player almanac.Cell, team, value string) almanac.Row {
	return almanac.Row{Cells: []almanac.Cell{
		statCell(statistic), player, {Text: team}, {Text: value}, {Text: ""},
	}}
}

func TestLeadersSingleGroup(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		groupStart("Batting Average", almanac.Cell{Text: "Tony Gwynn"}, "Padres", ".394"),
	}}

	records := Leaders(table, 1994, "NL")
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, 1994, r.Year)
	assert.Equal(t, "NL", r.League)
	assert.Equal(t, "Batting Average", r.Statistic)
	assert.Equal(t, "Tony Gwynn", r.Player)
	assert.Equal(t, "Padres", r.Team)
	assert.Equal(t, ".394", r.Value)
}

func TestLeadersCoLeaderPair(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		groupStart("Home Runs", almanac.Cell{Text: "Mickey Mantle"}, "Yankees", "54"),
		{Cells: []almanac.Cell{{Text: "Roger Maris"}, {Text: "Yankees"}}},
	}}

	records := Leaders(table, 1961, "AL")
	require.Len(t, records, 2)
	// The co-leader inherits the open statistic and value.
	assert.Equal(t, "Roger Maris", records[1].Player)
	assert.Equal(t, "Home Runs", records[1].Statistic)
	assert.Equal(t, "54", records[1].Value)
}

func TestLeadersMultiTeamPlayer(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		// Row-span on the player cell marks a leader listed with two teams.
		groupStart("Saves", almanac.Cell{Text: "Lee Smith", RowSpan: 2}, "Cardinals", "46"),
		{Cells: []almanac.Cell{{Text: "Yankees"}}},
	}}

	records := Leaders(table, 1993, "AL")
	require.Len(t, records, 2)
	assert.Equal(t, "Lee Smith", records[0].Player)
	assert.Equal(t, "Cardinals", records[0].Team)
	assert.Equal(t, "Lee Smith", records[1].Player)
	assert.Equal(t, "Yankees", records[1].Team)
	assert.Equal(t, "46", records[1].Value)
}

func TestLeadersSingleWithoutRetainedPlayerIgnored(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		// No row-span: the player is not retained for continuation rows.
		groupStart("Saves", almanac.Cell{Text: "Lee Smith"}, "Cardinals", "46"),
		{Cells: []almanac.Cell{{Text: "Yankees"}}},
	}}

	records := Leaders(table, 1993, "AL")
	require.Len(t, records, 1)
}

func TestLeadersTripleOverridesValue(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		groupStart("Wins", almanac.Cell{Text: "Jack Chesbro"}, "Highlanders", "41"),
		{Cells: []almanac.Cell{{Text: "Cy Young"}, {Text: "Americans"}, {Text: "26"}}},
	}}

	records := Leaders(table, 1904, "AL")
	require.Len(t, records, 2)
	assert.Equal(t, "Cy Young", records[1].Player)
	assert.Equal(t, "26", records[1].Value)
}

func TestLeadersAsteriskStripped(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		groupStart("Batting Average", almanac.Cell{Text: "Ty Cobb *"}, "Tigers", ".420"),
	}}

	records := Leaders(table, 1911, "AL")
	require.Len(t, records, 1)
	assert.Equal(t, "Ty Cobb", records[0].Player)
}

func TestLeadersStateRequiredBeforeContinuations(t *testing.T) {
	// Continuation shapes before any group start carry no context.
	table := almanac.Table{Rows: []almanac.Row{
		{Cells: []almanac.Cell{{Text: "Someone"}, {Text: "Sometown"}}},
		{Cells: []almanac.Cell{{Text: "Elsewhere"}}},
	}}

	records := Leaders(table, 1950, "AL")
	assert.Empty(t, records)
}

func TestTeamLeaders(t *testing.T) {
	table := almanac.Table{Rows: []almanac.Row{
		{Cells: []almanac.Cell{
			{Text: "Statistic", Class: "banner"}, {Text: "Team", Class: "banner"}, {Text: "Value", Class: "banner"},
		}},
		{Cells: []almanac.Cell{statCell("Home Runs"), {Text: "Yankees"}, {Text: "240"}}},
		{Cells: []almanac.Cell{statCell("At Bats"), {Text: "Red Sox"}, {Text: "5,640"}}},
		// Missing value: ignored.
		{Cells: []almanac.Cell{statCell("Runs"), {Text: "Blue Jays"}, {Text: ""}}},
	}}

	records := TeamLeaders(table, 2019, "AL")
	require.Len(t, records, 2)
	assert.Equal(t, "Home Runs", records[0].Statistic)
	assert.Equal(t, "Yankees", records[0].Team)
	assert.Empty(t, records[0].Player)
	// Thousands separators are stripped.
	assert.Equal(t, "5640", records[1].Value)
}
