package almanac

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seasonPageHTML = `
<html><body>
<div class="ba-table">
  <h2>1927 American League Team Standings</h2>
  <table>
    <tr><td class="header" colspan="5"><p>Team Standings</p></td></tr>
    <tr>
      <td class="banner">TEAM</td><td class="banner">W</td>
      <td class="banner">L</td><td class="banner">WP</td><td class="banner">GB</td>
    </tr>
    <tr>
      <td class="datacolBox"><a href="/teams/yankees.shtml">Yankees</a></td>
      <td>110</td><td>44</td><td>.714</td><td>--</td>
    </tr>
  </table>
</div>
<div class="ba-table">
  <h2>1927 American League Player Review</h2>
  <table>
    <tr><td class="header"><p>Hitting Statistics</p></td></tr>
    <tr>
      <td class="datacolBlue" rowspan="2">Home Runs</td>
      <td rowspan="2">Babe Ruth</td><td>Yankees</td><td>60</td><td></td>
    </tr>
  </table>
</div>
</body></html>`

func TestParseSeasonPage(t *testing.T) {
	tables, err := ParseSeasonPage(strings.NewReader(seasonPageHTML))
	require.NoError(t, err)
	require.Len(t, tables, 2)

	standings := tables[0]
	assert.Equal(t, "1927 American League Team Standings", standings.Title)
	assert.Equal(t, "Team Standings", standings.Subtitle)

	header := standings.HeaderCells()
	require.Len(t, header, 5)
	assert.Equal(t, "TEAM", header[0].Text)

	// Data row: link text and href captured, text trimmed.
	var data Row
	for _, r := range standings.Rows {
		if len(r.Cells) > 0 && r.Cells[0].LinkText != "" {
			data = r
		}
	}
	require.Len(t, data.Cells, 5)
	assert.Equal(t, "Yankees", data.Cells[0].LinkText)
	assert.Equal(t, "/teams/yankees.shtml", data.Cells[0].LinkHref)
	assert.Equal(t, "110", data.Cells[1].Text)

	leaders := tables[1]
	assert.Equal(t, "Hitting Statistics", leaders.Subtitle)
	var leaderRow Row
	for _, r := range leaders.Rows {
		if len(r.Cells) > 0 && r.Cells[0].HasClass("datacolBlue") {
			leaderRow = r
		}
	}
	require.NotEmpty(t, leaderRow.Cells)
	assert.Equal(t, 2, leaderRow.Cells[0].RowSpan)
	assert.Equal(t, 2, leaderRow.Cells[1].RowSpan)
	assert.Equal(t, "Babe Ruth", leaderRow.Cells[1].Text)
}

const yearMenuHTML = `
<html><body>
<table>
<tr><td class="banner">Year-by-Year Baseball History</td></tr>
</table>
<table>
<tr><td class="banner">The History of the American League From 1901 to 2025</td></tr>
<tr><td>
  <table class="ba-sub">
    <tr>
      <td><a href="/yearly/yr1901a.shtml">1901</a></td>
      <td><a href="/yearly/yr1902a.shtml">1902</a></td>
      <td class="grey">1903</td>
      <td>0000</td>
    </tr>
  </table>
</td></tr>
<tr><td class="banner">The History of the National League From 1876 to 2025</td></tr>
<tr><td>
  <table class="ba-sub">
    <tr><td><a href="/yearly/yr1876n.shtml">1876</a></td></tr>
  </table>
</td></tr>
</table>
</body></html>`

func TestParseYearMenu(t *testing.T) {
	leagues, err := ParseYearMenu(strings.NewReader(yearMenuHTML))
	require.NoError(t, err)

	// The page banner is not a league; leagues key by their full banner.
	assert.NotContains(t, leagues, "Year-by-Year Baseball History")

	al := leagues["The History of the American League From 1901 to 2025"]
	require.Len(t, al, 2, "greyed-out and placeholder years are skipped")
	assert.Equal(t, "1901", al[0].Year)
	assert.Equal(t, "/yearly/yr1901a.shtml", al[0].URL)
	assert.Equal(t, "1902", al[1].Year)

	nl := leagues["The History of the National League From 1876 to 2025"]
	require.Len(t, nl, 1)
	assert.Equal(t, "1876", nl[0].Year)
}

func TestCellHasClass(t *testing.T) {
	c := Cell{Class: "datacolBlue bold"}
	assert.True(t, c.HasClass("datacolBlue"))
	assert.True(t, c.HasClass("bold"))
	assert.False(t, c.HasClass("data"))
	assert.False(t, Cell{}.HasClass("datacolBlue"))
}
