package clean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

func testSink(t *testing.T) *sink.Sink {
	t.Helper()
	s, err := sink.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoadCorrections(t *testing.T) {
	yaml := `
corrections:
  - name: move-2008-al-pitching
    kind: relocate
    from_dataset: AL_Player_Hitting_Leaders
    to_dataset: AL_Pitcher_Leaders
    match:
      year: 2008
      statistics: [ERA, Wins, Saves]
  - name: nl-batting-average-decimals
    kind: scale
    dataset: NL_Player_Hitting_Leaders
    match:
      statistic: Batting Average
      value_gt: 1
    divisor: 1000
`
	path := filepath.Join(t.TempDir(), "corrections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	corrections, err := LoadCorrections(path)
	require.NoError(t, err)
	require.Len(t, corrections, 2)
	assert.Equal(t, "relocate", corrections[0].Kind)
	assert.Equal(t, 2008, corrections[0].Match.Year)
	assert.Equal(t, []string{"ERA", "Wins", "Saves"}, corrections[0].Match.Statistics)
	require.NotNil(t, corrections[1].Match.ValueGT)
	assert.Equal(t, 1.0, *corrections[1].Match.ValueGT)
	assert.Equal(t, 1000.0, corrections[1].Divisor)
}

func TestRelocateCorrection(t *testing.T) {
	s := testSink(t)
	cols := []string{"Year", "League", "Statistic", "Player_Name", "Team", "Value"}
	require.NoError(t, s.Write(&sink.Dataset{
		Name:    "AL_Player_Hitting_Leaders",
		Columns: cols,
		Rows: [][]string{
			{"2008", "AL", "Home Runs", "Miguel Cabrera", "Tigers", "37"},
			{"2008", "AL", "ERA", "Cliff Lee", "Indians", "2.54"},
			{"2007", "AL", "ERA", "John Lackey", "Angels", "3.01"},
		},
	}))
	require.NoError(t, s.Write(&sink.Dataset{
		Name:    "AL_Pitcher_Leaders",
		Columns: cols,
		Rows: [][]string{
			{"2008", "AL", "Strikeouts", "A.J. Burnett", "Blue Jays", "231"},
		},
	}))

	backupDir := filepath.Join(s.Dir(), "backup")
	results, err := ApplyCorrections(s, []Correction{{
		Name:        "move-2008-al-pitching",
		Kind:        "relocate",
		FromDataset: "AL_Player_Hitting_Leaders",
		ToDataset:   "AL_Pitcher_Leaders",
		Match:       CorrectionMatch{Year: 2008, Statistics: []string{"ERA", "Wins"}},
	}}, backupDir)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Rows)

	// Only the 2008 ERA row moved; the 2007 one matched the statistic but
	// not the year.
	src, err := s.Load("AL_Player_Hitting_Leaders")
	require.NoError(t, err)
	require.Len(t, src.Rows, 2)
	for _, row := range src.Rows {
		assert.False(t, row[0] == "2008" && row[2] == "ERA")
	}

	dst, err := s.Load("AL_Pitcher_Leaders")
	require.NoError(t, err)
	require.Len(t, dst.Rows, 2)

	// Both touched datasets were backed up first.
	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRelocateExtendsDestinationColumns(t *testing.T) {
	s := testSink(t)
	require.NoError(t, s.Write(&sink.Dataset{
		Name:    "AL_Player_Hitting_Leaders",
		Columns: []string{"Year", "League", "Statistic", "Player_Name", "Team", "Value"},
		Rows: [][]string{
			{"2008", "AL", "ERA", "Cliff Lee", "Indians", "2.54"},
		},
	}))
	// Destination lacks the Player_Name column.
	require.NoError(t, s.Write(&sink.Dataset{
		Name:    "AL_Pitcher_Leaders",
		Columns: []string{"Year", "League", "Statistic", "Team", "Value"},
		Rows: [][]string{
			{"2008", "AL", "Strikeouts", "Blue Jays", "231"},
		},
	}))

	_, err := ApplyCorrections(s, []Correction{{
		Name:        "move-2008-al-pitching",
		Kind:        "relocate",
		FromDataset: "AL_Player_Hitting_Leaders",
		ToDataset:   "AL_Pitcher_Leaders",
		Match:       CorrectionMatch{Year: 2008, Statistics: []string{"ERA"}},
	}}, "")
	require.NoError(t, err)

	dst, err := s.Load("AL_Pitcher_Leaders")
	require.NoError(t, err)
	assert.Equal(t, []string{"Year", "League", "Statistic", "Team", "Value", "Player_Name"}, dst.Columns)
	require.Len(t, dst.Rows, 2)
	// The pre-existing row is padded with a null, the moved one keeps its player.
	assert.Equal(t, "", dst.Rows[0][5])
	assert.Equal(t, "Cliff Lee", dst.Rows[1][5])
}

func TestScaleCorrection(t *testing.T) {
	s := testSink(t)
	require.NoError(t, s.Write(&sink.Dataset{
		Name:    "NL_Player_Hitting_Leaders",
		Columns: []string{"Year", "League", "Statistic", "Player_Name", "Team", "Value"},
		Rows: [][]string{
			{"1968", "NL", "Batting Average", "Pete Rose", "Reds", "335"},
			{"1969", "NL", "Batting Average", "Pete Rose", "Reds", "0.348"},
			{"1968", "NL", "Home Runs", "Willie McCovey", "Giants", "36"},
		},
	}))

	gt := 1.0
	results, err := ApplyCorrections(s, []Correction{{
		Name:    "nl-batting-average-decimals",
		Kind:    "scale",
		Dataset: "NL_Player_Hitting_Leaders",
		Match:   CorrectionMatch{Statistic: "Batting Average", ValueGT: &gt},
		Divisor: 1000,
	}}, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Rows)

	ds, err := s.Load("NL_Player_Hitting_Leaders")
	require.NoError(t, err)
	assert.Equal(t, "0.335", ds.Rows[0][5])
	// Already-decimal averages and other statistics are untouched.
	assert.Equal(t, "0.348", ds.Rows[1][5])
	assert.Equal(t, "36", ds.Rows[2][5])
}

func TestUnknownCorrectionKind(t *testing.T) {
	s := testSink(t)
	_, err := ApplyCorrections(s, []Correction{{Name: "x", Kind: "swap"}}, "")
	assert.Error(t, err)
}
