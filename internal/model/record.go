// Package model defines the typed records produced by extraction and the
// tabular row form the sink persists.
package model

// StatType distinguishes hitting from pitching datasets.
type StatType string

const (
	StatHitting  StatType = "Hitting"
	StatPitching StatType = "Pitching"
)

// Standard column names shared across datasets. These are the key columns
// used for dedup, in fixed precedence order.
const (
	ColYear      = "Year"
	ColLeague    = "League"
	ColDivision  = "Division"
	ColTeam      = "Team"
	ColPlayer    = "Player_Name"
	ColStatistic = "Statistic"
	ColValue     = "Value"
	ColWins      = "Wins"
	ColLosses    = "Losses"
	ColTies      = "Ties"
	ColWP        = "WP"
	ColGB        = "GB"
	ColPayroll   = "Payroll"
)

// KeyColumns is the ordered candidate set for duplicate detection. A dataset's
// actual key is the subset of these present in its header.
var KeyColumns = []string{ColYear, ColLeague, ColTeam, ColPlayer, ColStatistic}

// StandingRecord is one team's win/loss line for a season.
// Nullable fields are pointers; nil means the source table had no value.
type StandingRecord struct {
	Year     int
	League   string
	Division string // "East", "Central", "West", or "Standard"
	Team     string
	Wins     *int
	Losses   *int
	Ties     *int
	WP       *float64
	GB       *float64
	Payroll  *float64
}

// LeaderRecord is one leader entry: a player (or team, for the vertical
// team-review layout) leading one statistic. Value stays raw text until the
// clean pass coerces it.
type LeaderRecord struct {
	Year      int
	League    string
	Statistic string
	Player    string // empty for team-leader tables
	Team      string
	Value     string
}

// TeamStatRecord is one team's full stat line for a season. Stats maps
// column name to value; a key present with a nil value means the source
// table for that season did not carry the column.
type TeamStatRecord struct {
	Year    int
	League  string
	Team    string
	Type    StatType
	Columns []string           // emission order for the stat columns
	Stats   map[string]*string // nil = column absent for this season
}

// Row is the generic tabular form records take on their way into a sink
// dataset. Values align with Columns; the empty string is the null
// representation in CSV form.
type Row struct {
	Columns []string
	Values  []string
}

// Get returns the value of the named column and whether the column exists.
func (r Row) Get(col string) (string, bool) {
	for i, c := range r.Columns {
		if c == col {
			return r.Values[i], true
		}
	}
	return "", false
}

// ToRow converts a StandingRecord to its dataset row.
func (s StandingRecord) ToRow() Row {
	return Row{
		Columns: []string{ColYear, ColLeague, ColDivision, ColTeam, ColWins, ColLosses, ColTies, ColWP, ColGB, ColPayroll},
		Values: []string{
			itoa(s.Year), s.League, s.Division, s.Team,
			intOrEmpty(s.Wins), intOrEmpty(s.Losses), intOrEmpty(s.Ties),
			floatOrEmpty(s.WP), floatOrEmpty(s.GB), floatOrEmpty(s.Payroll),
		},
	}
}

// ToRow converts a LeaderRecord to its dataset row. Team-leader entries
// (no player) omit the Player_Name column so the team-leader datasets keep
// the original three-field shape.
func (l LeaderRecord) ToRow() Row {
	if l.Player == "" {
		return Row{
			Columns: []string{ColYear, ColLeague, ColStatistic, ColTeam, ColValue},
			Values:  []string{itoa(l.Year), l.League, l.Statistic, l.Team, l.Value},
		}
	}
	return Row{
		Columns: []string{ColYear, ColLeague, ColStatistic, ColPlayer, ColTeam, ColValue},
		Values:  []string{itoa(l.Year), l.League, l.Statistic, l.Player, l.Team, l.Value},
	}
}

// ToRow converts a TeamStatRecord to its dataset row. Absent stat columns are
// emitted as empty values so every expected column appears in the header.
func (t TeamStatRecord) ToRow() Row {
	cols := []string{ColYear, ColLeague, ColTeam}
	vals := []string{itoa(t.Year), t.League, t.Team}
	for _, c := range t.Columns {
		cols = append(cols, c)
		if v := t.Stats[c]; v != nil {
			vals = append(vals, *v)
		} else {
			vals = append(vals, "")
		}
	}
	return Row{Columns: cols, Values: vals}
}
