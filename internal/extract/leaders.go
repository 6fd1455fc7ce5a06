package extract

import (
	"github.com/jackie3981/baseball-scrapping/internal/almanac"
	"github.com/jackie3981/baseball-scrapping/internal/model"
)

// leaderState is the group context threaded through the leader fold. The
// source layout states the statistic, leading value, and (for tied leaders)
// the player once per group; later rows carry only what differs.
type leaderState struct {
	statistic string
	value     string
	player    string // retained only for multi-team (row-span > 1) leaders
}

// Leaders extracts ranked leader records from a player or pitcher review
// table. The fold keeps the grouping state explicit: each row maps
// (state, row) to (state, emitted records).
func Leaders(t almanac.Table, year int, league string) []model.LeaderRecord {
	var (
		records []model.LeaderRecord
		state   leaderState
	)
	for _, row := range t.Rows {
		var emitted []model.LeaderRecord
		state, emitted = leaderStep(state, row, year, league)
		records = append(records, emitted...)
	}
	return records
}

// leaderStep advances the fold by one row. Rows whose shape matches none of
// the four group patterns are ignored.
func leaderStep(st leaderState, row almanac.Row, year int, league string) (leaderState, []model.LeaderRecord) {
	mk := func(statistic, player, team, value string) model.LeaderRecord {
		return model.LeaderRecord{
			Year:      year,
			League:    league,
			Statistic: statistic,
			Player:    player,
			Team:      team,
			Value:     value,
		}
	}

	switch classifyRow(row) {
	case RowDataStart:
		cells := row.Cells
		statistic := cells[0].Text
		player := stripAsterisks(cells[1].Text)
		team := cells[2].Text
		value := cells[3].Text

		st.statistic = statistic
		st.value = value
		// A row-span on the player cell marks a leader listed with several
		// teams; keep the name so 1-cell rows can attach to it.
		if cells[1].RowSpan > 1 {
			st.player = player
		} else {
			st.player = ""
		}
		return st, []model.LeaderRecord{mk(statistic, player, team, value)}

	case RowDataPair:
		// Co-leader sharing the open statistic and value.
		if st.statistic == "" || st.value == "" {
			return st, nil
		}
		player := stripAsterisks(row.Cells[0].Text)
		return st, []model.LeaderRecord{mk(st.statistic, player, row.Cells[1].Text, st.value)}

	case RowDataSingle:
		// Another team for the retained multi-team leader.
		if st.player == "" || st.statistic == "" {
			return st, nil
		}
		return st, []model.LeaderRecord{mk(st.statistic, st.player, row.Cells[0].Text, st.value)}

	case RowDataTriple:
		// Self-contained entry overriding the shared value.
		if st.statistic == "" {
			return st, nil
		}
		player := stripAsterisks(row.Cells[0].Text)
		return st, []model.LeaderRecord{mk(st.statistic, player, row.Cells[1].Text, row.Cells[2].Text)}
	}

	return st, nil
}

// TeamLeaders extracts the compact vertical team-review layout: one
// (statistic, team, value) triple per data row. Thousands separators are
// stripped from values; rows missing any of the three fields are ignored.
func TeamLeaders(t almanac.Table, year int, league string) []model.LeaderRecord {
	var records []model.LeaderRecord
	for _, row := range t.Rows {
		kind := classifyRow(row)
		if kind == RowSkip || len(row.Cells) < 3 || !row.Cells[0].HasClass(statisticClass) {
			continue
		}
		statistic := row.Cells[0].Text
		team := row.Cells[1].Text
		value := stripCommas(row.Cells[2].Text)
		if statistic == "" || team == "" || value == "" {
			continue
		}
		records = append(records, model.LeaderRecord{
			Year:      year,
			League:    league,
			Statistic: statistic,
			Team:      team,
			Value:     value,
		})
	}
	return records
}
