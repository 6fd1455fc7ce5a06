// Package extract turns almanac tables into typed records. One strategy per
// table kind; the classifier picks the strategy from title, subtitle, and
// table shape.
package extract

import (
	"strings"

	"github.com/jackie3981/baseball-scrapping/internal/almanac"
	"github.com/jackie3981/baseball-scrapping/internal/model"
)

// TableKind identifies which extraction strategy applies to a table.
type TableKind int

const (
	KindUnknown TableKind = iota
	KindPlayerLeaders
	KindPitcherLeaders
	KindStandings
	KindTeamLeaders // compact 3-column vertical layout
	KindTeamStats   // wide horizontal per-team layout
)

func (k TableKind) String() string {
	switch k {
	case KindPlayerLeaders:
		return "player_leaders"
	case KindPitcherLeaders:
		return "pitcher_leaders"
	case KindStandings:
		return "standings"
	case KindTeamLeaders:
		return "team_leaders"
	case KindTeamStats:
		return "team_stats"
	default:
		return "unknown"
	}
}

// Classification tags a table with its kind and, where relevant, whether it
// covers hitting or pitching.
type Classification struct {
	Kind TableKind
	Stat model.StatType
}

// Classify decides the extraction strategy for a table. The rule order is
// load-bearing: leader reviews are matched before standings, standings
// before team reviews. Unrecognized tables come back KindUnknown and are
// skipped by the caller. Classify never errors and has no side effects.
func Classify(t almanac.Table) Classification {
	title := t.Title
	subtitle := t.Subtitle

	if strings.Contains(title, "Player Review") || strings.Contains(title, "Pitcher Review") {
		if isPitching(subtitle, title) {
			return Classification{Kind: KindPitcherLeaders, Stat: model.StatPitching}
		}
		return Classification{Kind: KindPlayerLeaders, Stat: model.StatHitting}
	}

	if strings.Contains(title, "Team Standings") || strings.Contains(subtitle, "Team Standings") {
		return Classification{Kind: KindStandings}
	}

	if strings.Contains(title, "Team Review") {
		stat, ok := reviewStat(subtitle)
		if !ok {
			return Classification{Kind: KindUnknown}
		}
		switch n := len(t.HeaderCells()); {
		case n == 3:
			return Classification{Kind: KindTeamLeaders, Stat: stat}
		case n > 10:
			return Classification{Kind: KindTeamStats, Stat: stat}
		}
	}

	return Classification{Kind: KindUnknown}
}

// isPitching disambiguates leader reviews: the subtitle wins when it names
// pitching, otherwise the title decides.
func isPitching(subtitle, title string) bool {
	if strings.Contains(subtitle, "Pitching") || strings.Contains(subtitle, "Pitcher") {
		return true
	}
	if subtitle != "" && strings.Contains(subtitle, "Hitting") {
		return false
	}
	return strings.Contains(title, "Pitcher Review")
}

func reviewStat(subtitle string) (model.StatType, bool) {
	switch {
	case strings.Contains(subtitle, "Hitting"):
		return model.StatHitting, true
	case strings.Contains(subtitle, "Pitching"):
		return model.StatPitching, true
	default:
		return "", false
	}
}
