package extract

import "github.com/jackie3981/baseball-scrapping/internal/model"

// eraRule fixes the target column set for seasons whose source tables omit
// or reorder columns relative to the general case. Header labels are first
// translated through the synonym table, then matched by label rather than
// position. Adding a newly discovered quirky season is a data change here,
// not a logic change.
type eraRule struct {
	FromYear int
	ToYear   int
	Stat     model.StatType
	// Targets is the full expected column list, in emission order. A target
	// absent from the translated header is stored null for every row.
	Targets []string
	// Synonyms translate a season's raw header label to its target name.
	Synonyms map[string]string
}

var eraRules = []eraRule{
	{
		// Pitching tables in 2002-2004 drop or rename columns: a bare "H"
		// means hits-allowed, a bare "SH" means shutouts.
		FromYear: 2002,
		ToYear:   2004,
		Stat:     model.StatPitching,
		Targets: []string{
			"TEAM", "W", "L", "ERA", "G", "CG", "SHO", "SV", "SVO",
			"IP", "HA", "R", "ER", "HR", "HBP", "BB", "SO",
		},
		Synonyms: map[string]string{
			"H":    "HA",
			"SH":   "SHO",
			"Team": "TEAM",
			"TEAM": "TEAM",
		},
	},
}

// lookupEra returns the era rule covering a (year, stat type), if any.
func lookupEra(year int, stat model.StatType) (eraRule, bool) {
	for _, r := range eraRules {
		if r.Stat == stat && year >= r.FromYear && year <= r.ToYear {
			return r, true
		}
	}
	return eraRule{}, false
}

// translate maps one raw header label through the rule's synonym table.
func (r eraRule) translate(label string) string {
	if t, ok := r.Synonyms[label]; ok {
		return t
	}
	return label
}
