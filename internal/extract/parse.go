package extract

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jackie3981/baseball-scrapping/internal/clean"
)

// RowIssue records a row that failed to parse. The row is skipped; the
// table continues.
type RowIssue struct {
	Row int
	Err error
}

// parseIntCell parses a non-negative integer cell. Empty cells are null.
// A trailing "?" (source typo) is stripped before parsing.
func parseIntCell(s string) (*int, error) {
	s = clean.StripTrailingQuestion(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: integer cell %q", s)
	}
	if v < 0 {
		return nil, eris.Errorf("extract: negative count %d", v)
	}
	return &v, nil
}

// parseFloatCell parses a real-valued cell. Empty cells are null. Leading
// "." and "," decimal quirks are repaired first.
func parseFloatCell(s string) (*float64, error) {
	s = clean.RepairDecimal(clean.StripTrailingQuestion(strings.TrimSpace(s)))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: numeric cell %q", s)
	}
	return &v, nil
}

// parseGB repairs and parses a games-behind cell: "--" means zero, mangled
// half-game glyphs become a ".5" suffix, a comma decimal separator becomes a
// period. A cell that reduces to nothing is null, never zero.
func parseGB(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "--":
		s = "0"
	case clean.HasHalfGlyph(s):
		s = clean.ReplaceHalfGlyphs(s)
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}
	return parseFloatCell(s)
}

// parsePayroll recognizes a payroll cell only by its currency prefix and
// strips the marker and digit-group separators before parsing.
func parsePayroll(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "$") {
		return nil, nil
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return parseFloatCell(s)
}

// stripCommas drops thousands separators from a stat value.
func stripCommas(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// stripAsterisks removes leader markup from a player name.
func stripAsterisks(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}
