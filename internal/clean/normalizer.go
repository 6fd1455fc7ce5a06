package clean

import (
	"strconv"
	"strings"

	"github.com/jackie3981/baseball-scrapping/internal/model"
	"github.com/jackie3981/baseball-scrapping/internal/sink"
)

// DataNotKept is the source's "value missing" sentinel player name: the
// almanac shows it for years whose leader data was never recorded.
const DataNotKept = "Data Not Kept"

// CoercionFailure records a value that could not be converted to its target
// type. The original text is left in place.
type CoercionFailure struct {
	Row    int
	Column string
	Value  string
}

// Summary reports what one Normalize call changed.
type Summary struct {
	Dataset            string
	RowsBefore         int
	RowsAfter          int
	EmptyRowsRemoved   int
	DuplicatesRemoved  int
	ArtifactsRepaired  int
	QuestionsStripped  int
	PlaceholdersNulled int
	AsterisksStripped  int
	DecimalsRepaired   int
	ValuesCoerced      int
	SentinelRepairs    int
	CoercionFailures   []CoercionFailure
}

// Changed reports whether the pass altered anything.
func (s *Summary) Changed() bool {
	return s.EmptyRowsRemoved+s.DuplicatesRemoved+s.ArtifactsRepaired+
		s.QuestionsStripped+s.PlaceholdersNulled+s.AsterisksStripped+
		s.DecimalsRepaired+s.ValuesCoerced+s.SentinelRepairs > 0
}

// Normalize repairs a dataset in place and returns what changed. The pass is
// idempotent: running it over its own output changes nothing further.
func Normalize(ds *sink.Dataset) *Summary {
	s := &Summary{Dataset: ds.Name, RowsBefore: len(ds.Rows)}

	dropEmptyRows(ds, s)
	s.DuplicatesRemoved = ds.Dedup()

	for ri, row := range ds.Rows {
		for ci, col := range ds.Columns {
			row[ci] = normalizeField(row[ci], col, ri, s)
		}
		repairSentinel(ds, row, s)
	}

	s.RowsAfter = len(ds.Rows)
	return s
}

// normalizeField applies the field rules in order: trim, artifact collapse,
// placeholder null, asterisk strip on names, "?" strip on numerics, decimal
// repair, then typed coercion.
func normalizeField(v, col string, row int, s *Summary) string {
	trimmed := strings.TrimSpace(v)

	if HasHalfGlyph(trimmed) {
		trimmed = ReplaceHalfGlyphs(trimmed)
		s.ArtifactsRepaired++
	}

	if nulled := NullPlaceholder(trimmed); nulled != trimmed {
		s.PlaceholdersNulled++
		return ""
	}

	if isNameColumn(col) && strings.Contains(trimmed, "*") {
		trimmed = StripAsterisks(trimmed)
		s.AsterisksStripped++
	}

	if IsNumericLike(col) {
		if stripped := StripTrailingQuestion(trimmed); stripped != trimmed {
			trimmed = stripped
			s.QuestionsStripped++
		}
	}

	if isDecimalColumn(col) || TypeOf(col) == TypeReal {
		if repaired := RepairDecimal(trimmed); repaired != trimmed {
			trimmed = repaired
			s.DecimalsRepaired++
		}
	}

	return coerce(trimmed, col, row, s)
}

// coerce converts a value to its column's target type, rewriting it in
// canonical form. On failure the text is kept and the failure recorded,
// never replaced with a guessed default.
func coerce(v, col string, row int, s *Summary) string {
	if v == "" {
		return v
	}
	switch TypeOf(col) {
	case TypeInteger:
		if n, err := strconv.Atoi(v); err == nil {
			canonical := strconv.Itoa(n)
			if canonical != v {
				s.ValuesCoerced++
			}
			return canonical
		}
		// Integral reals ("95.0") still coerce cleanly.
		if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int64(f)) {
			s.ValuesCoerced++
			return strconv.FormatInt(int64(f), 10)
		}
		s.CoercionFailures = append(s.CoercionFailures, CoercionFailure{Row: row, Column: col, Value: v})
		return v
	case TypeReal:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			canonical := strconv.FormatFloat(f, 'f', -1, 64)
			if canonical != v {
				s.ValuesCoerced++
			}
			return canonical
		}
		s.CoercionFailures = append(s.CoercionFailures, CoercionFailure{Row: row, Column: col, Value: v})
		return v
	default:
		return v
	}
}

// repairSentinel enforces the "Data Not Kept" rule: the sentinel player name
// always carries a null value. A populated value there is repaired and
// counted as a warning, not an error.
func repairSentinel(ds *sink.Dataset, row []string, s *Summary) {
	player, ok := getCol(ds, row, model.ColPlayer)
	if !ok || player != DataNotKept {
		return
	}
	if v, ok := getCol(ds, row, model.ColValue); ok && v != "" {
		setCol(ds, row, model.ColValue, "")
		s.SentinelRepairs++
	}
}

func dropEmptyRows(ds *sink.Dataset, s *Summary) {
	kept := ds.Rows[:0]
	for _, row := range ds.Rows {
		empty := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if empty {
			s.EmptyRowsRemoved++
			continue
		}
		kept = append(kept, row)
	}
	ds.Rows = kept
}

func isNameColumn(col string) bool {
	return strings.Contains(col, "Player") ||
		strings.Contains(col, "Name") ||
		strings.Contains(col, "Team")
}

func isDecimalColumn(col string) bool {
	for _, m := range decimalColumnMarkers {
		if strings.Contains(col, m) {
			return true
		}
	}
	return false
}

func getCol(ds *sink.Dataset, row []string, name string) (string, bool) {
	for i, c := range ds.Columns {
		if c == name {
			return row[i], true
		}
	}
	return "", false
}

func setCol(ds *sink.Dataset, row []string, name, v string) {
	for i, c := range ds.Columns {
		if c == name {
			row[i] = v
			return
		}
	}
}
