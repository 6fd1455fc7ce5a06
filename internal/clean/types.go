package clean

// ColumnType is the storage affinity assigned to a dataset column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeReal
)

// integerColumns are counting stats coerced to integers.
var integerColumns = map[string]bool{
	"Year": true, "Wins": true, "Losses": true, "Ties": true,
	"G": true, "AB": true, "R": true, "H": true, "2B": true, "3B": true,
	"HR": true, "RBI": true, "TB": true, "BB": true, "SO": true, "SB": true,
	"CS": true, "W": true, "L": true, "CG": true, "SHO": true, "SV": true,
	"SVO": true, "HA": true, "ER": true, "HBP": true,
}

// realColumns are rate and fractional stats coerced to reals. Leader values
// can be either, so Value is real.
var realColumns = map[string]bool{
	"ERA": true, "AVG": true, "OBP": true, "SLG": true, "OPS": true,
	"WP": true, "BA": true, "PCT": true, "GB": true, "IP": true,
	"Value": true, "Payroll": true,
}

// decimalColumnMarkers flag columns whose values get decimal-format repair.
var decimalColumnMarkers = []string{"AVG", "BA", "ERA", "WP", "OBP", "SLG", "PCT"}

// TypeOf returns the target type for a column name; unknown columns stay
// text.
func TypeOf(col string) ColumnType {
	switch {
	case integerColumns[col]:
		return TypeInteger
	case realColumns[col]:
		return TypeReal
	default:
		return TypeText
	}
}

// IsNumericLike reports whether a column is expected to hold numbers, used
// for the trailing-"?" repair.
func IsNumericLike(col string) bool {
	return TypeOf(col) != TypeText
}
