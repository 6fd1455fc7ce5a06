// Package clean repairs extracted records: encoding artifacts, placeholder
// values, and type drift. It runs as an independent second pass over sink
// datasets and is idempotent; its field rules are also reused by extractors
// that must emit typed values.
package clean

import "strings"

// halfGlyphs are the known mangled encodings of the "½" glyph, longest
// first so nested artifacts collapse in one pass.
var halfGlyphs = []string{"Ãƒâ€šÃ‚Â½", "Ã‚Â½", "Â½", "½"}

// HasHalfGlyph reports whether s contains a known half-game artifact.
func HasHalfGlyph(s string) bool {
	for _, g := range halfGlyphs {
		if strings.Contains(s, g) {
			return true
		}
	}
	return false
}

// ReplaceHalfGlyphs collapses every half-game artifact to the literal ".5"
// suffix, so "2" followed by an artifact becomes "2.5".
func ReplaceHalfGlyphs(s string) string {
	for _, g := range halfGlyphs {
		s = strings.ReplaceAll(s, g, ".5")
	}
	return s
}

// StripTrailingQuestion removes a trailing "?" from a numeric-like value
// ("6?" → "6").
func StripTrailingQuestion(s string) string {
	if strings.HasSuffix(s, "?") {
		return strings.TrimSpace(strings.TrimSuffix(s, "?"))
	}
	return s
}

// RepairDecimal standardizes decimal quirks: a value beginning with ","
// becomes a leading "." (",528" → ".528"), and a value beginning with "."
// gains a leading zero (".426" → "0.426").
func RepairDecimal(s string) string {
	if strings.HasPrefix(s, ",") && len(s) > 1 {
		s = "." + s[1:]
	}
	if strings.HasPrefix(s, ".") && len(s) > 1 {
		s = "0" + s
	}
	return s
}

// StripAsterisks removes asterisk markup from a name-like value.
func StripAsterisks(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}

// NullPlaceholder maps the literal "--" placeholder (after trimming) to the
// empty (null) value; anything else passes through trimmed.
func NullPlaceholder(s string) string {
	s = strings.TrimSpace(s)
	if s == "--" {
		return ""
	}
	return s
}
