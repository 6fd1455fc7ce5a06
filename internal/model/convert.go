package model

import "strconv"

func itoa(v int) string {
	return strconv.Itoa(v)
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// IntPtr returns a pointer to v. Convenience for building nullable fields.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// StrPtr returns a pointer to v.
func StrPtr(v string) *string { return &v }
