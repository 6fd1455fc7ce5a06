// Package almanac models baseball-almanac year pages as tables of rows and
// cells, and fetches and parses them. Extractors consume only the types in
// this package; the DOM never leaks past it.
package almanac

import "strings"

// Cell is one table cell with the structural attributes extraction cares
// about: trimmed text, class tags, an optional link, and a row-span count.
type Cell struct {
	Text     string
	Class    string
	LinkText string
	LinkHref string
	RowSpan  int
}

// HasClass reports whether the cell's class attribute contains tag as a
// whitespace-separated token.
func (c Cell) HasClass(tag string) bool {
	for _, t := range strings.Fields(c.Class) {
		if t == tag {
			return true
		}
	}
	return false
}

// Row is an ordered list of cells plus the row's own class attribute.
type Row struct {
	Cells []Cell
	Class string
}

// HasClass reports whether the row's class attribute contains tag.
func (r Row) HasClass(tag string) bool {
	for _, t := range strings.Fields(r.Class) {
		if t == tag {
			return true
		}
	}
	return false
}

// Table is one ba-table block: a title (the h2 heading), an optional
// subtitle (the header paragraph), and the ordered rows.
type Table struct {
	Title    string
	Subtitle string
	Rows     []Row
}

// HeaderCells returns the cells of the first banner row, used to read column
// labels and to size team-review tables. Nil when the table has no banner row.
func (t Table) HeaderCells() []Cell {
	for _, r := range t.Rows {
		if len(r.Cells) > 0 && r.Cells[0].HasClass("banner") {
			return r.Cells
		}
	}
	return nil
}

// Season is one year entry for a league on the year menu.
type Season struct {
	Year string
	URL  string
}
