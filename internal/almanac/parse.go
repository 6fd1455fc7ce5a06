package almanac

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// ParseSeasonPage parses a year page into its ba-table blocks.
func ParseSeasonPage(r io.Reader) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "almanac: parse season page")
	}

	var tables []Table
	doc.Find("table.ba-table, div.ba-table").Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, parseTable(sel))
	})
	return tables, nil
}

func parseTable(sel *goquery.Selection) Table {
	t := Table{
		Title:    strings.TrimSpace(sel.Find("h2").First().Text()),
		Subtitle: strings.TrimSpace(sel.Find("td.header p").First().Text()),
	}

	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row := Row{Class: tr.AttrOr("class", "")}
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row.Cells = append(row.Cells, parseCell(td))
		})
		t.Rows = append(t.Rows, row)
	})
	return t
}

func parseCell(td *goquery.Selection) Cell {
	c := Cell{
		Text:  strings.TrimSpace(td.Text()),
		Class: td.AttrOr("class", ""),
	}
	if rs := td.AttrOr("rowspan", ""); rs != "" {
		if n, err := strconv.Atoi(rs); err == nil {
			c.RowSpan = n
		}
	}
	if a := td.Find("a").First(); a.Length() > 0 {
		c.LinkText = strings.TrimSpace(a.Text())
		c.LinkHref = a.AttrOr("href", "")
	}
	return c
}

// ParseYearMenu parses the year-by-year menu page into leagues and their
// seasons. Placeholder "0000" cells and greyed-out (inactive) cells are
// skipped, as is the page's own "Year-by-Year Baseball History" banner.
func ParseYearMenu(r io.Reader) (map[string][]Season, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "almanac: parse year menu")
	}

	leagues := make(map[string][]Season)
	doc.Find("td.banner").Each(func(_ int, banner *goquery.Selection) {
		name := strings.TrimSpace(banner.Text())
		if name == "" || name == "Year-by-Year Baseball History" {
			return
		}
		if _, seen := leagues[name]; seen {
			return
		}

		var seasons []Season
		sub := banner.Closest("tr").NextFiltered("tr").Find("table.ba-sub")
		sub.Find("td").Each(func(_ int, td *goquery.Selection) {
			text := strings.TrimSpace(td.Text())
			if text == "" || text == "0000" {
				return
			}
			if hasClassToken(td.AttrOr("class", ""), "grey") {
				return
			}
			seasons = append(seasons, Season{
				Year: text,
				URL:  td.Find("a").First().AttrOr("href", ""),
			})
		})
		leagues[name] = seasons
	})
	return leagues, nil
}

func hasClassToken(class, tag string) bool {
	for _, t := range strings.Fields(class) {
		if t == tag {
			return true
		}
	}
	return false
}
