// Package goquery parses HTML tables into metro rows using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/metro"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTableSelector matches the station list tables of the page: the
// underground, monorail and ring line tables share one column layout.
const DefaultTableSelector = "table.standard.sortable"

var _ metro.RowParser = (*TableParser)(nil)

// TableParser parses the rows of the tables matched by Selector.
type TableParser struct {
	Selector string
}

// NewTableParser creates a new TableParser using DefaultTableSelector.
func NewTableParser() *TableParser {
	return &TableParser{Selector: DefaultTableSelector}
}

// ParseRows returns the rows of every matching table in document order.
// Rows of nested tables are not included in their parent's rows.
func (p *TableParser) ParseRows(htmlContent string) ([]metro.Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, metro.Errorf(metro.EINVALID, "failed to parse HTML: %v", err)
	}

	selector := p.Selector
	if selector == "" {
		selector = DefaultTableSelector
	}

	var rows []metro.Row
	doc.Find(selector).Each(func(ti int, table *goquery.Selection) {
		index := 0
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			// Skip rows belonging to a table nested inside this one.
			if tr.Closest("table").Get(0) != table.Get(0) {
				return
			}
			row := metro.Row{Table: ti, Index: index}
			tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
				row.Cells = append(row.Cells, parseCell(cell))
			})
			rows = append(rows, row)
			index++
		})
	})

	return rows, nil
}

func parseCell(sel *goquery.Selection) metro.Cell {
	cell := metro.Cell{
		Header: isHeader(sel.Get(0)),
		Text:   cellText(sel),
	}
	if v, ok := sel.Attr("data-sort-value"); ok {
		cell.SortValue = strings.TrimSpace(v)
	}

	// Only the outermost titled elements count: a titled badge wrapping a
	// titled link is a single reference.
	sel.Find("[title]").Each(func(_ int, el *goquery.Selection) {
		if el.ParentsUntilSelection(sel).Filter("[title]").Length() > 0 {
			return
		}
		title, _ := el.Attr("title")
		cell.Links = append(cell.Links, metro.Link{
			Text:  normalize(el.Text()),
			Title: normalize(title),
		})
	})

	return cell
}

func isHeader(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Th
}

// cellText returns the cell text with one line per <br> or block child.
func cellText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteString("\n")
		case n.Type == html.ElementNode && isBlock(n.DataAtom):
			b.WriteString("\n")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			b.WriteString("\n")
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = normalize(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Div, atom.P, atom.Li, atom.Ul, atom.Ol:
		return true
	}
	return false
}

// normalize collapses whitespace. strings.Fields treats non-breaking spaces
// as whitespace too.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
