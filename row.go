package metro

// Link is an element nested in a table cell that carries a descriptive
// title attribute, such as a line badge or an interchange entry.
type Link struct {
	Text  string
	Title string
}

// Cell is a single table cell.
type Cell struct {
	// Header is true for th cells.
	Header bool

	// Text is the whitespace-normalized text of the cell. Lines of a
	// multi-line cell are separated by "\n".
	Text string

	// Links holds the outermost titled elements of the cell in document order.
	Links []Link

	// SortValue is the cell's data-sort-value attribute, if any.
	SortValue string
}

// Row is a table row. Table and Index locate the row on the page and are
// used in diagnostics only.
type Row struct {
	Table int
	Index int
	Cells []Cell
}

// Cell returns the i-th cell of the row.
func (r Row) Cell(i int) (Cell, bool) {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}, false
	}
	return r.Cells[i], true
}

// RowParser parses the tables of an HTML page into rows.
type RowParser interface {
	// ParseRows returns the rows of every matching table in page order.
	ParseRows(html string) ([]Row, error)
}
