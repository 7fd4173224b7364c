package mock

import "github.com/fwojciec/metro"

var _ metro.RowParser = (*RowParser)(nil)

// RowParser is a mock implementation of metro.RowParser.
type RowParser struct {
	ParseRowsFn func(html string) ([]metro.Row, error)
}

func (p *RowParser) ParseRows(html string) ([]metro.Row, error) {
	return p.ParseRowsFn(html)
}
