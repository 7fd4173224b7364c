// Package extract turns table rows into a metro.Registry.
//
// Extraction runs in two passes over the same rows. The first pass
// registers every line and station. The second pass resolves the free-text
// interchange entries of each row against the complete roster, so a row may
// refer to stations that appear further down the page.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/metro"
)

// DefaultNoTransferMarker is the data-sort-value of a transfer cell that
// explicitly has no interchange.
const DefaultNoTransferMarker = "Infinity"

// Columns locates the cells the pipeline reads.
type Columns struct {
	Line     int
	Station  int
	Transfer int
}

// DefaultColumns returns the column layout of the station list tables.
func DefaultColumns() Columns {
	return Columns{Line: 0, Station: 1, Transfer: 3}
}

// Override forces interchange phrases equal to Phrase to resolve on the line
// named Line. It corrects phrases on the page that name the wrong line.
type Override struct {
	Phrase string
	Line   string
}

// DefaultOverrides returns the known mislabeled phrases of the page.
func DefaultOverrides() []Override {
	return []Override{
		{
			Phrase: "Переход на станцию Деловой центр Солнцевской линии",
			Line:   "Большая кольцевая линия",
		},
	}
}

// Pipeline extracts lines, stations and connections from rows into Registry.
type Pipeline struct {
	Registry *metro.Registry
	Lines    metro.LineMatcher
	Stations metro.StationMatcher

	Columns          Columns
	Overrides        []Override
	NoTransferMarker string

	Logger *slog.Logger
}

// NewPipeline returns a Pipeline populating r with the default settings.
func NewPipeline(r *metro.Registry) *Pipeline {
	return &Pipeline{
		Registry:         r,
		Lines:            NewPrefixLineMatcher(),
		Stations:         ContainsStationMatcher{},
		Columns:          DefaultColumns(),
		Overrides:        DefaultOverrides(),
		NoTransferMarker: DefaultNoTransferMarker,
	}
}

// Result summarizes a pipeline run.
type Result struct {
	DataRows    int
	SkippedRows int
	Lines       int
	Stations    int
	Connections int

	// Diagnostics holds the recoverable errors of the run, in the order they
	// occurred. Each one caused a single row, line reference or interchange
	// entry to be skipped.
	Diagnostics []error
}

// Run classifies rows, registers lines and stations from every data row and
// then resolves the transfers of every data row.
func (p *Pipeline) Run(rows []metro.Row) *Result {
	res := &Result{}

	var data []metro.Row
	for _, row := range rows {
		if !IsDataRow(row) {
			res.SkippedRows++
			continue
		}
		data = append(data, row)
	}
	res.DataRows = len(data)

	for _, row := range data {
		res.Diagnostics = append(res.Diagnostics, p.ExtractRow(row)...)
	}
	for _, row := range data {
		res.Diagnostics = append(res.Diagnostics, p.ResolveRow(row)...)
	}

	res.Lines = len(p.Registry.Lines())
	res.Stations = len(p.Registry.Stations())
	res.Connections = len(p.Registry.Connections())

	p.logger().Info("extraction complete",
		"rows", len(rows),
		"data_rows", res.DataRows,
		"lines", res.Lines,
		"stations", res.Stations,
		"connections", res.Connections,
		"diagnostics", len(res.Diagnostics),
	)
	return res
}

// lineRefs returns the line references of the row's line cell.
func (p *Pipeline) lineRefs(row metro.Row) ([]metro.Link, error) {
	cell, ok := row.Cell(p.Columns.Line)
	if !ok {
		return nil, rowErrorf(row, metro.EMALFORMED, "missing line column %d", p.Columns.Line)
	}
	if len(cell.Links) == 0 {
		return nil, rowErrorf(row, metro.EMALFORMED, "no line reference in column %d", p.Columns.Line)
	}
	return cell.Links, nil
}

// stationName returns the station display name of the row.
func (p *Pipeline) stationName(row metro.Row) (string, error) {
	cell, ok := row.Cell(p.Columns.Station)
	if !ok {
		return "", rowErrorf(row, metro.EMALFORMED, "missing station column %d", p.Columns.Station)
	}
	name := ""
	if len(cell.Links) > 0 {
		name = cell.Links[0].Text
	}
	if name == "" {
		name, _, _ = strings.Cut(cell.Text, "\n")
		name = strings.TrimSpace(name)
	}
	if name == "" {
		return "", rowErrorf(row, metro.EMALFORMED, "empty station name in column %d", p.Columns.Station)
	}
	return name, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// warn logs a diagnostic and returns it for collection.
func (p *Pipeline) warn(err error) error {
	p.logger().Warn("skipped", "code", metro.ErrorCode(err), "reason", metro.ErrorMessage(err))
	return err
}

func rowErrorf(row metro.Row, code string, format string, args ...any) error {
	return metro.Errorf(code, "table %d row %d: %s", row.Table, row.Index, fmt.Sprintf(format, args...))
}
