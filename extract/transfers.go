package extract

import (
	"strings"

	"github.com/fwojciec/metro"
)

// ResolveRow registers the interchanges described in the row's transfer
// cell against every station of the row. Rows without a transfer cell,
// without entries, or marked as having no interchange are ignored.
// Unresolvable entries and entries resolving to the origin itself are
// returned as diagnostics and left out.
func (p *Pipeline) ResolveRow(row metro.Row) []error {
	cell, ok := row.Cell(p.Columns.Transfer)
	if !ok || len(cell.Links) == 0 {
		return nil
	}
	if p.NoTransferMarker != "" && cell.SortValue == p.NoTransferMarker {
		return nil
	}

	origins := p.origins(row)
	if len(origins) == 0 {
		return nil
	}

	var diags []error
	var dests []*metro.Station
	for _, entry := range cell.Links {
		phrase := entry.Title
		if phrase == "" {
			phrase = entry.Text
		}
		station, err := p.ResolveTransfer(phrase)
		if err != nil {
			diags = append(diags, p.warn(rowErrorf(row, metro.ErrorCode(err), "%s", metro.ErrorMessage(err))))
			continue
		}
		dests = append(dests, station)
	}

	for _, origin := range origins {
		var to []*metro.Station
		for _, d := range dests {
			if d.Equal(origin) {
				diags = append(diags, p.warn(rowErrorf(row, metro.EINVALID, "transfer from %q on line %q resolves to the station itself", origin.Name, origin.Line.Number)))
				continue
			}
			to = append(to, d)
		}
		if len(to) == 0 {
			continue
		}
		if err := p.Registry.AddConnections(origin, to); err != nil {
			diags = append(diags, p.warn(rowErrorf(row, metro.ErrorCode(err), "%s", metro.ErrorMessage(err))))
			continue
		}
		p.logger().Debug("connections added",
			"station", origin.Name,
			"line", origin.Line.Number,
			"transfers", len(to),
		)
	}

	return diags
}

// ResolveTransfer returns the station an interchange phrase refers to.
// Returns ENOTFOUND if no line or no station of the matched line fits.
func (p *Pipeline) ResolveTransfer(phrase string) (*metro.Station, error) {
	line, err := p.resolveLine(phrase)
	if err != nil {
		return nil, err
	}
	station, ok := p.Stations.MatchStation(phrase, line.Stations())
	if !ok {
		return nil, metro.Errorf(metro.ENOTFOUND, "no station of line %q matches %q", line.Name, phrase)
	}
	return station, nil
}

func (p *Pipeline) resolveLine(phrase string) (*metro.Line, error) {
	trimmed := strings.TrimSpace(phrase)
	for _, o := range p.Overrides {
		if strings.EqualFold(trimmed, strings.TrimSpace(o.Phrase)) {
			return p.Registry.FindLineByName(o.Line)
		}
	}
	line, ok := p.Lines.MatchLine(phrase, p.Registry.Lines())
	if !ok {
		return nil, metro.Errorf(metro.ENOTFOUND, "no line matches %q", phrase)
	}
	return line, nil
}

// origins returns the registered stations of the row, one per line
// reference. Lookups that fail were already reported by ExtractRow.
func (p *Pipeline) origins(row metro.Row) []*metro.Station {
	refs, err := p.lineRefs(row)
	if err != nil {
		return nil
	}
	name, err := p.stationName(row)
	if err != nil {
		return nil
	}

	var stations []*metro.Station
	for _, ref := range refs {
		line, err := p.Registry.FindLineByName(strings.TrimSpace(ref.Title))
		if err != nil {
			continue
		}
		s, err := p.Registry.FindStation(name, line)
		if err != nil {
			continue
		}
		stations = append(stations, s)
	}
	return stations
}
