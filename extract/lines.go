package extract

import (
	"strings"

	"github.com/fwojciec/metro"
)

// ExtractRow registers the lines referenced by the row and the row's station
// on each of them. A junction row referencing several lines yields one
// station per line. Problems are returned as diagnostics; the rest of the
// row is still processed.
func (p *Pipeline) ExtractRow(row metro.Row) []error {
	refs, err := p.lineRefs(row)
	if err != nil {
		return []error{p.warn(err)}
	}

	var diags []error

	// Register every line first, then bind the station to each of them.
	var names []string
	for _, ref := range refs {
		number := strings.TrimSpace(ref.Text)
		name := strings.TrimSpace(ref.Title)
		if number == "" || name == "" {
			diags = append(diags, p.warn(rowErrorf(row, metro.EMALFORMED, "incomplete line reference %q/%q", ref.Text, ref.Title)))
			continue
		}
		if p.Registry.AddLine(metro.NewLine(number, name)) {
			p.logger().Debug("line added", "number", number, "name", name)
		} else if existing, err := p.Registry.FindLineByNumber(number); err == nil && existing.Name != name {
			diags = append(diags, p.warn(rowErrorf(row, metro.ECONFLICT, "line %q is already registered as %q, ignoring %q", number, existing.Name, name)))
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return diags
	}

	stationName, err := p.stationName(row)
	if err != nil {
		return append(diags, p.warn(err))
	}

	for _, name := range names {
		line, err := p.Registry.FindLineByName(name)
		if err != nil {
			diags = append(diags, p.warn(rowErrorf(row, metro.ErrorCode(err), "%s", metro.ErrorMessage(err))))
			continue
		}
		added, err := p.Registry.AddStation(metro.NewStation(stationName, line))
		if err != nil {
			diags = append(diags, p.warn(rowErrorf(row, metro.ErrorCode(err), "%s", metro.ErrorMessage(err))))
			continue
		}
		if added {
			p.logger().Debug("station added", "station", stationName, "line", line.Number)
		}
	}

	return diags
}
