// Package pretty renders console reports of a metro registry with go-pretty.
package pretty

import (
	"io"
	"strings"
	"time"

	"github.com/fwojciec/metro"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// WriteLineSummary renders one row per line in display order with its
// number and station count, followed by a total.
func WriteLineSummary(w io.Writer, r *metro.Registry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Line", "Number", "Stations"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	total := 0
	for _, line := range r.Lines() {
		n := len(line.Stations())
		total += n
		t.AppendRow(table.Row{line.Name, line.Number, n})
	}
	t.AppendFooter(table.Row{"Total", len(r.Lines()), total})
	t.Render()
}

// WriteConnections renders one row per interchange origin with the
// stations reachable from it.
func WriteConnections(w io.Writer, r *metro.Registry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Line", "Station", "Transfers"})

	count := 0
	for _, conn := range r.Connections() {
		if len(conn.To) == 0 {
			continue
		}
		targets := make([]string, 0, len(conn.To))
		for _, to := range conn.To {
			targets = append(targets, to.String())
		}
		t.AppendRow(table.Row{conn.From.Line.Number, conn.From.Name, strings.Join(targets, "\n")})
		t.AppendSeparator()
		count++
	}
	t.AppendFooter(table.Row{"Total", count, ""})
	t.Render()
}

// WriteSnapshots renders one row per stored snapshot.
func WriteSnapshots(w io.Writer, snapshots []*metro.Snapshot) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Created", "Source", "Hash"})
	for _, s := range snapshots {
		t.AppendRow(table.Row{s.ID, s.CreatedAt.Format(time.RFC3339), s.SourceURL, s.SourceHash})
	}
	t.Render()
}
