package main

import (
	"fmt"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/extract"
	"github.com/fwojciec/metro/matchr"
	"github.com/fwojciec/metro/pretty"
	"github.com/fwojciec/metro/sqlite"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	html, err := deps.Fetcher.Fetch(deps.Ctx, cfg.SourceURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
		return err
	}

	rows, err := deps.Rows.ParseRows(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
		return err
	}

	registry := metro.NewRegistry()
	p := extract.NewPipeline(registry)
	p.Lines = cfg.LineMatcher()
	if cfg.Matching.FuzzyThreshold > 0 {
		p.Stations = matchr.NewFuzzyStationMatcher(p.Stations, cfg.Matching.FuzzyThreshold)
	}
	p.Columns = cfg.ExtractColumns()
	p.Overrides = cfg.ExtractOverrides()
	p.NoTransferMarker = cfg.NoTransferMarker
	p.Logger = deps.Logger

	res := p.Run(rows)
	doc := metro.NewDocument(registry)

	if err := deps.Documents.WriteDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
		return err
	}

	if deps.Snapshots != nil {
		snapshot := &metro.Snapshot{
			SourceURL:  cfg.SourceURL,
			SourceHash: sqlite.HashSource(html),
			Document:   doc,
		}
		if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved snapshot %s\n", snapshot.ID)
	}

	fmt.Fprintf(deps.Stdout, "Extracted %s from %d rows\n", doc.Summary(), res.DataRows)
	if n := len(res.Diagnostics); n > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d entries (run with --verbose for details)\n", n)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", cfg.Output)
	pretty.WriteLineSummary(deps.Stdout, registry)

	return nil
}
