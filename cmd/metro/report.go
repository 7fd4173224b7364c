package main

import (
	"fmt"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/pretty"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	doc, err := c.document(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
		return err
	}

	registry := metro.NewRegistry()
	for _, err := range doc.Load(registry) {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", metro.ErrorMessage(err))
	}

	fmt.Fprintln(deps.Stdout, "Lines")
	pretty.WriteLineSummary(deps.Stdout, registry)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "Connections")
	pretty.WriteConnections(deps.Stdout, registry)
	return nil
}

func (c *ReportCmd) document(deps *Dependencies) (*metro.Document, error) {
	if deps.Snapshots == nil {
		return deps.Documents.ReadDocument(deps.Ctx)
	}

	var snapshot *metro.Snapshot
	var err error
	if c.ID != "" {
		snapshot, err = deps.Snapshots.FindSnapshotByID(deps.Ctx, c.ID)
	} else {
		snapshot, err = deps.Snapshots.FindLatestSnapshot(deps.Ctx)
	}
	if err != nil {
		return nil, err
	}
	return snapshot.Document, nil
}
