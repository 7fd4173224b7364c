package main

import (
	"fmt"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/pretty"
)

// Run executes the snapshots command.
func (c *SnapshotsCmd) Run(deps *Dependencies) error {
	if c.Delete != "" {
		if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, c.Delete); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", c.Delete)
		return nil
	}

	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, metro.SnapshotFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'metro extract --db' to create one.")
		return nil
	}

	pretty.WriteSnapshots(deps.Stdout, snapshots)
	return nil
}
