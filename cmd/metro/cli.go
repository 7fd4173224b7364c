package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/config"
	"github.com/fwojciec/metro/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *config.Config
	DB        *sqlite.DB
	Fetcher   metro.Fetcher
	Rows      metro.RowParser
	Documents metro.DocumentStore
	Snapshots metro.SnapshotService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every added line, station and connection"`

	Extract   ExtractCmd   `cmd:"" help:"Fetch the station list page and write the metro document"`
	Report    ReportCmd    `cmd:"" help:"Show line and interchange tables of a document"`
	Graph     GraphCmd     `cmd:"" help:"Export the interchange graph as GraphML"`
	Snapshots SnapshotsCmd `cmd:"" help:"List or delete stored snapshots"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Config string `short:"c" type:"path" help:"YAML configuration file"`
	URL    string `short:"u" name:"url" help:"Station list page URL (overrides config)"`
	Out    string `short:"o" type:"path" help:"Output JSON file (overrides config)"`
	DB     string `name:"db" type:"path" help:"Store a snapshot in this SQLite database"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	File string `short:"f" type:"path" default:"result/metro.json" help:"Document file to report on"`
	DB   string `name:"db" type:"path" help:"Report on a snapshot from this SQLite database instead of a file"`
	ID   string `help:"Snapshot ID (default: latest)"`
}

// GraphCmd is the "graph" subcommand.
type GraphCmd struct {
	File string `short:"f" type:"path" default:"result/metro.json" help:"Document file to export"`
	Out  string `short:"o" required:"" help:"GraphML output file, or - for stdout"`
}

// SnapshotsCmd is the "snapshots" subcommand.
type SnapshotsCmd struct {
	DB     string `name:"db" type:"path" help:"SQLite database (default: $METRO_DB or ~/.metro/metro.db)"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of snapshots to list"`
	Delete string `help:"Delete the snapshot with this ID"`
}
