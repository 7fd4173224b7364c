package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/metro"
	"github.com/fwojciec/metro/config"
	metrofs "github.com/fwojciec/metro/fs"
	"github.com/fwojciec/metro/goquery"
	metrohttp "github.com/fwojciec/metro/http"
	metroslog "github.com/fwojciec/metro/slog"
	"github.com/fwojciec/metro/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when a command needs snapshots and none is given.
	// Set before calling Run().
	DBPath string

	// SQLite database, opened only for commands that use snapshots.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("metro"),
		kong.Description("Extract the lines, stations and interchanges of a metro network from its station list page."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'metro --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch kongCtx.Command() {
	case "extract":
		if err := m.wireExtract(deps, &cli.Extract); err != nil {
			return err
		}
		defer deps.Fetcher.Close()
	case "report":
		if cli.Report.DB != "" {
			if err := m.openSnapshots(deps, cli.Report.DB); err != nil {
				return err
			}
		} else {
			deps.Documents = metrofs.NewDocumentStore(cli.Report.File)
		}
	case "graph":
		deps.Documents = metrofs.NewDocumentStore(cli.Graph.File)
	case "snapshots":
		path := cli.Snapshots.DB
		if path == "" {
			path = m.DBPath
		}
		if err := m.openSnapshots(deps, path); err != nil {
			return err
		}
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wireExtract loads the configuration, applies the command's flags to it and
// builds the services of the extract command.
func (m *Main) wireExtract(deps *Dependencies, c *ExtractCmd) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", metro.ErrorMessage(err))
		return err
	}
	if c.URL != "" {
		cfg.SourceURL = c.URL
	}
	if c.Out != "" {
		cfg.Output = c.Out
	}
	if c.DB != "" {
		cfg.Database = c.DB
	}
	deps.Config = cfg

	logger := deps.Logger
	fetcher := metrohttp.NewFetcher(
		metrohttp.WithTimeout(cfg.Timeout),
		metrohttp.WithUserAgent(cfg.UserAgent),
		metrohttp.WithRetryDelays(cfg.RetryDelays),
		metrohttp.WithRetryLog(func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}),
	)
	deps.Fetcher = metroslog.NewLoggingFetcher(fetcher, logger)
	deps.Rows = metroslog.NewLoggingRowParser(&goquery.TableParser{Selector: cfg.TableSelector}, logger)
	deps.Documents = metrofs.NewDocumentStore(cfg.Output)

	if cfg.Database != "" {
		if err := m.openSnapshots(deps, cfg.Database); err != nil {
			deps.Fetcher.Close()
			return err
		}
	}
	return nil
}

func (m *Main) openSnapshots(deps *Dependencies, path string) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(deps.Stderr, "Hint: Set METRO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	deps.DB = m.DB
	deps.Snapshots = metroslog.NewLoggingSnapshotService(sqlite.NewSnapshotService(m.DB), deps.Logger)
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("METRO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "metro.db"
	}
	dir := filepath.Join(home, ".metro")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "metro.db")
}
