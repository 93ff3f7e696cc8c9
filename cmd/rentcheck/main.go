package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rentcheck"
	"github.com/fwojciec/rentcheck/csv"
	"github.com/fwojciec/rentcheck/etree"
	"github.com/fwojciec/rentcheck/fs"
	"github.com/fwojciec/rentcheck/goquery"
	"github.com/fwojciec/rentcheck/postgres"
	"github.com/fwojciec/rentcheck/reconcile"
	rcslog "github.com/fwojciec/rentcheck/slog"
	"github.com/fwojciec/rentcheck/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path, or a postgres:// DSN. Set before calling Run().
	DBPath string

	// Snapshot databases, opened only for commands that use snapshots.
	// At most one is set.
	DB *sqlite.DB
	PG *postgres.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.PG != nil {
		return m.PG.Close()
	}
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
		kong.Name("rentcheck"),
		kong.Description("Extract rental listings from saved marketplace pages and check their licenses"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := newLogger(stderr, cli.LogFormat, level)

	source := rcslog.NewLoggingDocumentSource(fs.NewSource(cli.Dir), logger)
	deps.Logger = logger
	deps.Search = cli.Search
	deps.Reconciler = &reconcile.Reconciler{
		Source:      source,
		Search:      goquery.NewSearchExtractor(),
		Details:     rcslog.NewLoggingDetailService(goquery.NewDetailService(source), logger),
		Concurrency: cli.Concurrency,
	}
	deps.Exporters = map[string]rentcheck.ListingExporter{
		"csv": csv.NewExporter(),
		"xml": etree.NewExporter(),
	}

	// Only snapshot commands touch the database. serve runs without one.
	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "save", "history", "serve":
		defer m.Close()

		snapshots, err := m.openSnapshots(ctx)
		if err != nil && cmd == "serve" {
			logger.Warn("snapshot routes disabled", "db", m.DBPath, "err", err)
			break
		} else if err != nil {
			fmt.Fprintf(stderr, "Hint: Set RENTCHECK_DB to use a different database path\n")
			return err
		}

		deps.Snapshots = rcslog.NewLoggingSnapshotService(snapshots, logger)
	}

	return kongCtx.Run(deps)
}

// openSnapshots opens Postgres when DBPath is a DSN and SQLite otherwise.
func (m *Main) openSnapshots(ctx context.Context) (rentcheck.SnapshotService, error) {
	if postgres.IsDSN(m.DBPath) {
		m.PG = postgres.NewDB(m.DBPath)
		if err := m.PG.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return postgres.NewSnapshotService(m.PG), nil
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return sqlite.NewSnapshotService(m.DB), nil
}

func defaultDBPath() string {
	if path := os.Getenv("RENTCHECK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "rentcheck.db"
	}
	dir := filepath.Join(home, ".rentcheck")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "rentcheck.db")
}
