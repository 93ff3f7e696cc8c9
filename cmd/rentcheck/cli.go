package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/rentcheck"
	"github.com/fwojciec/rentcheck/reconcile"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Search     string
	Reconciler *reconcile.Reconciler
	Exporters  map[string]rentcheck.ListingExporter
	Snapshots  rentcheck.SnapshotService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir         string `short:"d" default:"html_files" env:"RENTCHECK_DIR" help:"Directory holding the saved pages"`
	Search      string `short:"s" default:"mission_district_search_results.html" env:"RENTCHECK_SEARCH" help:"Search results page inside --dir"`
	Concurrency int    `short:"c" default:"4" env:"RENTCHECK_CONCURRENCY" help:"Detail pages parsed at once"`
	Verbose     bool   `short:"v" help:"Log each page read and parsed"`
	LogFormat   string `enum:"text,json" default:"text" env:"RENTCHECK_LOG_FORMAT" help:"Log format (text, json)"`

	Export   ExportCmd   `cmd:"" default:"withargs" help:"Write listings sorted by cost (default command)"`
	Check    CheckCmd    `cmd:"" help:"Print ids of listings with an invalid license"`
	Insights InsightsCmd `cmd:"" help:"Summarize cost, room types and license status"`
	Save     SaveCmd     `cmd:"" help:"Store the listings as a snapshot"`
	History  HistoryCmd  `cmd:"" help:"List snapshots or show one"`
	Serve    ServeCmd    `cmd:"" help:"Serve listings and snapshots as a JSON API"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `short:"o" default:"airbnb_dataset.csv" help:"Output file, or - for stdout"`
	Format string `short:"f" enum:"csv,xml" default:"csv" help:"Output format (csv, xml)"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Strict bool `help:"Fail when any license is invalid"`
}

// InsightsCmd is the "insights" subcommand.
type InsightsCmd struct{}

// SaveCmd is the "save" subcommand.
type SaveCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID     string `arg:"" optional:"" help:"Snapshot ID to show"`
	Limit  int    `short:"n" default:"20" help:"Maximum snapshots to list"`
	Delete bool   `help:"Delete the snapshot given by ID"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"RENTCHECK_ADDR" help:"Address to listen on"`
}

// buildListings runs the pipeline over the configured search page, printing
// the error message to stderr on failure.
func buildListings(deps *Dependencies) ([]*rentcheck.Listing, error) {
	listings, err := deps.Reconciler.BuildDatabase(deps.Ctx, deps.Search)
	if err != nil {
		printError(deps, err)
		return nil, err
	}
	return listings, nil
}

func printError(deps *Dependencies, err error) {
	fmt.Fprintf(deps.Stderr, "error: %s\n", rentcheck.ErrorMessage(err))
}
