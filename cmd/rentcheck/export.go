package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/rentcheck"
	"github.com/fwojciec/rentcheck/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	exporter, ok := deps.Exporters[c.Format]
	if !ok {
		err := rentcheck.Errorf(rentcheck.EINVALID, "unknown format %q", c.Format)
		printError(deps, err)
		return err
	}

	listings, err := buildListings(deps)
	if err != nil {
		return err
	}

	if c.Output == "-" {
		return exporter.ExportListings(deps.Stdout, listings)
	}

	if err := fs.WriteFile(c.Output, func(w io.Writer) error {
		return exporter.ExportListings(w, listings)
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: writing %s: %v\n", c.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d listings to %s\n", len(listings), c.Output)
	return nil
}
