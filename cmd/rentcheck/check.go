package main

import (
	"fmt"

	"github.com/fwojciec/rentcheck"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	listings, err := buildListings(deps)
	if err != nil {
		return err
	}

	invalid := rentcheck.ValidateLicenses(listings)
	if len(invalid) == 0 {
		fmt.Fprintf(deps.Stdout, "All %d licenses are valid, pending or exempt.\n", len(listings))
		return nil
	}

	for _, id := range invalid {
		fmt.Fprintln(deps.Stdout, id)
	}

	if c.Strict {
		err := rentcheck.Errorf(rentcheck.EINVALID, "%d of %d listings have an invalid license", len(invalid), len(listings))
		printError(deps, err)
		return err
	}
	return nil
}
