package main

import (
	"fmt"

	"github.com/fwojciec/rentcheck"
)

// Run executes the save command.
func (c *SaveCmd) Run(deps *Dependencies) error {
	listings, err := buildListings(deps)
	if err != nil {
		return err
	}

	previous, err := deps.Snapshots.FindSnapshots(deps.Ctx, rentcheck.SnapshotFilter{Source: &deps.Search, Limit: 1})
	if err != nil {
		printError(deps, err)
		return err
	}

	snap := &rentcheck.Snapshot{Source: deps.Search, Listings: listings}
	if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snap); err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved snapshot %s (%d listings, hash %s)\n", snap.ID, snap.ListingCount, snap.ContentHash)
	if len(previous) > 0 && previous[0].ContentHash == snap.ContentHash {
		fmt.Fprintf(deps.Stdout, "Unchanged since snapshot %s\n", previous[0].ID)
	}
	return nil
}
