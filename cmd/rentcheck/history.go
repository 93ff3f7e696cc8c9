package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/rentcheck"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Delete {
		return c.delete(deps)
	}
	if c.ID != "" {
		return c.show(deps)
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, rentcheck.SnapshotFilter{Limit: c.Limit})
	if err != nil {
		printError(deps, err)
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'rentcheck save' to create one.")
		return nil
	}

	for _, s := range snaps {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d listings  %s\n",
			s.ID, s.CreatedAt.Local().Format(time.DateTime), s.Source, s.ListingCount, s.ContentHash)
	}
	return nil
}

func (c *HistoryCmd) show(deps *Dependencies) error {
	snap, err := deps.Snapshots.FindSnapshotByID(deps.Ctx, c.ID)
	if err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Snapshot %s of %s, %s\n\n", snap.ID, snap.Source, snap.CreatedAt.Local().Format(time.DateTime))

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCost\tPolicy Number\tPlace Type\tBedrooms\tTitle")
	for _, l := range snap.Listings {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%s\n", l.ListingID, l.Cost, l.License, l.RoomType, l.Bedrooms, l.Title)
	}
	return w.Flush()
}

func (c *HistoryCmd) delete(deps *Dependencies) error {
	if c.ID == "" {
		err := rentcheck.Errorf(rentcheck.EINVALID, "snapshot ID required for --delete")
		printError(deps, err)
		return err
	}

	if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, c.ID); err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", c.ID)
	return nil
}
