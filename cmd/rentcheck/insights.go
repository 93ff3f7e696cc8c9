package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/rentcheck"
)

// Run executes the insights command.
func (c *InsightsCmd) Run(deps *Dependencies) error {
	listings, err := buildListings(deps)
	if err != nil {
		return err
	}

	in := rentcheck.Summarize(listings)

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Listings\t%d\n", in.Total)
	fmt.Fprintf(w, "Cost\t$%d - $%d (avg $%.2f)\n", in.MinCost, in.MaxCost, in.AverageCost)
	for _, rt := range []rentcheck.RoomType{rentcheck.RoomTypeEntire, rentcheck.RoomTypePrivate, rentcheck.RoomTypeShared} {
		fmt.Fprintf(w, "%s\t%d\n", rt, in.ByRoomType[rt])
	}
	fmt.Fprintf(w, "Licensed\t%d\n", in.Licensed)
	fmt.Fprintf(w, "Pending\t%d\n", in.Pending)
	fmt.Fprintf(w, "Exempt\t%d\n", in.Exempt)
	fmt.Fprintf(w, "Invalid\t%d\n", in.Invalid)
	return w.Flush()
}
