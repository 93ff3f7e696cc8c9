package rentcheck

import "math"

// Insights summarizes a set of listings.
type Insights struct {
	Total       int              `json:"total"`
	MinCost     int              `json:"minCost"`
	MaxCost     int              `json:"maxCost"`
	AverageCost float64          `json:"averageCost"`
	ByRoomType  map[RoomType]int `json:"byRoomType"`

	// License categories. Licensed counts valid registration numbers.
	Pending  int `json:"pending"`
	Exempt   int `json:"exempt"`
	Licensed int `json:"licensed"`
	Invalid  int `json:"invalid"`
}

// Summarize computes Insights over listings. Cost fields are zero when
// listings is empty.
func Summarize(listings []*Listing) *Insights {
	in := &Insights{ByRoomType: make(map[RoomType]int)}
	if len(listings) == 0 {
		return in
	}

	in.Total = len(listings)
	in.MinCost = listings[0].Cost
	in.MaxCost = listings[0].Cost

	var total int
	for _, l := range listings {
		total += l.Cost
		in.MinCost = min(in.MinCost, l.Cost)
		in.MaxCost = max(in.MaxCost, l.Cost)
		in.ByRoomType[l.RoomType]++

		switch {
		case l.License == LicensePending:
			in.Pending++
		case l.License == LicenseExempt:
			in.Exempt++
		case IsValidLicense(l.License):
			in.Licensed++
		default:
			in.Invalid++
		}
	}
	in.AverageCost = math.Round(float64(total)/float64(len(listings))*100) / 100

	return in
}
