package gin

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/rentcheck"
	"github.com/gin-gonic/gin"
)

// License status filter values for GET /api/v1/listings.
const (
	licenseFilterPending  = "pending"
	licenseFilterExempt   = "exempt"
	licenseFilterLicensed = "licensed"
	licenseFilterInvalid  = "invalid"
)

// listListings responds with listings in page order, or by ascending cost
// when sort=cost. room_type and license narrow the result.
func (s *Server) listListings(c *gin.Context) {
	listings := s.listings
	if c.Query("sort") == "cost" {
		listings = rentcheck.SortByCost(listings)
	}

	var roomType *rentcheck.RoomType
	if raw := c.Query("room_type"); raw != "" {
		rt, err := rentcheck.ParseRoomType(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		roomType = &rt
	}

	license := c.Query("license")
	switch license {
	case "", licenseFilterPending, licenseFilterExempt, licenseFilterLicensed, licenseFilterInvalid:
	default:
		writeError(c, rentcheck.Errorf(rentcheck.EINVALID, "unknown license filter %q", license))
		return
	}

	out := make([]*rentcheck.Listing, 0, len(listings))
	for _, l := range listings {
		if roomType != nil && l.RoomType != *roomType {
			continue
		}
		if license != "" && licenseStatus(l) != license {
			continue
		}
		out = append(out, l)
	}

	c.JSON(http.StatusOK, gin.H{"listings": out, "count": len(out)})
}

func licenseStatus(l *rentcheck.Listing) string {
	switch {
	case l.License == rentcheck.LicensePending:
		return licenseFilterPending
	case l.License == rentcheck.LicenseExempt:
		return licenseFilterExempt
	case rentcheck.IsValidLicense(l.License):
		return licenseFilterLicensed
	}
	return licenseFilterInvalid
}

func (s *Server) getListing(c *gin.Context) {
	l, ok := s.byID[c.Param("id")]
	if !ok {
		writeError(c, rentcheck.Errorf(rentcheck.ENOTFOUND, "listing %s not found", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) invalidLicenses(c *gin.Context) {
	ids := rentcheck.ValidateLicenses(s.listings)
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"listingIds": ids})
}

func (s *Server) insights(c *gin.Context) {
	c.JSON(http.StatusOK, rentcheck.Summarize(s.listings))
}

func (s *Server) listSnapshots(c *gin.Context) {
	filter := rentcheck.SnapshotFilter{
		Limit:  parseIntWithDefault(c.Query("limit"), 20),
		Offset: parseIntWithDefault(c.Query("offset"), 0),
	}
	if source := c.Query("source"); source != "" {
		filter.Source = &source
	}

	snaps, err := s.snapshots.FindSnapshots(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	if snaps == nil {
		snaps = []*rentcheck.Snapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps})
}

func (s *Server) getSnapshot(c *gin.Context) {
	snap, err := s.snapshots.FindSnapshotByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func parseIntWithDefault(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
