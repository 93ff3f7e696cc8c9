// Package gin serves reconciled listings over a read-only JSON API.
package gin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/rentcheck"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server exposes one set of listings and, optionally, stored snapshots.
type Server struct {
	listings  []*rentcheck.Listing
	byID      map[string]*rentcheck.Listing
	snapshots rentcheck.SnapshotService
	logger    *slog.Logger
	router    *gin.Engine
}

// NewServer creates a Server over listings. snapshots may be nil, in which
// case the snapshot routes are not registered.
func NewServer(listings []*rentcheck.Listing, snapshots rentcheck.SnapshotService, logger *slog.Logger) *Server {
	s := &Server{
		listings:  listings,
		byID:      make(map[string]*rentcheck.Listing, len(listings)),
		snapshots: snapshots,
		logger:    logger,
	}
	for _, l := range listings {
		s.byID[l.ListingID] = l
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestID())
	router.Use(s.logRequests())

	router.GET("/livez", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.GET("/listings", s.listListings)
	api.GET("/listings/:id", s.getListing)
	api.GET("/licenses/invalid", s.invalidLicenses)
	api.GET("/insights", s.insights)
	if snapshots != nil {
		api.GET("/snapshots", s.listSnapshots)
		api.GET("/snapshots/:id", s.getSnapshot)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer returns an http.Server for addr using this Server's handler.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

// writeError maps an application error code to an HTTP status.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch rentcheck.ErrorCode(err) {
	case rentcheck.ENOTFOUND:
		status = http.StatusNotFound
	case rentcheck.EINVALID:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": rentcheck.ErrorMessage(err)})
}
