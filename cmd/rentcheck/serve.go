package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	rcgin "github.com/fwojciec/rentcheck/gin"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	listings, err := buildListings(deps)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	server := rcgin.NewServer(listings, deps.Snapshots, deps.Logger).HTTPServer(c.Addr)

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		printError(deps, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Serving %d listings on %s\n", len(listings), ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-deps.Ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown failed: %w", err)
	}
	return nil
}
