// Package fs provides file-based access to stored marketplace pages.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/fwojciec/rentcheck"
)

// Ensure Source implements rentcheck.DocumentSource at compile time.
var _ rentcheck.DocumentSource = (*Source)(nil)

// DefaultDetailTemplate names a listing's detail page after its id.
const DefaultDetailTemplate = "listing_%s.html"

var listingIDRe = regexp.MustCompile(`^\d+$`)

// Source reads pages from a directory.
type Source struct {
	dir string

	// DetailTemplate is a fmt pattern taking the listing id.
	DetailTemplate string
}

// NewSource creates a Source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir, DetailTemplate: DefaultDetailTemplate}
}

// Dir returns the directory pages are read from.
func (s *Source) Dir() string {
	return s.dir
}

func (s *Source) SearchDocument(ctx context.Context, name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", rentcheck.Errorf(rentcheck.EINVALID, "invalid search page name %q", name)
	}
	return s.read(ctx, name)
}

func (s *Source) DetailDocument(ctx context.Context, listingID string) (string, error) {
	if !listingIDRe.MatchString(listingID) {
		return "", rentcheck.Errorf(rentcheck.EINVALID, "invalid listing id %q", listingID)
	}
	return s.read(ctx, fmt.Sprintf(s.DetailTemplate, listingID))
}

func (s *Source) read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", rentcheck.Errorf(rentcheck.ENOTFOUND, "document %s not found", path)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}
