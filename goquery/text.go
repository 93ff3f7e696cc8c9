// Package goquery implements listing extraction from marketplace pages
// using CSS selectors.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rentcheck"
)

// whitespaceRunRe matches runs of two or more whitespace characters,
// Unicode separators such as U+00A0 included. Single spaces and newlines
// are left alone.
var whitespaceRunRe = regexp.MustCompile(`[\s\x{85}\p{Z}]{2,}`)

// collapseWhitespace replaces each whitespace run with a single space and
// trims the result.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRunRe.ReplaceAllString(s, " "))
}

// stripWhitespaceRuns removes whitespace runs entirely.
func stripWhitespaceRuns(s string) string {
	return whitespaceRunRe.ReplaceAllString(s, "")
}

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rentcheck.Errorf(rentcheck.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
