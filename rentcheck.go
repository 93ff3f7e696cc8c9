// Package rentcheck extracts rental listings from stored marketplace pages,
// checks each listing's short-term-rental license against the city's
// registration formats, and exports the result as a table sorted by cost.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, csv/).
package rentcheck
