package rentcheck

import "strings"

// Rule maps text that satisfies Match to Value.
type Rule[T any] struct {
	Name  string
	Match func(text string) bool
	Value T
}

// Classify returns the Value of the first rule that matches text,
// or fallback when none does.
func Classify[T any](rules []Rule[T], text string, fallback T) T {
	for _, r := range rules {
		if r.Match(text) {
			return r.Value
		}
	}
	return fallback
}

// LicenseRules turn the free-text license field into a status. Text that
// matches no rule is kept as a literal license candidate.
var LicenseRules = []Rule[string]{
	{
		Name: "pending",
		Match: func(text string) bool {
			return strings.Contains(strings.ToLower(text), "pending")
		},
		Value: LicensePending,
	},
	{
		Name: "exempt",
		Match: func(text string) bool {
			return strings.Contains(text, "License not needed")
		},
		Value: LicenseExempt,
	},
}

// RoomTypeRules classify a listing subtitle. Matching is case-sensitive:
// "private" in lowercase does not make a private room.
var RoomTypeRules = []Rule[RoomType]{
	{
		Name:  "private",
		Match: func(text string) bool { return strings.Contains(text, "Private") },
		Value: RoomTypePrivate,
	},
	{
		Name:  "shared",
		Match: func(text string) bool { return strings.Contains(text, "Shared") },
		Value: RoomTypeShared,
	},
}

// ClassifyLicense returns LicensePending, LicenseExempt, or text unchanged.
func ClassifyLicense(text string) string {
	return Classify(LicenseRules, text, text)
}

// ClassifyRoomType returns the room type named by a listing subtitle.
func ClassifyRoomType(subtitle string) RoomType {
	return Classify(RoomTypeRules, subtitle, RoomTypeEntire)
}
