package rentcheck

import "regexp"

// LicenseGrammars are the accepted formats of a San Francisco short-term
// rental registration number: 20YY-00NNNNSTR and STR-000NNNN.
var LicenseGrammars = []*regexp.Regexp{
	regexp.MustCompile(`^20\d{2}-00\d{4}STR$`),
	regexp.MustCompile(`^STR-000\d{4}$`),
}

// IsValidLicense reports whether s matches one of LicenseGrammars.
func IsValidLicense(s string) bool {
	for _, re := range LicenseGrammars {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ValidateLicenses returns the ids of listings whose license is neither
// pending, exempt, nor a valid registration number. Ids keep input order.
func ValidateLicenses(listings []*Listing) []string {
	var invalid []string
	for _, l := range listings {
		if l.License == LicensePending || l.License == LicenseExempt {
			continue
		}
		if !IsValidLicense(l.License) {
			invalid = append(invalid, l.ListingID)
		}
	}
	return invalid
}
