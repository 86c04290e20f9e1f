package directory

import "strings"

// FormatPhone renders a ten digit number as (AAA) BBB-CCCC after dropping
// every non-digit. Anything else comes back unchanged.
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return phone
	}
	return "(" + d[0:3] + ") " + d[3:6] + "-" + d[6:10]
}
