package textsms

import "strings"

// CountryCode is the Kenyan dialling prefix the gateway expects.
const CountryCode = "254"

// NormalizeMobile rewrites a caller supplied number into the 2547XXXXXXXX form.
// It never fails: anything it cannot recognise is forwarded as-is and left for
// the gateway to reject.
func NormalizeMobile(mobile string) string {
	mobile = strings.TrimSpace(mobile)
	mobile = strings.TrimPrefix(mobile, "+")

	if strings.HasPrefix(mobile, "0") {
		mobile = CountryCode + mobile[1:]
	}
	if len(mobile) <= 10 {
		mobile = CountryCode + mobile
	}
	return mobile
}
