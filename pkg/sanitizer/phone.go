package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var supportedRegions = []string{
	"TN",
	"FR",
	"US",
}

// NormalizePhone converts a phone number to E.164, trying each supported
// region in order. Returns "" when the input cannot be parsed; phone
// numbers double as notification client keys, so normalization must be
// stable across formattings of the same number.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
