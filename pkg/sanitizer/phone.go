package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var supportedRegions = []string{
	"IL",
	"US",
}

// NormalizePhone parses a phone number against the supported regions and
// returns it in E.164 format, or "" when it cannot be parsed.
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
