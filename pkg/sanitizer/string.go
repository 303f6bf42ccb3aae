package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName collapses whitespace in requester and driver names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeAddress collapses whitespace in pickup/dropoff addresses.
func NormalizeAddress(address string) string {
	return TrimAndNormalize(address)
}

// NormalizePlate uppercases a license plate and strips internal whitespace.
func NormalizePlate(plate string) string {
	plate = TrimAndNormalize(plate)
	plate = strings.ReplaceAll(plate, " ", "")
	return strings.ToUpper(plate)
}
