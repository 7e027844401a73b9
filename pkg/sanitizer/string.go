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

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeLabel uppercases spot labels so "ma1" and "MA1" compare equal
// in listings.
func NormalizeLabel(label string) string {
	return strings.ToUpper(TrimAndNormalize(label))
}

func NormalizeZoneName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizePlate strips interior whitespace entirely and uppercases.
func NormalizePlate(plate string) string {
	plate = TrimAndNormalize(plate)
	plate = strings.ReplaceAll(plate, " ", "")
	return strings.ToUpper(plate)
}
