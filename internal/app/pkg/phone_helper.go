package pkg

import "strings"

// NormalizePhone converts a Saudi local phone number to its international
// wire form without a leading "+". "05xxxxxxxx" and "5xxxxxxxx" both become
// "9665xxxxxxxx". Whitespace is stripped; already-international numbers pass
// through unchanged.
func NormalizePhone(phone string) string {
	cleaned := strings.Join(strings.Fields(phone), "")
	cleaned = strings.TrimPrefix(cleaned, "+")

	switch {
	case strings.HasPrefix(cleaned, "05"):
		return "966" + cleaned[1:]
	case strings.HasPrefix(cleaned, "5"):
		return "966" + cleaned
	default:
		return cleaned
	}
}

// DisplayPhone is the transient display form with a leading "+".
func DisplayPhone(phone string) string {
	return "+" + NormalizePhone(phone)
}
