package helpers

import "strings"

// NormalizePhone validates and formats phone numbers (Indian numbering plan).
// Ten clean digits pass through; 11-12 digit values carrying a leading "0"
// national prefix or "91" country code are trimmed to the last ten digits.
// Anything else is returned verbatim rather than discarded.
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	if len(d) == 10 {
		return d
	}
	if (len(d) == 11 || len(d) == 12) && (strings.HasPrefix(d, "91") || strings.HasPrefix(d, "0")) {
		return d[len(d)-10:]
	}
	return phone
}

// NormalizeEmail validates an email address. Unlike NormalizePhone, an
// unparseable value is rejected: the result is either a trimmed lowercase
// address or the empty string.
func NormalizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at < 0 {
		return ""
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeText trims a text field, replaces newlines and tabs with spaces,
// and collapses internal runs of whitespace to a single space.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}
