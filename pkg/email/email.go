package email

import (
	"strings"
	"unicode"
)

// DisplayName derives a presentable name from the local part of an email
// address. Used as the domain-derivation fallback when a signup profile
// carries no name field.
func DisplayName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "User"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// Normalize lowercases an email for case-insensitive lookup. Storage keeps
// the address as entered; only the index key is folded.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
