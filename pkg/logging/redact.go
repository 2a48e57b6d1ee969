package logging

import (
	"strings"
	"unicode/utf8"
)

// RedactEmail shows the first 2 runes of the local part and replaces the
// rest with "****", keeping the domain intact. It leaves the input
// unchanged if it is empty, malformed, or the local part is too short to
// meaningfully redact.
func RedactEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return s
	}

	local, domain := s[:at], s[at+1:]
	if utf8.RuneCountInString(local) < 3 {
		return s
	}

	offset := 0
	for count := 0; count < 2 && offset < len(local); count++ {
		_, size := utf8.DecodeRuneInString(local[offset:])
		offset += size
	}
	prefix := local[:offset]

	return prefix + "****@" + domain
}
