package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanText drops NUL bytes and invalid UTF-8 sequences, which Postgres
// rejects in text parameters. It reports whether anything was removed.
func CleanText(input string) (string, bool) {
	if utf8.ValidString(input) && !strings.ContainsRune(input, 0) {
		return input, false
	}

	cleaned := strings.ReplaceAll(strings.ToValidUTF8(input, ""), "\x00", "")
	return cleaned, true
}
