package util

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]+`)
	// Unicode bidi overrides. Contact messages arrive in Arabic and
	// English; an embedded override can make a log line render
	// misleadingly in a terminal or log viewer.
	bidiChars = regexp.MustCompile("[‪-‮⁦-⁩]")
)

// SanitizeForLog removes control characters, newlines and bidi override
// marks from user content before it is logged.
func SanitizeForLog(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = controlChars.ReplaceAllString(s, " ")
	s = bidiChars.ReplaceAllString(s, "")
	return s
}
