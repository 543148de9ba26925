package middleware

import (
	"net/http"
	"strings"

	"github.com/aziwar/dr-islam-website/backend/internal/util"
)

const maxLoggedValueLen = 200

// sensitiveHeaders never reach the log. Authorization carries the admin
// secret or a session token; the rest are standard credential carriers.
var sensitiveHeaders = map[string]struct{}{
	"authorization":       {},
	"cookie":              {},
	"set-cookie":          {},
	"proxy-authorization": {},
	"x-api-key":           {},
	"x-auth-token":        {},
	"x-forwarded-for":     {},
}

// SanitizeHeaders returns header values safe for logging: credential
// headers are redacted, everything else is cleaned and truncated.
func SanitizeHeaders(h http.Header) map[string][]string {
	if h == nil {
		return nil
	}

	out := make(map[string][]string, len(h))
	for k, vals := range h {
		if _, ok := sensitiveHeaders[strings.ToLower(k)]; ok {
			out[k] = []string{"<redacted>"}
			continue
		}
		cleaned := make([]string, 0, len(vals))
		for _, v := range vals {
			cleaned = append(cleaned, truncate(util.SanitizeForLog(v)))
		}
		out[k] = cleaned
	}
	return out
}

// SanitizePath prepares a request path for logging: the query string is
// dropped, control characters removed and the result truncated.
func SanitizePath(p string) string {
	if i := strings.Index(p, "?"); i != -1 {
		p = p[:i]
	}
	return truncate(util.SanitizeForLog(p))
}

func truncate(s string) string {
	if len(s) > maxLoggedValueLen {
		return s[:maxLoggedValueLen]
	}
	return s
}
