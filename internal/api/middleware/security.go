package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersConfig holds configuration for the security headers middleware.
type SecurityHeadersConfig struct {
	// IsDevelopment relaxes the policy for local work (no HSTS, eval
	// allowed so live-reload tooling keeps working).
	IsDevelopment bool
	// CustomCSPDirectives overrides or extends individual CSP directives.
	CustomCSPDirectives map[string]string
}

// SecurityHeaders returns middleware that sets security-related HTTP
// headers on every response, static pages and API alike.
func SecurityHeaders(cfg SecurityHeadersConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", buildCSP(cfg))

		if !cfg.IsDevelopment {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		// The site is never meant to be embedded anywhere.
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", buildPermissionsPolicy())
		c.Header("Cross-Origin-Opener-Policy", "same-origin")

		c.Next()
	}
}

// buildCSP constructs the Content-Security-Policy header value.
//
// The pages carry inline style blocks and the admin UI previews uploads
// through blob: URLs before submitting them, so style-src keeps
// 'unsafe-inline' and img-src allows blob: alongside the served assets.
func buildCSP(cfg SecurityHeadersConfig) string {
	directives := map[string]string{
		"default-src": "'self'",
		"script-src":  "'self'",
		"style-src":   "'self' 'unsafe-inline'",
		"img-src":     "'self' data: blob:",
		"font-src":    "'self' data:",
		"connect-src": "'self'",
		"frame-src":   "'none'",
		"object-src":  "'none'",
		"base-uri":    "'self'",
		"form-action": "'self'",
	}

	if cfg.IsDevelopment {
		directives["script-src"] = "'self' 'unsafe-inline' 'unsafe-eval'"
		directives["connect-src"] = "'self' ws: wss:"
	}

	for key, value := range cfg.CustomCSPDirectives {
		directives[key] = value
	}

	var parts []string
	for directive, value := range directives {
		parts = append(parts, fmt.Sprintf("%s %s", directive, value))
	}
	return strings.Join(parts, "; ")
}

// buildPermissionsPolicy disables browser features a clinic site has no
// use for.
func buildPermissionsPolicy() string {
	policies := []string{
		"accelerometer=()",
		"camera=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}
	return strings.Join(policies, ", ")
}
