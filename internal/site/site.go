// Package site implements the bilingual static-site surface: language
// routing between the Arabic and English variants, content-type mapping
// for served assets, the branded 404 page, and SVG placeholders for
// gallery slots that have no approved case yet.
package site

import (
	"fmt"
	"path"
	"strings"
)

// ResolvePath applies the language routing rules to a request path and
// returns the file to serve relative to the site directory.
// "/" serves the English page, "/ar" the Arabic one; assets requested
// under the /ar prefix resolve to the shared asset tree.
func ResolvePath(requestPath string) string {
	switch {
	case requestPath == "" || requestPath == "/":
		return "/index-en.html"
	case requestPath == "/ar" || requestPath == "/ar/":
		return "/index.html"
	case strings.HasPrefix(requestPath, "/ar/"):
		return "/" + strings.TrimPrefix(requestPath, "/ar/")
	default:
		return requestPath
	}
}

var contentTypes = map[string]string{
	".html":        "text/html; charset=utf-8",
	".css":         "text/css; charset=utf-8",
	".js":          "application/javascript; charset=utf-8",
	".json":        "application/json; charset=utf-8",
	".png":         "image/png",
	".jpg":         "image/jpeg",
	".jpeg":        "image/jpeg",
	".webp":        "image/webp",
	".ico":         "image/x-icon",
	".svg":         "image/svg+xml",
	".webmanifest": "application/manifest+json",
}

// ContentType maps a path's extension to its media type, defaulting to
// text/plain for anything unrecognized.
func ContentType(p string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(p))]; ok {
		return ct
	}
	return "text/plain; charset=utf-8"
}

// CacheControl returns the caching policy for a served path: pages
// revalidate hourly, everything else (hashed assets, images) is immutable.
func CacheControl(p string) string {
	if strings.ToLower(path.Ext(p)) == ".html" || path.Ext(p) == "" {
		return "public, max-age=3600"
	}
	return "public, max-age=31536000, immutable"
}

// NotFoundPage is the bilingual 404 body, linking both language homes.
func NotFoundPage() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>404 - Page Not Found</title>
    <style>
        body { font-family: Arial, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background-color: #f5f5f5; }
        .error-container { text-align: center; padding: 2rem; background: white; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #333; }
        a { color: #0066cc; text-decoration: none; }
    </style>
</head>
<body>
    <div class="error-container">
        <h1>404</h1>
        <p>Sorry, page not found</p>
        <p><a href="/">Back to Homepage</a> | <a href="/ar">النسخة العربية</a></p>
    </div>
</body>
</html>`
}

// PlaceholderSVG renders a tinted before/after placeholder for gallery
// slots with no approved case. slot is "before" or "after"; anything
// else falls back to "before".
func PlaceholderSVG(slot string, width, height int) string {
	if slot != "after" {
		slot = "before"
	}
	if width <= 0 {
		width = 300
	}
	if height <= 0 {
		height = 200
	}

	bg, accent := "#E8E8E8", "#D3D3D3"
	if slot == "after" {
		bg, accent = "#F0F8FF", "#98FB98"
	}

	return fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="%s"/>
  <rect x="10" y="10" width="%d" height="%d" fill="white" opacity="0.8"/>
  <circle cx="%d" cy="%d" r="%d" fill="%s" opacity="0.7"/>
  <text x="%d" y="%d" text-anchor="middle" fill="#666" font-family="Arial" font-size="16" font-weight="bold">%s</text>
  <text x="%d" y="%d" text-anchor="middle" fill="#666" font-family="Arial" font-size="12">Treatment Photo</text>
</svg>`,
		width, height, width, height,
		bg,
		width-20, height-20,
		width/2, height/2, min(width, height)/5, accent,
		width/2, height*3/10, strings.ToUpper(slot),
		width/2, height*7/10)
}
