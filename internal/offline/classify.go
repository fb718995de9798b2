package offline

import (
	"net/http"
	"strings"
)

type Kind int

const (
	Other Kind = iota
	Navigation
	StaticAsset
	API
)

func (k Kind) String() string {
	switch k {
	case Navigation:
		return "navigation"
	case StaticAsset:
		return "static"
	case API:
		return "api"
	default:
		return "other"
	}
}

var staticExtensions = []string{".css", ".js", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".woff", ".woff2", ".ttf", ".eot"}

var apiHosts = []string{"supabase", "openfoodfacts", "wger.de"}

// Classify picks the caching strategy for r. Navigation wins over the path
// based checks, so a page load of /app.js is still a navigation.
func Classify(r *http.Request) Kind {
	if isNavigation(r) {
		return Navigation
	}
	path := r.URL.Path
	for _, ext := range staticExtensions {
		if strings.HasSuffix(path, ext) {
			return StaticAsset
		}
	}
	if strings.HasPrefix(path, "/api/") {
		return API
	}
	host := strings.ToLower(r.URL.Hostname())
	for _, h := range apiHosts {
		if strings.Contains(host, h) {
			return API
		}
	}
	return Other
}

func isNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}
