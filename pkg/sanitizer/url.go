package sanitizer

import (
	"strings"
)

// NormalizeURL canonicalizes image and link URLs: https scheme, lowercase
// domain, no trailing slash. Relative paths (media served by this service)
// pass through untouched.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "/") {
		return strings.TrimSuffix(url, "/")
	}
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")
	parts := strings.SplitN(url, "/", 2)
	domain := strings.ToLower(parts[0])
	var path string
	if len(parts) > 1 {
		path = "/" + parts[1]
	}
	result := "https://" + domain + path
	result = strings.TrimSuffix(result, "/")
	return result
}
