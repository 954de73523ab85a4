package onvif

import (
	"regexp"
	"strings"
)

// FindTagValue - first text value of a tag matching the regexp fragment.
func FindTagValue(b []byte, tag string) string {
	re := regexp.MustCompile(tag + `[^>]*>([^<]+)`)
	m := re.FindSubmatch(b)
	if len(m) != 2 {
		return ""
	}
	return string(m[1])
}

// GetPath returns the path component of rawURL, or def when absent.
// Cameras report service XAddr values with or without scheme and host.
func GetPath(rawURL, def string) string {
	if i := strings.Index(rawURL, "://"); i >= 0 {
		rawURL = rawURL[i+3:]
		if i = strings.IndexByte(rawURL, '/'); i < 0 {
			return def
		}
		return rawURL[i:]
	}
	if strings.HasPrefix(rawURL, "/") {
		return rawURL
	}
	return def
}
