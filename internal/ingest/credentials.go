package ingest

import "net/url"

// InjectCredentials embeds the user/pass pair into the URI authority.
// Credentials already present are replaced, never duplicated. Scheme,
// path, query and fragment pass through untouched.
func InjectCredentials(u *url.URL, username, password string) *url.URL {
	clone := *u
	if username != "" {
		clone.User = url.UserPassword(username, password)
	}
	return &clone
}
