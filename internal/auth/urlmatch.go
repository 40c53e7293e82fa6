// File: internal/auth/urlmatch.go
package auth

import "strings"

// MatchesTarget reports whether currentURL satisfies pattern. A URL matches
// when it starts with the pattern, when the query-stripped forms are equal,
// or when the pattern appears anywhere in the URL. The deliberately
// permissive OR tolerates platforms that append tracking query parameters or
// redirect through intermediate paths. Shared by interactive login and the
// publish pipeline's success detection.
func MatchesTarget(currentURL, pattern string) bool {
	if currentURL == "" || pattern == "" {
		return false
	}
	if strings.HasPrefix(currentURL, pattern) {
		return true
	}
	if stripQuery(currentURL) == stripQuery(pattern) {
		return true
	}
	return strings.Contains(currentURL, pattern)
}

func stripQuery(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
