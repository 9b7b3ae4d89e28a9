package client

import "strings"

// SplitHostName splits a "host[:port]" string. Without a colon it returns
// []string{s}; otherwise it returns the parts before and after the first
// colon. The port is not validated.
//
// Only the first colon is considered, so IPv6 literals are not supported.
func SplitHostName(s string) []string {
	host, port, found := strings.Cut(s, ":")
	if !found {
		return []string{s}
	}
	return []string{host, port}
}
