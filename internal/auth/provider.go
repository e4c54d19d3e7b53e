// Package auth resolves go-git authentication methods for remote URLs.
// It provides host pattern matching on top of go-git's existing auth methods.
package auth

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Provider interface that all auth providers must implement.
// Returns go-git's transport.AuthMethod directly.
type Provider interface {
	// Method returns the appropriate transport.AuthMethod for the given remote URL.
	// Returns nil if no authentication is needed/available for this URL.
	// Returns an error if authentication setup fails.
	Method(remoteURL string) (transport.AuthMethod, error)
}

// hostMatches checks if a host matches a pattern with "*" wildcards.
func hostMatches(host, pattern string) bool {
	if host == pattern {
		return true
	}

	// Only support patterns with exactly one "*"
	if strings.Count(pattern, "*") != 1 {
		return false
	}

	if strings.HasPrefix(pattern, "*.") {
		suffix := strings.TrimPrefix(pattern, "*.")
		return strings.HasSuffix(host, suffix) || host == suffix
	}

	if strings.HasSuffix(pattern, ".*") {
		prefix := strings.TrimSuffix(pattern, ".*")
		return strings.HasPrefix(host, prefix+".")
	}

	return false
}

// anyHostMatches checks the host against every allowed pattern, ignoring any
// port suffix.
func anyHostMatches(host string, patterns []string) bool {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	for _, pattern := range patterns {
		if hostMatches(host, pattern) {
			return true
		}
	}

	return false
}
