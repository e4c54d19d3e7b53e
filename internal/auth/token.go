// Package auth provides the HTTPS token authentication provider.
package auth

import (
	"fmt"
	"net/url"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// TokenProvider authenticates HTTPS remotes with a token or a
// username/password pair. It wraps go-git's http.BasicAuth with URL
// pattern matching.
type TokenProvider struct {
	auth *http.BasicAuth

	// AllowedHosts restricts authentication to specific host patterns.
	// If empty, authentication is allowed for all HTTPS URLs.
	// Supports glob patterns like "*.github.com" or "gitlab.*".
	AllowedHosts []string
}

// NewTokenProvider creates a provider for token authentication.
// Most git providers (GitHub, GitLab, Bitbucket) use the token as password.
func NewTokenProvider(token string) *TokenProvider {
	return &TokenProvider{
		auth: &http.BasicAuth{
			Username: "token", // Some providers need a username
			Password: token,
		},
	}
}

// NewBasicProvider creates a provider using an explicit username/password pair.
func NewBasicProvider(username, password string) *TokenProvider {
	if username == "" && password != "" {
		// Many providers accept the token as username with empty password
		username = password
		password = ""
	}

	return &TokenProvider{
		auth: &http.BasicAuth{
			Username: username,
			Password: password,
		},
	}
}

// WithAllowedHosts sets the allowed hosts for this provider.
// Only URLs matching these patterns will be authenticated.
func (p *TokenProvider) WithAllowedHosts(hosts ...string) *TokenProvider {
	p.AllowedHosts = hosts
	return p
}

// Method returns the authentication method for the given remote URL.
// Returns nil if the URL doesn't match allowed patterns.
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *TokenProvider) Method(remoteURL string) (transport.AuthMethod, error) {
	parsedURL, err := url.Parse(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("token auth provider only supports https:// URLs, got %s", parsedURL.Scheme)
	}

	if len(p.AllowedHosts) > 0 && !anyHostMatches(parsedURL.Host, p.AllowedHosts) {
		return nil, nil // No auth for restricted hosts
	}

	return p.auth, nil
}
