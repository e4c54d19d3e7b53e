// Package auth provides the SSH key authentication provider.
package auth

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// SSHKeyProvider provides SSH authentication for git operations.
// It wraps go-git's SSH auth methods with URL pattern matching.
type SSHKeyProvider struct {
	// KeyPath is the path to the SSH private key file.
	KeyPath string

	// Key contains the SSH private key as bytes.
	Key []byte

	// Passphrase for encrypted private keys.
	Passphrase string

	// Username for SSH authentication (defaults to "git").
	Username string

	// HostKeyCallback for host key verification (optional).
	// If nil, go-git's default known-hosts handling applies.
	HostKeyCallback gossh.HostKeyCallback

	// AllowedHosts restricts authentication to specific host patterns.
	// If empty, authentication is allowed for all SSH URLs.
	// Supports glob patterns like "*.github.com" or "gitlab.*".
	AllowedHosts []string
}

// NewSSHKeyProvider creates an SSH provider using a private key file.
func NewSSHKeyProvider(keyPath, passphrase string) *SSHKeyProvider {
	return &SSHKeyProvider{
		KeyPath:    keyPath,
		Passphrase: passphrase,
		Username:   "git",
	}
}

// NewSSHKeyBytesProvider creates an SSH provider using private key bytes.
func NewSSHKeyBytesProvider(key []byte, passphrase string) *SSHKeyProvider {
	return &SSHKeyProvider{
		Key:        key,
		Passphrase: passphrase,
		Username:   "git",
	}
}

// WithUsername sets the SSH username (default is "git").
func (p *SSHKeyProvider) WithUsername(username string) *SSHKeyProvider {
	p.Username = username
	return p
}

// WithHostKeyCallback sets the host key verification callback.
func (p *SSHKeyProvider) WithHostKeyCallback(callback gossh.HostKeyCallback) *SSHKeyProvider {
	p.HostKeyCallback = callback
	return p
}

// WithAllowedHosts sets the allowed hosts for this provider.
func (p *SSHKeyProvider) WithAllowedHosts(hosts ...string) *SSHKeyProvider {
	p.AllowedHosts = hosts
	return p
}

// Method returns the authentication method for the given remote URL.
// Returns nil if the URL doesn't match allowed patterns.
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHKeyProvider) Method(remoteURL string) (transport.AuthMethod, error) {
	host, scheme, err := extractSSHHost(remoteURL)
	if err != nil {
		return nil, err
	}

	if !isSSHScheme(scheme) {
		return nil, fmt.Errorf("SSH auth provider only supports SSH URLs, got %s", scheme)
	}

	if len(p.AllowedHosts) > 0 && host != "" && !anyHostMatches(host, p.AllowedHosts) {
		return nil, nil // No auth for restricted hosts
	}

	if p.KeyPath != "" {
		return p.fileAuth()
	}
	if len(p.Key) > 0 {
		return p.bytesAuth()
	}

	return nil, fmt.Errorf("no SSH credentials configured")
}

func extractSSHHost(remoteURL string) (string, string, error) {
	// Special handling for git@host:path style URLs
	if strings.HasPrefix(remoteURL, "git@") && !strings.HasPrefix(remoteURL, "git://") {
		parts := strings.SplitN(strings.TrimPrefix(remoteURL, "git@"), ":", 2)
		if len(parts) > 0 {
			return parts[0], "ssh", nil
		}
		return "", "", fmt.Errorf("invalid SSH URL: %s", remoteURL)
	}

	parsedURL, err := url.Parse(remoteURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL: %w", err)
	}

	return parsedURL.Host, parsedURL.Scheme, nil
}

func isSSHScheme(s string) bool {
	return s == "ssh" || s == "git" || s == "git+ssh"
}

//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHKeyProvider) fileAuth() (transport.AuthMethod, error) {
	if _, err := os.Stat(p.KeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("SSH private key file does not exist: %s", p.KeyPath)
	}

	auth, err := ssh.NewPublicKeysFromFile(p.Username, p.KeyPath, p.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from file: %w", err)
	}
	if p.HostKeyCallback != nil {
		auth.HostKeyCallback = p.HostKeyCallback
	}

	return auth, nil
}

//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHKeyProvider) bytesAuth() (transport.AuthMethod, error) {
	auth, err := ssh.NewPublicKeys(p.Username, p.Key, p.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from bytes: %w", err)
	}
	if p.HostKeyCallback != nil {
		auth.HostKeyCallback = p.HostKeyCallback
	}

	return auth, nil
}
