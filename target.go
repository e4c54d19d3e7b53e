package reposync

import "fmt"

// Target pairs a remote locator with the local destination path of its
// working copy. It is constructed by the caller per invocation and has no
// persisted identity; the working copy it describes is the only durable
// state this package owns.
type Target struct {
	// RemoteURL is the address used to obtain the repository. It is opaque
	// to this package; malformed locators are rejected by go-git.
	RemoteURL string

	// LocalPath is the path within the configured filesystem where the
	// working copy lives or will be created. Sync never consults the
	// ambient working directory; this path is the whole story.
	LocalPath string
}

// Validate checks that both halves of the target are set.
func (t Target) Validate() error {
	if t.RemoteURL == "" {
		return WrapError(ErrInvalidTarget, "remote URL cannot be empty")
	}

	if t.LocalPath == "" {
		return WrapError(ErrInvalidTarget, "local path cannot be empty")
	}

	return nil
}

// String returns a compact form used in errors and logs.
func (t Target) String() string {
	return fmt.Sprintf("%s -> %s", t.RemoteURL, t.LocalPath)
}
