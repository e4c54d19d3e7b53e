// Package reposync ensures a named source repository is present locally and
// up to date. It exposes a single task-oriented operation over go-git while
// operating exclusively through the project's native filesystem abstraction.
package reposync

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"golang.org/x/sync/singleflight"

	"github.com/input-output-hk/catalyst-forge-libs/reposync/internal/gitfs"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultRemoteName is the default remote name used for operations.
	DefaultRemoteName = "origin"
)

// Options configures a Syncer.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// Target.LocalPath is resolved within this filesystem.
	FS fs.Filesystem

	// Auth is an optional provider that resolves per-URL AuthMethod.
	// If nil, no authentication will be available.
	Auth AuthProvider

	// RemoteName is the remote used for clone and update operations.
	// Defaults to DefaultRemoteName.
	RemoteName string

	// ShallowDepth sets the depth for shallow clone/fetch operations.
	// If > 0, operations will be shallow with the specified depth.
	// If 0, full clone/fetch operations are performed.
	ShallowDepth int

	// StorerCacheSize sets the LRU objects cache entries.
	// Higher values improve performance but use more memory.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int

	// Logger receives structured progress events. If nil, logging is
	// discarded.
	Logger *slog.Logger
}

// Validate checks that the Options are properly configured.
// It returns an error if required fields are missing or invalid.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrInvalidTarget, "FS is required")
	}

	if o.ShallowDepth < 0 {
		return WrapError(ErrInvalidTarget, "ShallowDepth cannot be negative")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidTarget, "StorerCacheSize cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.RemoteName == "" {
		o.RemoteName = DefaultRemoteName
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// AuthProvider resolves authentication methods for git operations.
// Implementations should handle different URL schemes and credential sources.
type AuthProvider interface {
	// Method returns the appropriate transport.AuthMethod for the given remote URL.
	// Returns nil if no authentication is needed/available for this URL.
	// Returns an error if authentication cannot be resolved for the URL.
	Method(remoteURL string) (transport.AuthMethod, error)
}

// Action reports which branch of the sync decision ran.
type Action int8

const (
	// ActionCloned means the local path was absent and a fresh clone was made.
	ActionCloned Action = iota

	// ActionUpdated means an existing working copy was fast-forwarded.
	ActionUpdated

	// ActionUpToDate means an existing working copy already matched the remote.
	ActionUpToDate
)

// String returns a human-readable string representation of the Action.
func (a Action) String() string {
	switch a {
	case ActionCloned:
		return "cloned"
	case ActionUpdated:
		return "updated"
	case ActionUpToDate:
		return "up-to-date"
	default:
		return "unknown"
	}
}

// Result reports the outcome of a successful Sync.
type Result struct {
	// Action is the branch that ran.
	Action Action

	// Revision is the working copy's HEAD commit after the sync, in full
	// SHA-1 format. Callers that consume the working copy next can record
	// it without re-opening the repository.
	Revision string
}

// Syncer ensures working copies are present and current. A single Syncer can
// serve many targets; concurrent Sync calls for the same local path are
// coalesced so the clone-vs-update decision never races with itself.
type Syncer struct {
	opts  Options
	group singleflight.Group
}

// New creates a Syncer from the given options.
func New(opts *Options) (*Syncer, error) {
	if opts == nil {
		return nil, WrapError(ErrInvalidTarget, "options are required")
	}

	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	resolved := *opts
	resolved.applyDefaults()

	return &Syncer{opts: resolved}, nil
}

// Sync guarantees that after a successful return, target.LocalPath contains a
// working copy of target.RemoteURL reflecting the latest remote state
// reachable by fast-forward. If the path is absent the repository is cloned;
// if present it is updated. Anything that would require conflict resolution,
// rebase, or branch switching fails with ErrUpdateBlocked rather than being
// reconciled automatically, and no failure is retried here.
//
// Context timeout/cancellation is honored for the duration of the network
// transfer performed by go-git.
func (s *Syncer) Sync(ctx context.Context, target Target) (*Result, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	// Presence-check-then-act is a race under concurrency; coalescing on the
	// cleaned path keeps one sync in flight per working copy.
	v, err, _ := s.group.Do(path.Clean(target.LocalPath), func() (interface{}, error) {
		return s.syncOnce(ctx, target)
	})
	if err != nil {
		return nil, err
	}

	result, ok := v.(*Result)
	if !ok {
		return nil, WrapError(ErrInvalidTarget, "unexpected sync result type")
	}

	return result, nil
}

// syncOnce performs a single presence check followed by the matching branch.
func (s *Syncer) syncOnce(ctx context.Context, target Target) (*Result, error) {
	root, err := gitfs.Billy(s.opts.FS)
	if err != nil {
		return nil, &SyncError{Op: OpClone, Target: target, Err: WrapError(ErrInvalidTarget, err.Error())}
	}

	info, err := root.Stat(target.LocalPath)
	switch {
	case err == nil && info.IsDir():
		return s.update(ctx, root, target)
	case err == nil:
		// Something occupies the path but it is not a directory. Cloning
		// over it would clobber caller state, so fail loudly instead.
		return nil, &SyncError{
			Op:     OpUpdate,
			Target: target,
			Err:    WrapErrorf(ErrUpdateBlocked, "%q exists and is not a directory", target.LocalPath),
		}
	case os.IsNotExist(err):
		return s.clone(ctx, root, target)
	default:
		return nil, &SyncError{
			Op:     OpClone,
			Target: target,
			Err:    WrapErrorf(err, "failed to stat %q", target.LocalPath),
		}
	}
}

// headRevision resolves the repository's HEAD commit hash.
func headRevision(repo *gogit.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", WrapError(err, "failed to resolve HEAD")
	}

	return head.Hash().String(), nil
}

// logger returns the configured logger scoped to a target.
func (s *Syncer) logger(target Target) *slog.Logger {
	return s.opts.Logger.With("remote", target.RemoteURL, "path", target.LocalPath)
}
