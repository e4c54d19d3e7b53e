// Package reposync ensures a named source repository is present locally and up to date.
// This file contains the absent-path branch: clone the repository into place.
package reposync

import (
	"context"
	"errors"
	"net"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/input-output-hk/catalyst-forge-libs/reposync/internal/gitfs"
)

// clone creates a fresh working copy at target.LocalPath. The path did not
// exist when the presence check ran, so on failure whatever the transfer
// managed to write is removed again and the caller-visible state is exactly
// what it was before the call.
func (s *Syncer) clone(ctx context.Context, root billy.Filesystem, target Target) (*Result, error) {
	log := s.logger(target)
	log.Debug("working copy absent, cloning")

	storage, worktreeFS, err := gitfs.Workspace(root, target.LocalPath, s.opts.StorerCacheSize)
	if err != nil {
		return nil, &SyncError{Op: OpClone, Target: target, Err: WrapError(ErrCloneFailed, err.Error())}
	}

	cloneOpts := &gogit.CloneOptions{
		URL:          target.RemoteURL,
		RemoteName:   s.opts.RemoteName,
		Depth:        s.opts.ShallowDepth,
		SingleBranch: s.opts.ShallowDepth > 0, // Single branch for shallow clones
	}

	if s.opts.Auth != nil {
		method, authErr := s.opts.Auth.Method(target.RemoteURL)
		if authErr != nil {
			return nil, &SyncError{
				Op:     OpClone,
				Target: target,
				Err:    WrapError(ErrRemoteUnreachable, authErr.Error()),
			}
		}
		cloneOpts.Auth = method
	}

	repo, err := gogit.CloneContext(ctx, storage, worktreeFS, cloneOpts)
	if err != nil {
		s.removePartialClone(root, target)
		return nil, &SyncError{Op: OpClone, Target: target, Err: classifyCloneError(err)}
	}

	rev, err := headRevision(repo)
	if err != nil {
		return nil, &SyncError{Op: OpClone, Target: target, Err: WrapError(ErrCloneFailed, err.Error())}
	}

	log.Info("repository cloned", "revision", rev)

	return &Result{Action: ActionCloned, Revision: rev}, nil
}

// removePartialClone deletes the directory a failed clone left behind.
// Best effort: a failure to clean up is logged, not returned, because the
// clone error is the one the caller needs.
func (s *Syncer) removePartialClone(root billy.Filesystem, target Target) {
	if err := util.RemoveAll(root, target.LocalPath); err != nil {
		s.logger(target).Warn("failed to remove partial clone", "error", err)
	}
}

// classifyCloneError folds go-git clone failures into the sentinel taxonomy.
// Unresolvable or uncontactable remotes map to ErrRemoteUnreachable;
// everything else started transferring and maps to ErrCloneFailed.
func classifyCloneError(err error) error {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrEmptyRemoteRepository):
		return WrapError(ErrRemoteUnreachable, err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return WrapError(ErrRemoteUnreachable, err.Error())
	}

	return WrapError(ErrCloneFailed, err.Error())
}
