// Package reposync ensures a named source repository is present locally and up to date.
// This file contains the present-path branch: fast-forward an existing working copy.
package reposync

import (
	"context"
	"errors"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"

	"github.com/input-output-hk/catalyst-forge-libs/reposync/internal/gitfs"
)

// update refreshes the working copy at target.LocalPath. It refuses anything
// that is not a clean, on-branch working copy and never attempts conflict
// resolution, rebase, or branch switching: deviations fail with
// ErrUpdateBlocked and the local state is left untouched.
func (s *Syncer) update(ctx context.Context, root billy.Filesystem, target Target) (*Result, error) {
	log := s.logger(target)
	log.Debug("working copy present, updating")

	storage, worktreeFS, err := gitfs.Workspace(root, target.LocalPath, s.opts.StorerCacheSize)
	if err != nil {
		return nil, s.blocked(target, err.Error())
	}

	repo, err := gogit.Open(storage, worktreeFS)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, s.blocked(target, "path is not a git working copy")
		}
		return nil, s.blocked(target, err.Error())
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, s.blocked(target, err.Error())
	}

	head, err := repo.Head()
	if err != nil {
		return nil, s.blocked(target, "cannot resolve HEAD")
	}
	if !head.Name().IsBranch() {
		return nil, s.blocked(target, "HEAD is detached")
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, s.blocked(target, err.Error())
	}
	if !status.IsClean() {
		return nil, s.blocked(target, "working copy has local modifications")
	}

	pullOpts := &gogit.PullOptions{
		RemoteName: s.opts.RemoteName,
		Depth:      s.opts.ShallowDepth,
	}

	if s.opts.Auth != nil {
		method, authErr := s.opts.Auth.Method(target.RemoteURL)
		if authErr != nil {
			return nil, &SyncError{
				Op:     OpUpdate,
				Target: target,
				Err:    WrapError(ErrUpdateFailed, authErr.Error()),
			}
		}
		pullOpts.Auth = method
	}

	action := ActionUpdated

	err = worktree.PullContext(ctx, pullOpts)
	switch {
	case err == nil:
	case errors.Is(err, gogit.NoErrAlreadyUpToDate):
		action = ActionUpToDate
	case errors.Is(err, gogit.ErrNonFastForwardUpdate):
		return nil, s.blocked(target, "local history has diverged from the remote")
	case errors.Is(err, gogit.ErrUnstagedChanges):
		return nil, s.blocked(target, "working copy has local modifications")
	default:
		return nil, &SyncError{Op: OpUpdate, Target: target, Err: WrapError(ErrUpdateFailed, err.Error())}
	}

	rev, err := headRevision(repo)
	if err != nil {
		return nil, &SyncError{Op: OpUpdate, Target: target, Err: WrapError(ErrUpdateFailed, err.Error())}
	}

	if action == ActionUpToDate {
		log.Debug("repository already up to date", "revision", rev)
	} else {
		log.Info("repository updated", "revision", rev)
	}

	return &Result{Action: action, Revision: rev}, nil
}

// blocked builds the ErrUpdateBlocked failure for the update branch.
func (s *Syncer) blocked(target Target, reason string) error {
	return &SyncError{Op: OpUpdate, Target: target, Err: WrapError(ErrUpdateBlocked, reason)}
}
