// Package reposync guarantees that a local path contains a working copy of a
// remote git repository at the latest remote state reachable without conflict
// resolution.
//
// The package exposes one task-oriented operation over go-git: Sync. Given a
// Target (remote locator + local path), Sync clones when the path is absent
// and fast-forwards when it is present. It never resolves conflicts, rebases,
// or switches branches; a working copy that cannot be cleanly updated fails
// with ErrUpdateBlocked and is left untouched. Failures are never retried
// internally.
//
// # Basic Usage
//
//	import (
//	    "context"
//
//	    billyfs "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
//	    "github.com/input-output-hk/catalyst-forge-libs/reposync"
//	)
//
//	syncer, err := reposync.New(&reposync.Options{
//	    FS: billyfs.NewBaseOSFS(),
//	})
//	if err != nil {
//	    // handle err
//	}
//
//	result, err := syncer.Sync(context.Background(), reposync.Target{
//	    RemoteURL: "https://github.com/example/repo.git",
//	    LocalPath: "/srv/checkouts/repo",
//	})
//	if err != nil {
//	    // handle err
//	}
//	fmt.Println(result.Action, result.Revision)
//
// # Error Handling
//
// Failures carry a *SyncError recording the branch that ran and the
// collaborator diagnostic, and unwrap to sentinel errors:
//
//	_, err := syncer.Sync(ctx, target)
//	if errors.Is(err, reposync.ErrUpdateBlocked) {
//	    // local state needs human attention; nothing was modified
//	}
//	if errors.Is(err, reposync.ErrRemoteUnreachable) {
//	    // the remote could not be resolved or contacted; the path was not created
//	}
//
// # Authentication
//
// Credentials are supplied through the AuthProvider interface. Ready-made
// HTTPS-token and SSH-key providers live in internal/auth and are wired up by
// the reposync command; library users can implement their own.
//
// # Concurrency
//
// A Syncer is safe for concurrent use. Calls for the same local path are
// coalesced into a single execution so the presence-check-then-act decision
// cannot race with itself; calls for distinct paths proceed independently.
// Cancellation of the in-flight transfer is the caller's responsibility via
// the context.
//
// # In-Memory Operation
//
// All operations work against the project's filesystem abstraction, so tests
// can run entirely in memory:
//
//	memFS := billyfs.NewInMemoryFS()
//	syncer, err := reposync.New(&reposync.Options{FS: memFS})
package reposync
