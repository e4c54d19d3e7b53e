// Package gitfs builds go-git storage over the project's native filesystem
// abstraction. This keeps repository state scoped to an explicit path within
// an explicit filesystem, never the ambient working directory.
package gitfs

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
)

// minCacheSize is the fallback LRU cache size when callers pass an
// invalid value.
const minCacheSize = 100

// Billy unwraps an fs.Filesystem to the billy.Filesystem go-git operates on.
// The passed filesystem must be a billy-backed FS from the fs/billy package.
//
//nolint:ireturn // returns interface as required by billy.Filesystem interface
func Billy(fsys fs.Filesystem) (billy.Filesystem, error) {
	wrapper, ok := fsys.(*fsb.FS)
	if !ok {
		return nil, fmt.Errorf("filesystem must be a billy-backed FS from fs/billy, got %T", fsys)
	}

	return wrapper.Raw(), nil
}

// Workspace scopes root to localPath and returns git object storage rooted at
// its .git directory plus the worktree filesystem. The LRU object cache keeps
// frequently accessed objects in memory during the transfer.
func Workspace(root billy.Filesystem, localPath string, cacheSize int) (*filesystem.Storage, billy.Filesystem, error) {
	scoped, err := root.Chroot(localPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to chroot to %q: %w", localPath, err)
	}

	dotGit, err := scoped.Chroot(".git")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access .git under %q: %w", localPath, err)
	}

	if cacheSize <= 0 {
		cacheSize = minCacheSize
	}

	storage := filesystem.NewStorage(dotGit, cache.NewObjectLRU(cache.FileSize(cacheSize)))

	return storage, scoped, nil
}
