// Command reposync ensures a git repository is present locally and up to
// date, then exits. Exit code 0 means the local path holds a working copy at
// the latest remote state reachable by fast-forward; any failure exits
// non-zero with the diagnostic on stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	billyfs "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/reposync"
	"github.com/input-output-hk/catalyst-forge-libs/reposync/internal/auth"
)

// tokenEnvVar is consulted when --token is not given.
const tokenEnvVar = "REPOSYNC_TOKEN"

type rootFlags struct {
	depth         int
	remoteName    string
	token         string
	sshKey        string
	sshPassphrase string
	timeout       time.Duration
	verbose       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "reposync <remote-url> [local-path]",
		Short: "Clone a git repository or fast-forward an existing working copy",
		Long: `Ensure a git repository is present locally and up to date.

If the local path does not exist the repository is cloned there. If it
exists it is fast-forwarded to the latest remote state. Anything that
would need conflict resolution (local edits, detached HEAD, diverged
history) fails instead of being reconciled automatically.

When local-path is omitted the working copy goes under the XDG data
directory, keyed by the repository name.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().IntVar(&flags.depth, "depth", 0, "Shallow clone/fetch depth (0 for full history)")
	cmd.Flags().StringVar(&flags.remoteName, "remote", reposync.DefaultRemoteName, "Remote name used for clone and update")
	cmd.Flags().StringVar(&flags.token, "token", "", "HTTPS token for authentication (or "+tokenEnvVar+")")
	cmd.Flags().StringVar(&flags.sshKey, "ssh-key", "", "SSH private key file for authentication")
	cmd.Flags().StringVar(&flags.sshPassphrase, "ssh-passphrase", "", "Passphrase for the SSH private key")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Abort the sync after this duration (0 for no limit)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runSync(ctx context.Context, flags *rootFlags, args []string) error {
	remoteURL := args[0]

	localPath, err := resolveDestination(remoteURL, args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	syncer, err := reposync.New(&reposync.Options{
		FS:           billyfs.NewBaseOSFS(),
		Auth:         authProvider(flags),
		RemoteName:   flags.remoteName,
		ShallowDepth: flags.depth,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	result, err := syncer.Sync(ctx, reposync.Target{
		RemoteURL: remoteURL,
		LocalPath: localPath,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s @ %s\n", result.Action, localPath, result.Revision)

	return nil
}

// resolveDestination picks the local path for the working copy. An explicit
// second argument wins and is made absolute so the sync core never depends on
// the ambient working directory; otherwise the path is derived from the
// repository name under the XDG data directory.
func resolveDestination(remoteURL string, args []string) (string, error) {
	if len(args) > 1 {
		abs, err := filepath.Abs(args[1])
		if err != nil {
			return "", fmt.Errorf("failed to resolve local path %q: %w", args[1], err)
		}
		return abs, nil
	}

	name := repoName(remoteURL)
	if name == "" {
		return "", fmt.Errorf("cannot derive a destination from %q, pass a local path", remoteURL)
	}

	return filepath.Join(xdg.DataHome, "reposync", name), nil
}

// repoName extracts the repository name from a remote locator, tolerating
// https, ssh and scp-like git@host:path forms.
func repoName(remoteURL string) string {
	name := strings.TrimSuffix(remoteURL, "/")
	name = strings.TrimSuffix(name, ".git")

	if idx := strings.LastIndexAny(name, "/:"); idx != -1 {
		name = name[idx+1:]
	}

	return name
}

// authProvider builds the auth provider for the configured credentials,
// or nil when none were supplied.
func authProvider(flags *rootFlags) reposync.AuthProvider {
	if flags.sshKey != "" {
		return auth.NewSSHKeyProvider(flags.sshKey, flags.sshPassphrase)
	}

	token := flags.token
	if token == "" {
		token = os.Getenv(tokenEnvVar)
	}
	if token != "" {
		return auth.NewTokenProvider(token)
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
