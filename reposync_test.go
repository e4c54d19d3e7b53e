package reposync

import (
	"testing"

	billyfs "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name:    "valid minimal options",
			opts:    Options{FS: billyfs.NewInMemoryFS()},
			wantErr: false,
		},
		{
			name:    "missing FS",
			opts:    Options{},
			wantErr: true,
		},
		{
			name:    "negative shallow depth",
			opts:    Options{FS: billyfs.NewInMemoryFS(), ShallowDepth: -1},
			wantErr: true,
		},
		{
			name:    "negative cache size",
			opts:    Options{FS: billyfs.NewInMemoryFS(), StorerCacheSize: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTarget)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("nil options", func(t *testing.T) {
		syncer, err := New(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTarget)
		assert.Nil(t, syncer)
	})

	t.Run("defaults are applied", func(t *testing.T) {
		syncer, err := New(&Options{FS: billyfs.NewInMemoryFS()})
		require.NoError(t, err)
		require.NotNil(t, syncer)

		assert.Equal(t, DefaultRemoteName, syncer.opts.RemoteName)
		assert.Equal(t, DefaultStorerCacheSize, syncer.opts.StorerCacheSize)
		assert.NotNil(t, syncer.opts.Logger)
	})

	t.Run("caller options are not mutated", func(t *testing.T) {
		opts := &Options{FS: billyfs.NewInMemoryFS()}
		_, err := New(opts)
		require.NoError(t, err)

		assert.Empty(t, opts.RemoteName, "New must work on a copy of the options")
		assert.Zero(t, opts.StorerCacheSize)
	})
}

func TestTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{
			name:    "valid target",
			target:  Target{RemoteURL: "https://example.com/repo.git", LocalPath: "/srv/repo"},
			wantErr: false,
		},
		{
			name:    "missing remote URL",
			target:  Target{LocalPath: "/srv/repo"},
			wantErr: true,
		},
		{
			name:    "missing local path",
			target:  Target{RemoteURL: "https://example.com/repo.git"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTarget)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAction_String(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionCloned, "cloned"},
		{ActionUpdated, "updated"},
		{ActionUpToDate, "up-to-date"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.String())
		})
	}
}
