package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenProvider_NewProviders(t *testing.T) {
	t.Run("NewTokenProvider", func(t *testing.T) {
		provider := NewTokenProvider("token123")
		assert.NotNil(t, provider)
		require.NotNil(t, provider.auth)
		assert.Equal(t, "token", provider.auth.Username)
		assert.Equal(t, "token123", provider.auth.Password)
	})

	t.Run("NewBasicProvider", func(t *testing.T) {
		provider := NewBasicProvider("user", "pass")
		assert.NotNil(t, provider)
		require.NotNil(t, provider.auth)
		assert.Equal(t, "user", provider.auth.Username)
		assert.Equal(t, "pass", provider.auth.Password)
	})

	t.Run("NewBasicProvider with empty username", func(t *testing.T) {
		provider := NewBasicProvider("", "token123")
		require.NotNil(t, provider.auth)
		assert.Equal(t, "token123", provider.auth.Username)
		assert.Empty(t, provider.auth.Password)
	})
}

func TestTokenProvider_Method(t *testing.T) {
	tests := []struct {
		name      string
		provider  *TokenProvider
		remoteURL string
		wantAuth  bool
		wantError bool
	}{
		{
			name:      "HTTPS URL returns auth",
			provider:  NewTokenProvider("token123"),
			remoteURL: "https://github.com/user/repo.git",
			wantAuth:  true,
			wantError: false,
		},
		{
			name:      "SSH URL returns error",
			provider:  NewTokenProvider("token123"),
			remoteURL: "ssh://git@github.com/user/repo.git",
			wantAuth:  false,
			wantError: true,
		},
		{
			name:      "allowed host matches",
			provider:  NewTokenProvider("token123").WithAllowedHosts("github.com"),
			remoteURL: "https://github.com/user/repo.git",
			wantAuth:  true,
			wantError: false,
		},
		{
			name:      "wildcard host matches",
			provider:  NewTokenProvider("token123").WithAllowedHosts("*.example.com"),
			remoteURL: "https://git.example.com/repo.git",
			wantAuth:  true,
			wantError: false,
		},
		{
			name:      "host not allowed returns nil",
			provider:  NewTokenProvider("token123").WithAllowedHosts("gitlab.com"),
			remoteURL: "https://github.com/user/repo.git",
			wantAuth:  false,
			wantError: false,
		},
		{
			name:      "invalid URL",
			provider:  NewTokenProvider("token123"),
			remoteURL: "://invalid-url",
			wantAuth:  false,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := tt.provider.Method(tt.remoteURL)

			if tt.wantError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.wantAuth {
				assert.NotNil(t, method)
			} else {
				assert.Nil(t, method)
			}
		})
	}
}
