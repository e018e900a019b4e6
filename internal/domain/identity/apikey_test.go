package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIKey(t *testing.T) {
	t.Run("mints key and stores only the hash", func(t *testing.T) {
		key, plaintext, err := NewAPIKey("CI deploy key")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(plaintext, "sk_"))
		assert.Equal(t, plaintext[:12], key.Prefix)
		assert.NotContains(t, key.KeyHash, plaintext)
		assert.True(t, key.Matches(plaintext))
		assert.False(t, key.Matches("sk_something_else"))
		assert.True(t, key.IsUsable())
	})

	t.Run("keys are unique", func(t *testing.T) {
		_, first, err := NewAPIKey("one")
		require.NoError(t, err)
		_, second, err := NewAPIKey("two")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, _, err := NewAPIKey("  ")
		assert.Error(t, err)
	})
}

func TestAPIKeyLifecycle(t *testing.T) {
	key, _, err := NewAPIKey("integration")
	require.NoError(t, err)

	t.Run("scopes must be a JSON array", func(t *testing.T) {
		require.NoError(t, key.SetScopes(`["product:read","order:read"]`))
		assert.Error(t, key.SetScopes(`{"product":"read"}`))
	})

	t.Run("expiry", func(t *testing.T) {
		key.SetExpiry(time.Now().Add(-time.Minute))
		assert.True(t, key.IsExpired())
		assert.False(t, key.IsUsable())

		key.SetExpiry(time.Time{})
		assert.False(t, key.IsExpired())
		assert.True(t, key.IsUsable())
	})

	t.Run("record use", func(t *testing.T) {
		require.Nil(t, key.LastUsedAt)
		key.RecordUse()
		require.NotNil(t, key.LastUsedAt)
	})

	t.Run("revoke is terminal", func(t *testing.T) {
		require.NoError(t, key.Revoke())
		assert.False(t, key.IsUsable())
		assert.Error(t, key.Revoke())
	})

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, key.Rename("renamed"))
		assert.Equal(t, "renamed", key.Name)
		assert.Error(t, key.Rename(""))
	})
}

func TestLookupHash(t *testing.T) {
	key, plaintext, err := NewAPIKey("lookup")
	require.NoError(t, err)
	assert.Equal(t, key.KeyHash, LookupHash(plaintext))
}
