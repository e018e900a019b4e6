package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active customer account", func(t *testing.T) {
		user, err := NewUser("Shopper@Example.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, "shopper@example.com", user.Email)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.False(t, user.IsStaff)
		assert.True(t, user.VerifyPassword("password1"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "a@b", "@example.com"} {
			_, err := NewUser(email, "password1")
			assert.Error(t, err, "email %q", email)
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		for _, pw := range []string{"", "short1", "allletters", "12345678"} {
			_, err := NewUser("a@example.com", pw)
			assert.Error(t, err, "password %q", pw)
		}
	})

	t.Run("staff account", func(t *testing.T) {
		user, err := NewStaffUser("admin@example.com", "password1")
		require.NoError(t, err)
		assert.True(t, user.IsStaff)
	})

	t.Run("emits registered event", func(t *testing.T) {
		user, _ := NewUser("a@example.com", "password1")
		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserRegistered, events[0].EventType())
	})
}

func TestUserPasswords(t *testing.T) {
	user, err := NewUser("a@example.com", "password1")
	require.NoError(t, err)

	t.Run("change password verifies the old one", func(t *testing.T) {
		assert.Error(t, user.ChangePassword("wrong", "newpassword1"))
		require.NoError(t, user.ChangePassword("password1", "newpassword1"))
		assert.True(t, user.VerifyPassword("newpassword1"))
	})

	t.Run("admin reset skips verification", func(t *testing.T) {
		require.NoError(t, user.SetPassword("resetpass1"))
		assert.True(t, user.VerifyPassword("resetpass1"))
	})
}

func TestUserRoles(t *testing.T) {
	t.Run("customer accounts cannot hold roles", func(t *testing.T) {
		user, _ := NewUser("a@example.com", "password1")
		assert.Error(t, user.AssignRole(uuid.New()))
	})

	t.Run("assign and remove", func(t *testing.T) {
		user, _ := NewStaffUser("admin@example.com", "password1")
		roleID := uuid.New()

		require.NoError(t, user.AssignRole(roleID))
		assert.True(t, user.HasRole(roleID))
		assert.Error(t, user.AssignRole(roleID))

		require.NoError(t, user.RemoveRole(roleID))
		assert.False(t, user.HasRole(roleID))
		assert.Error(t, user.RemoveRole(roleID))
	})

	t.Run("set roles deduplicates", func(t *testing.T) {
		user, _ := NewStaffUser("admin@example.com", "password1")
		roleID := uuid.New()
		require.NoError(t, user.SetRoles([]uuid.UUID{roleID, roleID}))
		assert.Len(t, user.RoleIDs, 1)
	})

	t.Run("revoking staff access clears roles", func(t *testing.T) {
		user, _ := NewStaffUser("admin@example.com", "password1")
		require.NoError(t, user.AssignRole(uuid.New()))
		user.RevokeStaffAccess()
		assert.Empty(t, user.RoleIDs)
		assert.False(t, user.IsStaff)
	})
}

func TestUserLockout(t *testing.T) {
	t.Run("locks after max failed attempts", func(t *testing.T) {
		user, _ := NewUser("a@example.com", "password1")

		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("expired lock allows login", func(t *testing.T) {
		user, _ := NewUser("a@example.com", "password1")
		require.NoError(t, user.Lock(-time.Minute))
		require.NotNil(t, user.LockedUntil)
		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("unlock resets failure count", func(t *testing.T) {
		user, _ := NewUser("a@example.com", "password1")
		user.RecordLoginFailure(1, time.Hour)
		require.NoError(t, user.Unlock())
		assert.Equal(t, 0, user.FailedAttempts)
		assert.True(t, user.IsActive())
	})

	t.Run("successful login resets failures", func(t *testing.T) {
		user, _ := NewUser("a@example.com", "password1")
		user.RecordLoginFailure(5, time.Hour)
		user.RecordLoginSuccess("203.0.113.9")
		assert.Equal(t, 0, user.FailedAttempts)
		assert.Equal(t, "203.0.113.9", user.LastLoginIP)
		require.NotNil(t, user.LastLoginAt)
	})
}

func TestUserStatus(t *testing.T) {
	user, _ := NewUser("a@example.com", "password1")

	t.Run("deactivate blocks login", func(t *testing.T) {
		require.NoError(t, user.Deactivate())
		assert.False(t, user.CanLogin())
		assert.Error(t, user.Deactivate())
		assert.Error(t, user.Lock(time.Hour))
	})

	t.Run("reactivate", func(t *testing.T) {
		require.NoError(t, user.Activate())
		assert.True(t, user.CanLogin())
	})
}

func TestUserFullName(t *testing.T) {
	user, _ := NewUser("a@example.com", "password1")
	assert.Equal(t, "a@example.com", user.FullName())

	require.NoError(t, user.SetName("Ada", "Lovelace"))
	assert.Equal(t, "Ada Lovelace", user.FullName())
}
