package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/config"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "storefront-test",
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:      userID,
		Email:       "jane@example.com",
		IsStaff:     true,
		RoleIDs:     []uuid.UUID{uuid.New()},
		Permissions: []string{"products:read", "products:write"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	t.Run("access token carries identity and permissions", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.True(t, claims.IsStaff)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.True(t, claims.HasPermission("products:read"))
		assert.False(t, claims.HasPermission("roles:write"))
	})

	t.Run("refresh token carries minimal claims", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)

		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.Empty(t, claims.Permissions)
		assert.Equal(t, 0, claims.RefreshCount)
	})
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := testJWTService()

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects refresh token as access token", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "a@b.co"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-key-here",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "storefront-test",
			MaxRefreshCount:        3,
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "a@b.co"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-that-is-long-enough",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "storefront-test",
			MaxRefreshCount:        3,
		})
		pair, err := expired.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "a@b.co"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "jane@example.com"})
	require.NoError(t, err)

	t.Run("increments refresh count", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken, false, nil, nil)
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.RefreshCount)
	})

	t.Run("carries fresh permissions into new access token", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken, true, nil, []string{"orders:read"})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.True(t, claims.IsStaff)
		assert.True(t, claims.HasPermission("orders:read"))
	})

	t.Run("enforces max refresh count", func(t *testing.T) {
		current := pair.RefreshToken
		for i := 0; i < 3; i++ {
			newPair, err := svc.RefreshTokenPair(current, false, nil, nil)
			require.NoError(t, err)
			current = newPair.RefreshToken
		}

		_, err := svc.RefreshTokenPair(current, false, nil, nil)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("rejects access token as refresh token", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, false, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestClaims_Helpers(t *testing.T) {
	svc := testJWTService()
	roleID := uuid.New()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:      uuid.New(),
		Email:       "jane@example.com",
		RoleIDs:     []uuid.UUID{roleID},
		Permissions: []string{"a:read", "b:read"},
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ids, err := claims.GetRoleUUIDs()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{roleID}, ids)

	_, err = claims.GetUserUUID()
	assert.NoError(t, err)

	assert.True(t, claims.HasAnyPermission("x:read", "a:read"))
	assert.False(t, claims.HasAnyPermission("x:read"))
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
	assert.False(t, claims.GetExpiresAtTime().IsZero())
}
