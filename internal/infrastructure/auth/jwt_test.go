package auth

import (
	"testing"
	"time"

	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough-for-hs256",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "backoffice-backend",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	t.Run("generates a valid signed token", func(t *testing.T) {
		svc := newTestJWTService()
		tenantID := uuid.New()
		userID := uuid.New()

		token, expiresAt, err := svc.GenerateToken(GenerateTokenInput{
			TenantID: tenantID,
			UserID:   userID,
			Username: "accounts@firm.example",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, tenantID.String(), claims.TenantID)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "accounts@firm.example", claims.Username)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("rejects garbage tokens", func(t *testing.T) {
		svc := newTestJWTService()

		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-value-here",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "backoffice-backend",
		})
		token, _, err := other.GenerateToken(GenerateTokenInput{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
		})
		require.NoError(t, err)

		svc := newTestJWTService()
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		svc := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-that-is-long-enough-for-hs256",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "backoffice-backend",
		})
		token, _, err := svc.GenerateToken(GenerateTokenInput{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestClaimsUUIDHelpers(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	claims := &Claims{TenantID: tenantID.String(), UserID: userID.String()}

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
}
