package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymops/backend/internal/infrastructure/config"
)

func testService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough-00",
		AccessTokenExpiration: expiration,
		Issuer:                "gymops-backend",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := testService(15 * time.Minute)
	tenantID, userID := uuid.New(), uuid.New()

	token, expiresAt, err := service.GenerateToken(tenantID, userID, "front-desk")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "front-desk", claims.Username)
	assert.Equal(t, "gymops-backend", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		_, err := testService(time.Minute).ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-0000",
			AccessTokenExpiration: time.Minute,
			Issuer:                "gymops-backend",
		})
		token, _, err := other.GenerateToken(uuid.New(), uuid.New(), "intruder")
		require.NoError(t, err)

		_, err = testService(time.Minute).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		service := testService(-time.Minute)
		token, _, err := service.GenerateToken(uuid.New(), uuid.New(), "late")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("unsigned algorithm is rejected", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			TenantID: uuid.New().String(),
			UserID:   uuid.New().String(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = testService(time.Minute).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing tenant claim", func(t *testing.T) {
		service := testService(time.Minute)
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			UserID: uuid.New().String(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret-that-is-long-enough-00"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrMissingTenantID)
	})

	t.Run("missing user claim", func(t *testing.T) {
		service := testService(time.Minute)
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			TenantID: uuid.New().String(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret-that-is-long-enough-00"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}
