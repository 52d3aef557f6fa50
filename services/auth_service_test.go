package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	auth, err := NewAuthService("admin", "s3cret", "test-secret")
	require.NoError(t, err)
	return auth
}

func TestLoginAndValidate(t *testing.T) {
	auth := newTestAuth(t)

	token, expiresAt, err := auth.Login(&LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(tokenLifetime), expiresAt, time.Minute)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuth(t)

	_, _, err := auth.Login(&LoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(&LoginRequest{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejects(t *testing.T) {
	auth := newTestAuth(t)
	token, _, err := auth.Login(&LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		auth.now = func() time.Time { return time.Now().Add(2 * tokenLifetime) }
		defer func() { auth.now = time.Now }()
		_, err := auth.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewAuthService("admin", "s3cret", "different")
		require.NoError(t, err)
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong role", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			Username: "admin",
			Role:     "player",
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = auth.ValidateToken(forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewAuthServiceRequiresSecrets(t *testing.T) {
	_, err := NewAuthService("admin", "", "secret")
	assert.Error(t, err)

	_, err = NewAuthService("admin", "pw", "")
	assert.Error(t, err)
}
