package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateAccessToken(42, "host@example.com", []string{"admin"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "host@example.com", claims.Email)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("guest"))
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret)
	other := NewTokenManager("another-secret-key-also-32-chars-xx")

	token, err := tm.GenerateAccessToken(42, "host@example.com", nil)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager(testSecret)

	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
