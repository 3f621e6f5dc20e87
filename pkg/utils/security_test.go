package utils

import (
	"testing"

	"sabor-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
}

func TestGenerateAndParseToken(t *testing.T) {
	config.Set(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})

	token, err := GenerateToken(42)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestParseTokenInvalid(t *testing.T) {
	config.Set(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})

	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
