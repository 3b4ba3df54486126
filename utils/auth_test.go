package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	JwtKey = []byte("test-secret")

	token, err := GenerateJWT("6650f0a1b2c3d4e5f6a7b8c9", "shopper@example.com", RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "6650f0a1b2c3d4e5f6a7b8c9", claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	JwtKey = []byte("test-secret")
	token, err := GenerateJWT("6650f0a1b2c3d4e5f6a7b8c9", "shopper@example.com", RoleUser)
	require.NoError(t, err)

	JwtKey = []byte("another-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	JwtKey = []byte("test-secret")
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}
