package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	s := &AuthService{cost: bcrypt.MinCost}

	_, err := s.HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := s.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, s.VerifyPassword(hash, "correct horse"))
	assert.False(t, s.VerifyPassword(hash, "wrong horse"))
}

func TestGenerateStateToken(t *testing.T) {
	a, err := GetAuthService().GenerateStateToken()
	require.NoError(t, err)
	b, err := GetAuthService().GenerateStateToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}
