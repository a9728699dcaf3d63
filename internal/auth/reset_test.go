package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordResetToken(t *testing.T) {
	plain, hashed, expires, err := NewPasswordResetToken()
	require.NoError(t, err)

	assert.Len(t, plain, 64) // 32 random bytes, hex encoded
	assert.NotEqual(t, plain, hashed)
	assert.Equal(t, HashToken(plain), hashed)
	assert.WithinDuration(t, time.Now().Add(PasswordResetTTL), expires, 5*time.Second)
}

func TestNewEmailVerificationToken(t *testing.T) {
	token, expires, err := NewEmailVerificationToken()
	require.NoError(t, err)

	assert.Len(t, token, 64)
	assert.WithinDuration(t, time.Now().Add(EmailVerificationTTL), expires, 5*time.Second)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 128) // sha512 hex
}

func TestTokensAreUnique(t *testing.T) {
	a, _, _, err := NewPasswordResetToken()
	require.NoError(t, err)
	b, _, _, err := NewPasswordResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
}
