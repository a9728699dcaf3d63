package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"time"
)

const (
	PasswordResetTTL     = 10 * time.Minute
	EmailVerificationTTL = 24 * time.Hour
)

// NewPasswordResetToken generates a single-use reset token. The plaintext is
// emailed to the user; only the sha512 digest is persisted, so lookups go by
// hash and a leaked database never reveals a usable token.
func NewPasswordResetToken() (plain, hashed string, expires time.Time, err error) {
	plain, err = randomHex(32)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return plain, HashToken(plain), time.Now().Add(PasswordResetTTL), nil
}

// NewEmailVerificationToken generates a single-use verification token.
// Unlike reset tokens it is stored in plaintext and looked up directly.
func NewEmailVerificationToken() (token string, expires time.Time, err error) {
	token, err = randomHex(32)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().Add(EmailVerificationTTL), nil
}

// HashToken returns the hex sha512 digest of a token.
func HashToken(token string) string {
	sum := sha512.Sum512([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
