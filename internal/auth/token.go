package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims embeds the registered claims; the subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens. The signing
// secret is process-wide state, read-only after startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token for the given user id with the configured expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject and issue time.
func (s *TokenService) Verify(tokenString string) (userID string, issuedAt time.Time, err error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return "", time.Time{}, ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return "", time.Time{}, ErrInvalidToken
	}

	return claims.Subject, claims.IssuedAt.Time, nil
}
