package service

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	tokenTTL = 30 * 24 * time.Hour

	// Development fallback only. Real deployments set ANKH_TOKEN_SECRET.
	devTokenSecret = "ankh-dev-secret"
)

// Claims carried by a session token. The token is opaque to callers; nothing
// in the service authorizes based on it, it only marks a completed login.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenSigner mints and verifies HS256 session tokens.
type TokenSigner struct {
	secret []byte
}

func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret)}
}

// NewTokenSignerFromEnv reads ANKH_TOKEN_SECRET, falling back to the
// development secret when unset.
func NewTokenSignerFromEnv() *TokenSigner {
	secret := os.Getenv("ANKH_TOKEN_SECRET")
	if secret == "" {
		secret = devTokenSecret
	}
	return NewTokenSigner(secret)
}

func (s *TokenSigner) Sign(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return token, nil
}

func (s *TokenSigner) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse session token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
