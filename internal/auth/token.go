package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"duit/internal/core"
)

// Claims carries the registered claims plus the user identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenManager issues and verifies HS256-signed identity tokens. The
// signing secret is fixed at construction and read-only afterwards.
type TokenManager struct {
	secret   []byte
	validity time.Duration
}

func NewTokenManager(secret string, validity time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), validity: validity}
}

// Issue produces a signed token binding userID, valid from now for the
// configured duration.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		UserID: userID,
	})
	return token.SignedString(m.secret)
}

// Verify parses and checks the token signature and returns the bound user
// identifier. Any failure (bad signature, garbage payload, expiry, wrong
// algorithm) comes back as core.ErrInvalidToken. Verify does not treat an
// empty token specially; absence is handled before this layer.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, core.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return "", core.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", core.ErrInvalidToken
	}

	return claims.UserID, nil
}
