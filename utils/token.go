package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// SessionClaims is the payload of a session cookie. Only the session
// id travels to the client; everything else lives server-side.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// TokenManager signs and verifies session cookie values.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret
// and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate signs a token carrying the session id.
func (tm *TokenManager) Generate(sessionID string) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tm.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Parse verifies a token and returns the embedded session id.
func (tm *TokenManager) Parse(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
