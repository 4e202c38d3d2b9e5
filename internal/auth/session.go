package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the application's view of the identity provider's current
// user. The provider owns the lifecycle; we only observe it.
type Session struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
	CreatedAt     time.Time
}

// SessionFromIDToken extracts session fields from an ID token's claims.
// The token signature has already been checked by the provider exchange,
// so this parse is structural only.
func SessionFromIDToken(rawToken string) (*Session, error) {
	if rawToken == "" {
		return nil, errors.New("empty token")
	}

	token, _, err := new(jwt.Parser).ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("subject claim not found in token")
	}

	session := &Session{UID: sub}

	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		session.DisplayName = name
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		session.EmailVerified = verified
	}
	if iat, ok := claims["iat"].(float64); ok {
		session.CreatedAt = time.Unix(int64(iat), 0)
	}

	return session, nil
}
