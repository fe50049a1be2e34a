package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the client-visible slice of the token payload. The client holds
// no signing key, so these values are decoded without verification and used
// for display only; the server's 401 remains the authority on validity.
type Claims struct {
	Email     string
	ExpiresAt time.Time
}

// ParseClaims decodes the token payload without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected token claims type")
	}

	claims := &Claims{}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is in the past. Tokens
// without an exp claim are treated as unexpired.
func (c *Claims) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}
