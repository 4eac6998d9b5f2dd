package session

import (
	"fmt"
	"time"

	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the catalog service signs into its tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username string    `json:"username"`
	UserID   models.ID `json:"user_id"`
}

// Expiry returns the token's expiry, or the zero time if it has none.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Expired reports whether the token's expiry is before now.
func (c Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && exp.Before(now)
}

// Inspect decodes the claims of a token without verifying its signature.
//
// The client never holds the signing key, so the result is informational.
// Nothing here refreshes or expires the stored credential.
func Inspect(token string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: token is not a JWT: %v", shared.ErrDataShape, err)
	}
	return claims, nil
}
