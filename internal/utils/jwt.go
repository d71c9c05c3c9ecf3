package utils // utils provides helpers for token creation and hashing

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginToken is a signed HS256 JWT handed out at login, together with its
// expiry. The token carries the user's id, role and email so the middleware
// can authorize requests without a database round trip.
type LoginToken struct {
	Token string
	Exp   time.Time
}

// NewLoginToken builds and signs a JWT for a user. The claims are
// {id, role, email, exp, iat}; ttlDays controls the expiry (7 days in the
// standard configuration).
func NewLoginToken(secret string, userID uint64, role, email string, ttlDays int) (LoginToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"id":    userID,
		"role":  role,
		"email": email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return LoginToken{}, err
	}
	return LoginToken{Token: signed, Exp: exp}, nil
}

// NewShareToken returns an opaque random token for public project sharing.
// 32 bytes of secure randomness encoded as 64 hex characters; uniqueness is
// additionally guarded by the database constraint on invitations.token.
func NewShareToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
