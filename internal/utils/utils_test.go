package utils

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginTokenRoundTrip(t *testing.T) {
	lt, err := NewLoginToken("secret", 42, "admin", "a@b.fr", 7)
	require.NoError(t, err)
	assert.NotEmpty(t, lt.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), lt.Exp, time.Minute)

	tok, err := jwt.Parse(lt.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "a@b.fr", claims["email"])
	assert.NotNil(t, claims["exp"])
	assert.NotNil(t, claims["iat"])
}

func TestNewLoginTokenWrongSecret(t *testing.T) {
	lt, err := NewLoginToken("secret", 1, "user", "u@b.fr", 7)
	require.NoError(t, err)

	_, err = jwt.Parse(lt.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestNewShareToken(t *testing.T) {
	tok, err := NewShareToken()
	require.NoError(t, err)
	assert.Len(t, tok, 64)
	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)

	other, err := NewShareToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("motdepasse", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", hash)

	assert.True(t, VerifyPassword(hash, "motdepasse"))
	assert.False(t, VerifyPassword(hash, "autre"))
	assert.False(t, VerifyPassword("not-a-hash", "motdepasse"))
}

func TestPasswordHashLowCostFallsBack(t *testing.T) {
	// A zero or negative cost must not produce a weaker-than-minimum hash.
	hash, err := HashPassword("motdepasse", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "motdepasse"))
}
