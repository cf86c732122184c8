package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenVerify(t *testing.T) {
	t.Parallel()
	tok, err := NewAccessToken("s3cret", 42, "CUSTOMER", 5)
	require.NoError(t, err)

	claims, err := ParseAccessToken("s3cret", tok.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "CUSTOMER", claims.Role)

	_, err = ParseAccessToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpired(t *testing.T) {
	t.Parallel()
	tok, err := NewAccessToken("s3cret", 42, "CUSTOMER", -1)
	require.NoError(t, err)
	_, err = ParseAccessToken("s3cret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "1", "exp": 9999999999}).
		SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ParseAccessToken("s3cret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()
	a, err := NewRefreshToken(1)
	require.NoError(t, err)
	b, err := NewRefreshToken(1)
	require.NoError(t, err)
	assert.Len(t, a.Raw, 96)
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.Len(t, HashRefreshRaw(a.Raw), 64)
	assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
}

func TestPasswords(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, CheckPassword("short"), ErrWeakPassword)
	assert.ErrorIs(t, CheckPassword(strings.Repeat("x", 73)), ErrWeakPassword)
	assert.NoError(t, CheckPassword("long enough"))

	h, err := HashPassword("long enough", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(h, "long enough"))
	assert.False(t, VerifyPassword(h, "wrong one"))
}
