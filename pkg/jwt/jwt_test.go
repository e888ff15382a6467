package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateToken_RoundTrip(t *testing.T) {
	tok, err := GenerateToken(secret, 42, TypeAccess, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TypeAccess, tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserNo)
	require.NotNil(t, claims.ExpiresAt)
}

func TestGenerateToken_NoExpiry(t *testing.T) {
	tok, err := GenerateToken(secret, 7, TypeAccess, 0)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TypeAccess, tok)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestParseToken_Rejects(t *testing.T) {
	tok, err := GenerateToken(secret, 7, TypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), TypeAccess, tok)
	assert.Error(t, err)

	_, err = ParseToken(secret, "refresh", tok)
	assert.Error(t, err)

	expired, err := GenerateToken(secret, 7, TypeAccess, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, TypeAccess, expired)
	assert.Error(t, err)
}
