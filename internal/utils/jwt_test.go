package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice", true, 24)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	claims, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestAccessTokenRegularUser(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "bob", false, 1)
	require.NoError(t, err)

	claims, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestParseRejectsWrongKey(t *testing.T) {
	tok, err := NewAccessToken("other-secret", "alice", true, 1)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice", false, -1)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := ParseAccessToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}

func TestParseRejectsTampered(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice", false, 1)
	require.NoError(t, err)

	tampered := tok.Token[:len(tok.Token)-2] + "xx"
	_, err = ParseAccessToken(testSecret, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
