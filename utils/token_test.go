package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("session-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", sessionID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("session-123")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, value := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Parse(value)
		assert.Error(t, err, "value %q", value)
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate("session-123")
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}
