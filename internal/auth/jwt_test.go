package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "skillswap")
	require.NoError(t, err)

	tok, err := IssueToken(testSecret, "skillswap", Identity{UID: "u1", Email: "a@example.com", FirstName: "Ada", LastName: "Lovelace"}, time.Minute)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UID)
	assert.Equal(t, "a@example.com", id.Email)
	assert.Equal(t, "Ada", id.FirstName)
	assert.Equal(t, "Lovelace", id.LastName)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "skillswap")
	require.NoError(t, err)

	expired, err := IssueToken(testSecret, "skillswap", Identity{UID: "u1"}, -time.Minute)
	require.NoError(t, err)
	wrongIssuer, err := IssueToken(testSecret, "other", Identity{UID: "u1"}, time.Minute)
	require.NoError(t, err)
	wrongKey, err := IssueToken("another-secret-value", "skillswap", Identity{UID: "u1"}, time.Minute)
	require.NoError(t, err)
	noSubject, err := IssueToken(testSecret, "skillswap", Identity{}, time.Minute)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong issuer": wrongIssuer,
		"wrong key":    wrongKey,
		"no subject":   noSubject,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("  Grace   Brewster Hopper ")
	assert.Equal(t, "Grace", first)
	assert.Equal(t, "Brewster Hopper", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}
