package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)

	raw, err := codec.Issue("alice", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()))
	require.NotNil(t, claims.IssuedAt)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := &Codec{Secret: []byte("test-secret"), TTL: -time.Minute}

	raw, err := codec.Issue("alice", RoleUser)
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTamperedPayload(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)

	alice, err := codec.Issue("alice", RoleUser)
	require.NoError(t, err)
	bob, err := codec.Issue("bob", RoleAdmin)
	require.NoError(t, err)

	// bob's claims with alice's signature: the payload no longer matches
	// what was signed.
	aliceParts := strings.Split(alice, ".")
	bobParts := strings.Split(bob, ".")
	require.Len(t, aliceParts, 3)
	require.Len(t, bobParts, 3)

	spliced := bobParts[0] + "." + bobParts[1] + "." + aliceParts[2]
	_, err = codec.Verify(spliced)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)
	other := NewCodec([]byte("another-secret"), 15*time.Minute)

	raw, err := codec.Issue("alice", RoleUser)
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyMalformedToken(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformedToken, "input %q", raw)
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("ADMIN")
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	role, ok = ParseRole("USER")
	require.True(t, ok)
	assert.Equal(t, RoleUser, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
	_, ok = ParseRole("SUPERUSER")
	assert.False(t, ok)
}

func TestExpiryOf(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)

	raw, err := codec.Issue("alice", RoleUser)
	require.NoError(t, err)

	exp, ok := codec.ExpiryOf(raw)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	_, ok = codec.ExpiryOf("garbage")
	assert.False(t, ok)
}
