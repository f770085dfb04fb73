package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, tc := range []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit", TokenSize128, 22},
		{"256-bit", TokenSize256, 43},
	} {
		t.Run(tc.name, func(t *testing.T) {
			token, err := GenerateToken(tc.size)
			require.NoError(t, err)
			require.Len(t, token, tc.wantLen)
			require.NotContains(t, token, "=")
			require.NotContains(t, token, "+")
			require.NotContains(t, token, "/")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestGenerateToken_NoCollisionsIn10k(t *testing.T) {
	const n = 10_000
	seen := make(map[string]struct{}, n)

	for range n {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token generated")
		seen[token] = struct{}{}
	}
}

func TestFingerprintToken(t *testing.T) {
	a1 := FingerprintToken("token-a")
	a2 := FingerprintToken("token-a")
	b := FingerprintToken("token-b")

	require.Equal(t, a1, a2)
	require.NotEqual(t, a1, b)
	require.Len(t, a1, 43)
}

func TestKeyedFingerprint(t *testing.T) {
	k1 := []byte("key-one")
	k2 := []byte("key-two")

	require.Equal(t, KeyedFingerprint(k1, "10.0.0.1"), KeyedFingerprint(k1, "10.0.0.1"))
	require.NotEqual(t, KeyedFingerprint(k1, "10.0.0.1"), KeyedFingerprint(k2, "10.0.0.1"))
	require.NotEqual(t, KeyedFingerprint(k1, "10.0.0.1"), FingerprintToken("10.0.0.1"))
}

func TestEqualSecret(t *testing.T) {
	require.True(t, EqualSecret("abc", "abc"))
	require.False(t, EqualSecret("abc", "abd"))
	require.False(t, EqualSecret("abc", ""))
}
