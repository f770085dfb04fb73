package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetPepper("test-pepper")
	os.Exit(m.Run())
}

func TestHashPassword_PHCFormat(t *testing.T) {
	hash, err := HashPassword("Str0ng!Passw0rd")
	require.NoError(t, err)

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	require.Equal(t, "argon2id", parts[1])
	require.Equal(t, "v=19", parts[2])
	require.Equal(t, "m=19456,t=2,p=1", parts[3])
	require.NotEmpty(t, parts[4])
	require.NotEmpty(t, parts[5])
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.NoError(t, VerifyPassword("same", h1))
	require.NoError(t, VerifyPassword("same", h2))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	require.NoError(t, VerifyPassword("correct-password", hash))

	for _, wrong := range []string{"", "Correct-password", "correct-password ", strings.Repeat("x", 1000)} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrPasswordMismatch)
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	for name, h := range map[string]string{
		"empty":         "",
		"bcrypt":        "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"missing parts": "$argon2id$v=19$m=19456",
		"bad params":    "$argon2id$v=19$nope$c2FsdA$aGFzaA",
		"bad salt":      "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"bad hash":      "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",
		"old version":   "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("pw", h), ErrInvalidHash)
		})
	}
}

func TestPepperChangesHash(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	SetPepper("another-pepper")
	t.Cleanup(func() { SetPepper("test-pepper") })

	require.ErrorIs(t, VerifyPassword("pw", hash), ErrPasswordMismatch)
}

func TestLoadPepper_CreatesThenReuses(t *testing.T) {
	t.Cleanup(func() { SetPepper("test-pepper") })

	path := filepath.Join(t.TempDir(), "secrets", "pepper")
	require.NoError(t, LoadPepper(path))
	first := currentPepper()
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	SetPepper("")
	require.NoError(t, LoadPepper(path))
	require.Equal(t, first, currentPepper())
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]struct{}{}
	for range 50 {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, pw, 24)
		require.True(t, strings.ContainsAny(pw, lowerChars))
		require.True(t, strings.ContainsAny(pw, upperChars))
		require.True(t, strings.ContainsAny(pw, digitChars))
		require.True(t, strings.ContainsAny(pw, specialChars))

		_, dup := seen[pw]
		require.False(t, dup)
		seen[pw] = struct{}{}
	}
}
