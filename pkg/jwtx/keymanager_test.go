package jwtx_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewKeyManager_RequiresIssuer(t *testing.T) {
	_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)
}

func TestNewKeyManager_Ephemeral(t *testing.T) {
	opts := jwtx.KeyManagerOptions{Issuer: testIssuer}
	require.True(t, opts.Ephemeral())

	km, err := jwtx.NewKeyManager(opts)
	require.NoError(t, err)
	require.True(t, km.KeySet.IsReady())

	token, err := km.Signer.Sign(sessionClaims(time.Now().UTC(), time.Minute))
	require.NoError(t, err)

	claims, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "member-1", claims.AccountID)
}

func TestNewKeyManager_KeyFileSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "signing.pem")
	opts := jwtx.KeyManagerOptions{Issuer: testIssuer, KeyFile: path}

	first, err := jwtx.NewKeyManager(opts)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err := first.Signer.Sign(sessionClaims(time.Now().UTC(), time.Minute))
	require.NoError(t, err)

	second, err := jwtx.NewKeyManager(opts)
	require.NoError(t, err)
	require.Equal(t, first.Signer.KID(), second.Signer.KID())

	_, err = second.Verifier.Verify(token)
	require.NoError(t, err)
}
