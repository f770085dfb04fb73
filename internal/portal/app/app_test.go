package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORTAL_DATABASE_FILE", filepath.Join(dir, "portal.db"))
	t.Setenv("PORTAL_PEPPER_FILE", filepath.Join(dir, "secrets", "pepper"))
	t.Setenv("PORTAL_SIGNING_KEY_FILE", filepath.Join(dir, "secrets", "signing.pem"))
	t.Setenv("LOG_LEVEL", "error")
	return LoadConfig()
}

func TestNewWiresApplication(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NotNil(t, app.router)
	require.Equal(t, ":8080", app.server.Addr)
	require.FileExists(t, cfg.PepperFile)
	require.FileExists(t, cfg.SigningKeyFile)

	inv, err := app.InviteAdmin(context.Background(), "first@example.com", "First Admin")
	require.NoError(t, err)
	require.Equal(t, "first@example.com", inv.Admin.Email)
	require.True(t, inv.Admin.MustChangePassword)
	require.Contains(t, inv.SetupLink, "/admin-setup?token=")
	require.True(t, inv.Notification.Sent)
}

func TestSigningKeySurvivesRestart(t *testing.T) {
	cfg := testConfig(t)

	first, err := InitSessionKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	second, err := InitSessionKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, first.KeySet.PublicJWKS(), second.KeySet.PublicJWKS())
}

func TestMigrate(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, Migrate(cfg, slogx.Discard()))
	// Second run is a no-op.
	require.NoError(t, Migrate(cfg, slogx.Discard()))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionTTL = 0
	_, err := New(cfg)
	require.ErrorContains(t, err, "PORTAL_SESSION_TTL")
}
