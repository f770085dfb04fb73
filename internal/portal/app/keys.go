package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
)

// InitSessionKeys loads the Ed25519 session signing key, generating it on
// first start. Without a key file the key lives only in memory.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		KeyFile: cfg.SigningKeyFile,
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}

	kid := km.KeySet.PublicJWKS().Keys[0].Kid
	if opts.Ephemeral() {
		logger.Warn("session signing key is ephemeral, sessions will not survive a restart", "kid", kid)
	} else {
		logger.Info("session signing key loaded", "kid", kid, "path", cfg.SigningKeyFile)
	}
	return km, nil
}
