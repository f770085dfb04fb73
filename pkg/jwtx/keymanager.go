package jwtx

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
)

// KeyManager owns the signing key and the matching verifier.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// KeyManagerOptions configures NewKeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string

	// KeyFile holds the PKCS8 PEM signing key. It is created on first start
	// so sessions survive restarts. Empty means an in-memory key.
	KeyFile string
}

// NewKeyManager loads or generates the Ed25519 signing key and wires the
// verifier around it.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}

	pemKey, err := loadOrCreateKey(opts.KeyFile)
	if err != nil {
		return nil, err
	}

	kid, err := keyID(pemKey)
	if err != nil {
		return nil, err
	}

	signer, err := NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, err
	}

	keys := NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add signer: %w", err)
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: NewVerifierEdDSA(keys, opts.Issuer, opts.Audience),
		KeySet:   keys,
	}, nil
}

// Ephemeral reports whether tokens will be invalidated by a restart.
func (o KeyManagerOptions) Ephemeral() bool { return o.KeyFile == "" }

func loadOrCreateKey(path string) ([]byte, error) {
	if path == "" {
		return cryptox.GenerateEd25519Key()
	}

	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("jwtx: read signing key: %w", err)
	}

	data, err = cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("jwtx: key dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("jwtx: write signing key: %w", err)
	}
	return data, nil
}

// keyID derives a stable kid from the public key so restarts with the same
// key file keep the same kid.
func keyID(pemKey []byte) (string, error) {
	s, err := NewSignerEdDSA("", pemKey)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(s.pub)
	return "portal-" + base64.RawURLEncoding.EncodeToString(sum[:12]), nil
}
