package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Argon2id parameters. Stored in every PHC string so they can be raised
// later without breaking existing hashes.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// LoadPepper reads the password pepper from path, creating the file with a
// fresh random value the first time. Must run before any hashing.
func LoadPepper(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("cryptox: pepper dir: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		SetPepper(string(data))
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("cryptox: read pepper: %w", err)
	}

	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("cryptox: generate pepper: %w", err)
	}
	value := base64.RawURLEncoding.EncodeToString(buf)

	if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
		return fmt.Errorf("cryptox: write pepper: %w", err)
	}

	SetPepper(value)
	return nil
}

// SetPepper installs the pepper directly. Tests use this to skip the file.
func SetPepper(value string) {
	pepperMu.Lock()
	pepper = value
	pepperMu.Unlock()
}

func currentPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}
