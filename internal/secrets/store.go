// Package secrets stores the optional API token in the system keychain
// (macOS Keychain, Windows Credential Manager, or an encrypted file on
// Linux). The public API works without a token; storing one raises the
// upstream rate limits.
package secrets

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"threadloom/internal/config"
)

const tokenKey = "api-token"

// ErrNotFound is returned when no token has been stored.
var ErrNotFound = errors.New("no stored token")

// Store wraps a keyring for token storage.
type Store struct {
	ring keyring.Keyring
}

// Open opens the token store with the given backend: "auto" (or empty)
// lets the keyring library pick, "keychain" forces the OS keychain, and
// "file" forces the encrypted-file backend under the config directory.
func Open(backend string) (*Store, error) {
	cfg := keyring.Config{
		ServiceName: config.AppName,
	}

	switch backend {
	case "", "auto":
	case "keychain":
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend}
	case "file":
		dir, err := config.EnsureKeyringDir()
		if err != nil {
			return nil, err
		}
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		cfg.FileDir = dir
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(config.AppName)
	default:
		return nil, fmt.Errorf("unknown keyring backend: %s", backend)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

// newStore wraps an existing keyring; used by tests.
func newStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// SetToken stores the API token.
func (s *Store) SetToken(token string) error {
	err := s.ring.Set(keyring.Item{
		Key:   tokenKey,
		Label: config.AppName + " API token",
		Data:  []byte(token),
	})
	if err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	return nil
}

// Token returns the stored API token, or ErrNotFound.
func (s *Store) Token() (string, error) {
	item, err := s.ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading token: %w", err)
	}
	return string(item.Data), nil
}

// DeleteToken removes the stored API token. Deleting a token that was
// never stored is not an error.
func (s *Store) DeleteToken() error {
	err := s.ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
