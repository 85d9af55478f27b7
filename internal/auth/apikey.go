package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/chatbot-service/internal/config"
)

// ErrBadCredential is returned for any credential mismatch. Callers map it
// to a permission-denied outcome before any dialogue logic runs.
var ErrBadCredential = errors.New("invalid credential")

// Keyring verifies the shared static credential. When the config carries a
// bcrypt hash the plaintext key is ignored and verification goes through
// bcrypt; otherwise a constant-time comparison is used.
type Keyring struct {
	key  []byte
	hash []byte
}

// NewKeyring builds the verifier from config.
func NewKeyring(cfg config.AuthConfig) *Keyring {
	kr := &Keyring{}
	if cfg.APIKeyHash != "" {
		kr.hash = []byte(cfg.APIKeyHash)
	} else {
		kr.key = []byte(cfg.APIKey)
	}
	return kr
}

// Verify checks the presented credential. Returns ErrBadCredential on any
// mismatch, including an empty presentation.
func (k *Keyring) Verify(presented string) error {
	if presented == "" {
		return ErrBadCredential
	}
	if len(k.hash) > 0 {
		if err := bcrypt.CompareHashAndPassword(k.hash, []byte(presented)); err != nil {
			return ErrBadCredential
		}
		return nil
	}
	if subtle.ConstantTimeCompare(k.key, []byte(presented)) != 1 {
		return ErrBadCredential
	}
	return nil
}
