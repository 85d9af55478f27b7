package auth_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/chatbot-service/internal/auth"
	"github.com/spec-kit/chatbot-service/internal/config"
)

func TestKeyringPlainKey(t *testing.T) {
	keyring := auth.NewKeyring(config.AuthConfig{APIKey: "SECRET123"})

	if err := keyring.Verify("SECRET123"); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
	if err := keyring.Verify("WRONG"); !errors.Is(err, auth.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential, got %v", err)
	}
	if err := keyring.Verify(""); !errors.Is(err, auth.ErrBadCredential) {
		t.Fatalf("empty credential accepted")
	}
}

func TestKeyringBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("SECRET123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash generation failed: %v", err)
	}
	keyring := auth.NewKeyring(config.AuthConfig{APIKeyHash: string(hash)})

	if err := keyring.Verify("SECRET123"); err != nil {
		t.Fatalf("valid key rejected against hash: %v", err)
	}
	if err := keyring.Verify("WRONG"); !errors.Is(err, auth.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential, got %v", err)
	}
}

func TestChatTokenRoundTrip(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 5)

	signed, expiresAt, err := tokens.IssueChatToken("web-user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatalf("expiry not set")
	}

	claims, err := tokens.ParseChatToken(signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "web-user" {
		t.Fatalf("claims user id = %q", claims.UserID)
	}
}

func TestChatTokenWrongSecretRejected(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", 5)
	verifier := auth.NewTokenManager("secret-b", 5)

	signed, _, err := issuer.IssueChatToken("web-user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.ParseChatToken(signed); err == nil {
		t.Fatalf("token signed with another secret accepted")
	}
}
