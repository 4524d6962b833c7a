package utils

import (
	"testing"
	"time"
)

const (
	testSecret        = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func TestIssuePairAndVerify(t *testing.T) {
	pair, err := IssuePair(testSecret, testRefreshSecret, "uuid-1", "admin", "admin", time.Hour, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	claims, err := VerifyToken(testSecret, pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.Subject != "uuid-1" {
		t.Errorf("subject = %q, want uuid-1", claims.Subject)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %q/%q, want admin/admin", claims.Username, claims.Role)
	}

	if _, err := VerifyToken(testRefreshSecret, pair.RefreshToken); err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
}

func TestIssuedTokensAreDistinct(t *testing.T) {
	// Tokens minted back-to-back land in the same second, so without a
	// unique jti they would be byte-identical and refresh rotation could
	// never invalidate the previous token.
	a, err := NewToken(testRefreshSecret, "uuid-1", "alice", "admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewToken(testRefreshSecret, "uuid-1", "alice", "admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two tokens issued for the same user in the same second are identical")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewToken(testSecret, "uuid-1", "admin", "admin", time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, err := VerifyToken("other-secret", tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenRejectsCrossSecretUse(t *testing.T) {
	// A refresh token must never validate as an access token.
	pair, err := IssuePair(testSecret, testRefreshSecret, "uuid-1", "bob", "user", time.Hour, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	if _, err := VerifyToken(testSecret, pair.RefreshToken); err != ErrInvalidToken {
		t.Fatalf("refresh verified with access secret: %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	tok, err := NewToken(testSecret, "uuid-1", "admin", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, err := VerifyToken(testSecret, tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	if _, err := VerifyToken(testSecret, "not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
