package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_IssueResolve(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := m.Resolve(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", subject)
	}
}

func TestTokenManager_ResolveRejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	valid, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expired := NewTokenManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	otherSecret, err := NewTokenManager("other-secret", time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expiredToken},
		{"wrong_secret", otherSecret},
		{"alg_none", noneToken},
		{"tampered_payload", tampered},
		{"malformed", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Resolve(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "pw" {
		t.Fatal("hash must not equal the password")
	}
	if !VerifyPassword(hash, "pw") {
		t.Error("expected password to verify")
	}
	if VerifyPassword(hash, "pW") {
		t.Error("expected mismatched password to fail")
	}
	if VerifyPassword("not-a-hash", "pw") {
		t.Error("expected malformed hash to fail")
	}

	// must not panic on the unknown-account path
	BurnPasswordCheck("anything")
}
