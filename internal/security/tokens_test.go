package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if subject != "admin" {
		t.Errorf("subject = %q, want %q", subject, "admin")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestEmptySecretRejectsEmptyKeyTokens(t *testing.T) {
	issuer := NewTokenIssuer("", time.Hour)

	// A token HMAC-signed with the empty key must not verify against an
	// issuer built without a configured secret.
	claims := jwt.RegisteredClaims{
		Subject:   "attacker",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte{})
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := issuer.Verify(forged); err != ErrInvalidToken {
		t.Errorf("Verify(empty-key token) error = %v, want ErrInvalidToken", err)
	}

	// The issuer's own tokens still round-trip.
	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if subject, err := issuer.Verify(token); err != nil || subject != "admin" {
		t.Errorf("Verify(own token) = %q, %v", subject, err)
	}

	// Two processes without a configured secret get distinct keys.
	other := NewTokenIssuer("", time.Hour)
	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() across issuers error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	if _, err := issuer.Verify("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
