package service

import (
	"os"
	"testing"
	"time"

	"crowdfund_webapp/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-secret")
	InitJWT()
}

func TestGenerateParseRoundTrip(t *testing.T) {
	initTestJWT(t)

	u := &domain.User{
		ID:      "user-1",
		Email:   "alice@example.com",
		Name:    "Alice",
		IsAdmin: true,
	}

	token, err := GenerateJWT(u)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.ID != u.ID || got.Email != u.Email || got.Name != u.Name || !got.IsAdmin {
		t.Fatalf("claims mismatch: %+v", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	initTestJWT(t)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseJWT(tok); err == nil {
			t.Fatalf("expected error for %q", tok)
		}
	}
}

func TestParseRejectsWrongSignature(t *testing.T) {
	initTestJWT(t)

	claims := jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(signed); err == nil {
		t.Fatal("expected error for token signed with wrong secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	initTestJWT(t)

	claims := jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}
