package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("SignedString() error: %v", err)
	}
	return token
}

func TestTokenExpired_LiveToken(t *testing.T) {
	token := signToken(t, time.Now().Add(time.Hour))
	if tokenExpired(token) {
		t.Error("tokenExpired() = true for a token valid another hour")
	}
}

func TestTokenExpired_PastExpiry(t *testing.T) {
	token := signToken(t, time.Now().Add(-time.Minute))
	if !tokenExpired(token) {
		t.Error("tokenExpired() = false for an expired token")
	}
}

func TestTokenExpired_WithinLeeway(t *testing.T) {
	// Tokens about to expire count as expired so a refresh lands first.
	token := signToken(t, time.Now().Add(10*time.Second))
	if !tokenExpired(token) {
		t.Error("tokenExpired() = false inside the leeway window")
	}
}

func TestTokenExpired_OpaqueTokenLeftToServer(t *testing.T) {
	if tokenExpired("not-a-jwt") {
		t.Error("tokenExpired() = true for an opaque token")
	}
	if tokenExpired("") {
		t.Error("tokenExpired() = true for an empty token")
	}
}
