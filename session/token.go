package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway pads local expiry checks so a token about to expire is
// refreshed before the server rejects it.
const expiryLeeway = 30 * time.Second

// tokenExpiry extracts the exp claim without verifying the signature.
// The server remains the authority on token validity; this exists only
// to decide locally whether a refresh is worth attempting. A missing or
// unparseable claim yields a zero time.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// tokenExpired reports whether the token's exp claim has passed (with
// leeway). Tokens without a readable exp claim are treated as live and
// left to the server to judge.
func tokenExpired(token string) bool {
	exp := tokenExpiry(token)
	if exp.IsZero() {
		return false
	}
	return time.Now().Add(expiryLeeway).After(exp)
}
