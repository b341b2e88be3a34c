// Package token peeks at server-issued access tokens without verifying them.
//
// Tokens are opaque bearer credentials in this layer: the server signs and
// validates them, the console only forwards them. The one useful local read
// is the exp claim, which lets session restore skip a round trip for a token
// that is already past its lifetime. A token that does not parse as a JWT is
// treated as opaque and assumed live; only a decoded, expired exp claim marks
// it stale.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspector reads claims from unverified tokens.
//
// Inspector performs no signature checks. Never use it as an authorization
// decision; the server-side 401/403 path remains the authority.
type Inspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewInspector creates an Inspector using wall-clock time.
func NewInspector() *Inspector {
	return &Inspector{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// NewInspectorAt creates an Inspector with an injected clock for tests.
func NewInspectorAt(now func() time.Time) *Inspector {
	if now == nil {
		now = time.Now
	}
	return &Inspector{
		parser: jwt.NewParser(),
		now:    now,
	}
}

// ExpiresAt returns the token's expiry and true when the token decodes as a
// JWT carrying an exp claim. Opaque or claim-less tokens return false.
func (i *Inspector) ExpiresAt(tokenString string) (time.Time, bool) {
	if tokenString == "" {
		return time.Time{}, false
	}
	parsed, _, err := i.parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Stale reports whether the token is decodable and already expired.
// Opaque tokens are never stale: absence of local knowledge defers to the
// server.
func (i *Inspector) Stale(tokenString string) bool {
	exp, ok := i.ExpiresAt(tokenString)
	if !ok {
		return false
	}
	return !exp.After(i.now())
}
