// Package auth holds the shared-secret access gate.
//
// The gate compares the secret a client presents with the configured one,
// byte for byte, on every request. The secret is kept in plaintext on both
// sides (config and cookie); there is no hashing, lockout or rate limiting.
package auth

const (
	CookieName    = "geofoto_secret"
	HeaderName    = "X-GeoFoto-Secret"
	DenialMessage = "Access denied. Enter the correct password."
)

type Gate struct {
	secret string
}

func NewGate(secret string) *Gate { return &Gate{secret: secret} }

// Allow reports whether candidate equals the configured secret. With no
// secret configured nothing is allowed.
func (g *Gate) Allow(candidate string) bool {
	return g.secret != "" && candidate == g.secret
}

// DenialObserver counts refused attempts.
type DenialObserver interface {
	ObserveDenial()
}
