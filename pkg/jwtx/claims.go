// Package jwtx is the claim codec for grant tokens: a compact HS256-signed
// JWS carrying the claims that mirror a stored grant record. Decode verifies
// the signature before anything else and never hands back unverified claims.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Login mode claim values. These are wire constants shared with the stored
// record; the claim name is "mod".
const (
	ModeNone    = 0 // token carries payload only, no identity effect
	ModeRequest = 1 // bound identity applies to the current request only
	ModeSession = 2 // bound identity establishes a durable session
)

// Claims is the grant token claim set. Registered claim usage: sub is the
// grant scope, aud the bound identity, jti the grant record id. Custom
// fields: max (use ceiling), mod (login mode), data (opaque payload).
type Claims struct {
	jwt.RegisteredClaims

	// Max mirrors the record's use ceiling. Zero means unlimited and is
	// omitted on the wire.
	Max int `json:"max,omitempty"`

	// Mode is always present on the wire, including ModeNone.
	Mode int `json:"mod"`

	// Data is the opaque payload handed verbatim to the guarded endpoint.
	Data map[string]any `json:"data,omitempty"`

	// Target restricts redemption to one request path when set.
	Target string `json:"target,omitempty"`
}

// NewGrantClaims builds a claim set for a grant record. exp and nbf are
// optional; nil leaves the claim unset.
func NewGrantClaims(jti, scope, identity string, mode, maxUses int, issuedAt time.Time, exp, nbf *time.Time) Claims {
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       jti,
			Subject:  scope,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
		Max:  maxUses,
		Mode: mode,
	}

	if identity != "" {
		c.Audience = jwt.ClaimStrings{identity}
	}
	if exp != nil {
		c.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	if nbf != nil {
		c.NotBefore = jwt.NewNumericDate(*nbf)
	}

	return c
}

// Identity returns the bound identity (first audience value) or "".
func (c *Claims) Identity() string {
	if len(c.Audience) == 0 {
		return ""
	}
	return c.Audience[0]
}

// Scope returns the sub claim.
func (c *Claims) Scope() string { return c.Subject }

// GrantID returns the jti claim.
func (c *Claims) GrantID() string { return c.ID }
