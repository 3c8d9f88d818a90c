// Package domain models grant tokens, their audit trail, and the sessions a
// SESSION-mode redemption establishes. It carries the validation state
// machine and has no storage or transport dependencies.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/grantlink/grantlink/pkg/idx"
	"github.com/grantlink/grantlink/pkg/jwtx"
)

// LoginMode is the policy for how a validated token affects caller identity.
type LoginMode int

const (
	// LoginModeNone binds no identity; the token carries payload only.
	LoginModeNone LoginMode = iota

	// LoginModeRequest asserts the bound identity for the current request
	// only.
	LoginModeRequest

	// LoginModeSession establishes a durable session for the bound
	// identity. Session tokens are single-use with a fixed short expiry.
	LoginModeSession
)

// ParseLoginMode maps the external string form ("none", "request",
// "session"; empty defaults to none) to a LoginMode.
func ParseLoginMode(s string) (LoginMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LoginModeNone, nil
	case "request":
		return LoginModeRequest, nil
	case "session":
		return LoginModeSession, nil
	}
	return LoginModeNone, fmt.Errorf("unknown login mode %q", s)
}

func (m LoginMode) Valid() bool {
	return m == LoginModeNone || m == LoginModeRequest || m == LoginModeSession
}

func (m LoginMode) String() string {
	switch m {
	case LoginModeRequest:
		return "request"
	case LoginModeSession:
		return "session"
	default:
		return "none"
	}
}

// Effect is the identity side effect a successful validation requires.
type Effect int

const (
	// EffectNone applies no identity change.
	EffectNone Effect = iota

	// EffectBindRequest overrides the caller identity for this request
	// only.
	EffectBindRequest

	// EffectEstablishSession logs the bound identity in for the remainder
	// of the session.
	EffectEstablishSession
)

// Token is the durable record behind one issued grant token. Everything
// except UseCount (and ExpiresAt via the explicit expire operation) is
// write-once at creation; UseCount moves only through the store's atomic
// consume.
type Token struct {
	ID        idx.ID
	Scope     string
	LoginMode LoginMode
	Identity  string
	ExpiresAt *time.Time
	NotBefore *time.Time
	IssuedAt  time.Time
	MaxUses   int
	UseCount  int
	Payload   map[string]any
	Target    string

	// Encoded is the signed compact form handed to the recipient, kept for
	// operator text lookup.
	Encoded string
}

// TokenParams are the caller-supplied inputs to NewToken. Zero values mean
// "use the documented default".
type TokenParams struct {
	Scope     string
	LoginMode LoginMode
	Identity  string
	ExpiresAt *time.Time
	NotBefore *time.Time
	MaxUses   int
	Payload   map[string]any
	Target    string
}

// NewToken builds a fresh record. SESSION-mode tokens are normalised here:
// the use ceiling is forced to one and the expiry to now+sessionTTL no
// matter what the caller asked for, keeping a session token's blast radius
// small. Other tokens without an explicit ceiling get defaultMaxUses.
func NewToken(p TokenParams, now time.Time, defaultMaxUses int, sessionTTL time.Duration) (Token, error) {
	if strings.TrimSpace(p.Scope) == "" {
		return Token{}, ErrScopeRequired
	}
	if !p.LoginMode.Valid() {
		return Token{}, fmt.Errorf("invalid login mode %d", p.LoginMode)
	}
	if p.LoginMode != LoginModeNone && p.Identity == "" {
		return Token{}, ErrIdentityRequired
	}

	t := Token{
		ID:        idx.New(),
		Scope:     p.Scope,
		LoginMode: p.LoginMode,
		Identity:  p.Identity,
		ExpiresAt: p.ExpiresAt,
		NotBefore: p.NotBefore,
		IssuedAt:  now,
		MaxUses:   p.MaxUses,
		Payload:   p.Payload,
		Target:    p.Target,
	}

	if t.LoginMode == LoginModeSession {
		exp := now.Add(sessionTTL)
		t.ExpiresAt = &exp
		t.MaxUses = 1
	} else if t.MaxUses == 0 {
		t.MaxUses = defaultMaxUses
	}
	// Negative means explicitly unlimited.
	if t.MaxUses < 0 {
		t.MaxUses = 0
	}

	return t, nil
}

// EffectiveMaxUses is the enforced ceiling: always one for SESSION tokens,
// even if the stored row says otherwise; zero means unlimited.
func (t *Token) EffectiveMaxUses() int {
	if t.LoginMode == LoginModeSession {
		return 1
	}
	if t.MaxUses < 0 {
		return 0
	}
	return t.MaxUses
}

// Claims produces the claim set for this record. The codec signs it; the
// claims mirror the record one to one so Validate can cross-check them
// later.
func (t *Token) Claims() jwtx.Claims {
	c := jwtx.NewGrantClaims(
		t.ID.String(),
		t.Scope,
		t.Identity,
		int(t.LoginMode),
		t.MaxUses,
		t.IssuedAt,
		t.ExpiresAt,
		t.NotBefore,
	)
	c.Data = t.Payload
	c.Target = t.Target
	return c
}

// Validate checks decoded claims against this record and the request
// context. The check order is fixed and short-circuits on first failure:
// jti, scope, not-before, expiry, use count, target path, identity
// reconciliation. Claims are only ever inspected after the codec verified
// their signature.
//
// Boundary convention: nbf is inclusive (usable at exactly nbf) and exp is
// exclusive (expired at exactly exp).
//
// The use-count check here is advisory pre-flight; the authoritative
// enforcement is the store's atomic consume at the point of use.
func (t *Token) Validate(claims *jwtx.Claims, requestPath, currentIdentity string, now time.Time) (Effect, error) {
	if claims.GrantID() != t.ID.String() {
		return EffectNone, ErrClaimMismatch
	}

	if claims.Scope() != t.Scope {
		return EffectNone, ErrScopeMismatch
	}

	if t.NotBefore != nil && now.Before(*t.NotBefore) {
		return EffectNone, ErrTokenNotYetValid
	}

	if t.ExpiresAt != nil && !now.Before(*t.ExpiresAt) {
		return EffectNone, ErrTokenExpired
	}

	if maxUses := t.EffectiveMaxUses(); maxUses > 0 && t.UseCount >= maxUses {
		return EffectNone, ErrMaxUses
	}

	if t.Target != "" && requestPath != t.Target {
		return EffectNone, ErrTargetMismatch
	}

	switch t.LoginMode {
	case LoginModeNone:
		// Identity claims are ignored entirely in NONE mode, present or not.
		return EffectNone, nil

	case LoginModeRequest, LoginModeSession:
		if t.Identity == "" {
			return EffectNone, ErrIdentityRequired
		}
		if currentIdentity != "" && currentIdentity != t.Identity {
			return EffectNone, ErrIdentityMismatch
		}
		if t.LoginMode == LoginModeRequest {
			return EffectBindRequest, nil
		}
		return EffectEstablishSession, nil
	}

	return EffectNone, fmt.Errorf("invalid login mode %d", t.LoginMode)
}
