package domain

import (
	"time"

	"github.com/grantlink/grantlink/pkg/idx"
)

// Session is the durable login a SESSION-mode redemption establishes. Only
// the SHA-256 fingerprint of the cookie value is stored; the raw value
// exists solely in the Set-Cookie response.
type Session struct {
	ID               idx.ID
	Identity         string
	TokenFingerprint string
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// Expired reports whether the session has passed its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
