package grantsdk

import "time"

// ErrorResponse is the standard error envelope every grantlink endpoint
// uses for non-2xx responses.
type ErrorResponse struct {
	// Error is the machine-readable code (e.g. "invalid_request",
	// "token_rejected", "server_error").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// TokenRequest is the mint request for POST /v1/tokens. Scope is the only
// required field; everything else has a documented default.
type TokenRequest struct {
	// Scope names the operation this token grants (e.g. "unsubscribe").
	Scope string `json:"scope"`

	// LoginMode is "none" (default), "request", or "session".
	LoginMode string `json:"login_mode,omitempty"`

	// Identity is the subject the token is bound to. Required for the
	// "request" and "session" modes, forbidden to matter in "none".
	Identity string `json:"identity,omitempty"`

	// ExpiresIn is the token lifetime in seconds from issuance. Mutually
	// exclusive with ExpiresAt; ExpiresAt wins when both are set.
	ExpiresIn int64 `json:"expires_in,omitempty"`

	// ExpiresAt is an absolute Unix-seconds expiry.
	ExpiresAt int64 `json:"expires_at,omitempty"`

	// NotBefore is a Unix-seconds activation time; the token is unusable
	// before it.
	NotBefore int64 `json:"not_before,omitempty"`

	// MaxUses caps successful uses; 0 means the server default, -1 means
	// unlimited. Ignored for session tokens, which are always single-use.
	MaxUses int `json:"max_uses,omitempty"`

	// Payload is an arbitrary JSON object carried inside the token.
	Payload map[string]any `json:"payload,omitempty"`

	// Target restricts the token to one request path.
	Target string `json:"target,omitempty"`
}

// TokenResponse is the full token record as the issuing API reports it,
// returned by mint, get, and expire.
type TokenResponse struct {
	ID        string         `json:"id"`
	Scope     string         `json:"scope"`
	LoginMode string         `json:"login_mode"`
	Identity  string         `json:"identity,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	NotBefore *time.Time     `json:"not_before,omitempty"`
	IssuedAt  time.Time      `json:"issued_at"`
	MaxUses   int            `json:"max_uses"`
	UseCount  int            `json:"use_count"`
	Payload   map[string]any `json:"payload,omitempty"`
	Target    string         `json:"target,omitempty"`

	// Token is the signed compact form to hand to the recipient.
	Token string `json:"token"`

	// Link is the public URL with the token already attached, ready to
	// embed in an email. Only set on mint.
	Link string `json:"link,omitempty"`
}

// TokenLogEntry is one audit record for a guarded-use attempt.
type TokenLogEntry struct {
	ID         string    `json:"id"`
	TokenID    string    `json:"token_id,omitempty"`
	Identity   string    `json:"identity,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"status_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// TokenLogsResponse is the audit listing for one token, newest first.
type TokenLogsResponse struct {
	TokenID string          `json:"token_id"`
	Entries []TokenLogEntry `json:"entries"`
}

// RedeemResponse is what the demonstration guarded endpoint echoes back on
// a successful redemption.
type RedeemResponse struct {
	Scope    string         `json:"scope"`
	Identity string         `json:"identity,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// HealthResponse is returned by GET /livez and GET /readyz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`

	// Checks is only populated by the readiness endpoint.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
