package domain

import "errors"

// Rejection sentinels. Every way a grant token can be refused maps to
// exactly one of these, compared with errors.Is. Anything outside this list
// reaching the HTTP boundary is an infrastructure fault, not a rejection.
var (
	// ErrTokenDecode reports a wire string whose signature or structure did
	// not verify. Never carries partial claims.
	ErrTokenDecode = errors.New("token could not be decoded")

	// ErrTokenRequired reports a guarded endpoint that demands a token when
	// the request carried none.
	ErrTokenRequired = errors.New("token required but not provided")

	// ErrTokenNotFound reports a jti claim that resolves to no stored token.
	ErrTokenNotFound = errors.New("token not found")

	// ErrScopeMismatch reports a token presented to an endpoint with a
	// different scope. Usually a token used on the wrong endpoint rather
	// than an attack, so callers surface it distinctly.
	ErrScopeMismatch = errors.New("token scope does not match")

	// ErrMaxUses reports an exhausted use ceiling, including the atomic
	// refusal at the point of consumption.
	ErrMaxUses = errors.New("token has exceeded its maximum number of uses")

	// ErrTokenNotYetValid reports a token presented before its nbf instant.
	ErrTokenNotYetValid = errors.New("token is not yet valid")

	// ErrTokenExpired reports a token presented at or after its exp instant.
	ErrTokenExpired = errors.New("token has expired")

	// ErrClaimMismatch reports decoded claims that disagree with the stored
	// record they name, a desync between lookup and claim set.
	ErrClaimMismatch = errors.New("token claims do not match stored record")

	// ErrTargetMismatch reports a request path outside the token's target
	// constraint.
	ErrTargetMismatch = errors.New("token target does not match request path")

	// ErrIdentityMismatch reports a REQUEST or SESSION token redeemed by a
	// request already authenticated as a different principal. Hard
	// rejection; a token never silently overrides an authenticated caller.
	ErrIdentityMismatch = errors.New("token identity does not match authenticated caller")

	// ErrIdentityRequired reports a REQUEST or SESSION token without a
	// bound identity.
	ErrIdentityRequired = errors.New("login mode requires a bound identity")

	// ErrScopeRequired reports an issue request without a scope.
	ErrScopeRequired = errors.New("token scope is required")
)

// rejectionCodes maps each sentinel to the outcome code written to the
// audit log.
var rejectionCodes = []struct {
	err  error
	code string
}{
	{ErrTokenDecode, "decode_error"},
	{ErrTokenRequired, "token_required"},
	{ErrTokenNotFound, "token_not_found"},
	{ErrScopeMismatch, "scope_mismatch"},
	{ErrMaxUses, "max_uses"},
	{ErrTokenNotYetValid, "not_yet_valid"},
	{ErrTokenExpired, "expired"},
	{ErrClaimMismatch, "claim_mismatch"},
	{ErrTargetMismatch, "target_mismatch"},
	{ErrIdentityMismatch, "identity_mismatch"},
	{ErrIdentityRequired, "identity_required"},
}

// RejectionCode returns the audit outcome code for a rejection sentinel, or
// "" when err is not a rejection (infrastructure faults propagate instead
// of being audited as outcomes).
func RejectionCode(err error) string {
	for _, rc := range rejectionCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return ""
}

// IsRejection reports whether err is one of the typed rejection sentinels.
func IsRejection(err error) bool {
	return RejectionCode(err) != ""
}
