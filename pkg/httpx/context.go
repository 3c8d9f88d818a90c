// Package httpx holds the framework-free HTTP plumbing shared by the
// grantlink service: middleware chaining, JSON responses, per-key rate
// limiting, and the request-scoped caller identity.
package httpx

import "context"

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// WithIdentity returns a context carrying the caller identity. Used by the
// session middleware for cookie-resolved identities and by the token
// middleware when a REQUEST-mode grant binds one for the current request.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, identity)
}

// IdentityFromContext returns the caller identity, or "" for anonymous
// requests.
func IdentityFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyIdentity).(string); ok {
		return v
	}
	return ""
}
