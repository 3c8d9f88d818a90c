// Package http is the HTTP surface of the grantlink service: the issuing
// API, the token middleware + scope gate that guard operations, and the
// system endpoints.
package http

import (
	"context"

	"github.com/grantlink/grantlink/internal/grantlink/service"
)

type ctxKey string

const ctxKeyGrantAttempt ctxKey = "grant_attempt"

// grantAttempt is what the token middleware leaves on the request context
// when a token was presented: either a successful redemption or the typed
// rejection, for the scope gate to act on. No attempt on the context means
// no token was presented.
type grantAttempt struct {
	Redemption *service.Redemption
	Err        error
}

func withGrantAttempt(ctx context.Context, a *grantAttempt) context.Context {
	return context.WithValue(ctx, ctxKeyGrantAttempt, a)
}

func grantAttemptFromContext(ctx context.Context) *grantAttempt {
	a, _ := ctx.Value(ctxKeyGrantAttempt).(*grantAttempt)
	return a
}

// RedemptionFromContext returns the successful redemption attached by the
// token middleware, or nil. Guarded handlers behind a required gate can
// rely on it being present.
func RedemptionFromContext(ctx context.Context) *service.Redemption {
	a := grantAttemptFromContext(ctx)
	if a == nil || a.Err != nil {
		return nil
	}
	return a.Redemption
}
