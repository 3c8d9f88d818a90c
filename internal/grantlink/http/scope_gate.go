package http

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/internal/obs"
	"github.com/grantlink/grantlink/pkg/grantsdk"
	"github.com/grantlink/grantlink/pkg/httpx"
)

// ScopeGate guards one operation with a grant token requirement. It sits
// inside TokenMiddleware in the chain and turns the middleware's outcome
// into an allow or deny, consumes a use at the point of use, and writes
// the audit entry after the guarded handler returns.
//
// Decision table: no token and not Required, the handler runs untouched
// and nothing is audited. No token and Required is a 401. A rejected token
// is denied with the mapped status. A valid token whose scope differs from
// the gate's is denied. A valid matching token has a use consumed first;
// only if the atomic increment succeeds does the handler run.
type ScopeGate struct {
	// Scope is the fixed scope this gate protects.
	Scope string

	// ScopePathParam, when set, derives the scope from that path value
	// instead of Scope.
	ScopePathParam string

	// Required makes a missing token a denial rather than a pass-through.
	Required bool

	Redeem *service.RedeemService
	Audit  *service.AuditService
}

// Middleware returns the gate as a chainable middleware.
func (g *ScopeGate) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g.serve(w, r, next)
		})
	}
}

func (g *ScopeGate) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	scope := g.Scope
	if g.ScopePathParam != "" {
		scope = r.PathValue(g.ScopePathParam)
	}

	attempt := grantAttemptFromContext(r.Context())

	if attempt == nil {
		if !g.Required {
			next.ServeHTTP(w, r)
			return
		}
		g.deny(w, r, nil, domain.ErrTokenRequired)
		return
	}

	if attempt.Err != nil {
		g.deny(w, r, attempt.Redemption, attempt.Err)
		return
	}

	redemption := attempt.Redemption
	if redemption.Token.Scope != scope {
		g.deny(w, r, redemption, domain.ErrScopeMismatch)
		return
	}

	// Point of use: the atomic increment is the authoritative use-count
	// check, after which the outcome stands even if the client goes away.
	if err := g.Redeem.Consume(r.Context(), redemption.Token.ID); err != nil {
		g.deny(w, r, redemption, err)
		return
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	next.ServeHTTP(rec, r)

	g.record(r, redemption, domain.OutcomeSuccess, rec.status)
}

func (g *ScopeGate) deny(w http.ResponseWriter, r *http.Request, redemption *service.Redemption, err error) {
	status := rejectionStatus(err)
	httpx.WriteJSON(w, status, rejectionEnvelope(err))

	outcome := domain.RejectionCode(err)
	if outcome == "" {
		outcome = grantsdk.ErrorCodeServerError
	}
	g.record(r, redemption, outcome, status)
}

func (g *ScopeGate) record(r *http.Request, redemption *service.Redemption, outcome string, status int) {
	entry := domain.TokenLog{
		Identity:   httpx.IdentityFromContext(r.Context()),
		ClientIP:   clientIP(r),
		UserAgent:  r.UserAgent(),
		Outcome:    outcome,
		StatusCode: status,
	}
	if redemption != nil {
		entry.TokenID = redemption.Token.ID
	}

	g.Audit.Record(r.Context(), entry)
	obs.Redemption(outcome)
}

func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrTokenRequired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrMaxUses):
		return http.StatusGone
	case domain.IsRejection(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func rejectionEnvelope(err error) grantsdk.ErrorResponse {
	switch {
	case errors.Is(err, domain.ErrTokenRequired):
		return grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeTokenRequired,
			ErrorDescription: "A grant token is required for this operation",
		}
	case errors.Is(err, domain.ErrMaxUses):
		return grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeTokenExhausted,
			ErrorDescription: "Token has no remaining uses",
		}
	case domain.IsRejection(err):
		return grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeTokenRejected,
			ErrorDescription: "Token rejected: " + domain.RejectionCode(err),
		}
	default:
		return grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeServerError,
			ErrorDescription: "Internal error",
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// clientIP is the first X-Forwarded-For hop when present, otherwise the
// peer address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
