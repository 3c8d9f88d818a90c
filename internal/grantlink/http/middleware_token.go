package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/pkg/httpx"
	"github.com/grantlink/grantlink/pkg/jwtx"
)

// maxExtractionBody caps how much of a request body the extractor will
// buffer while looking for a token field.
const maxExtractionBody = 1 << 20

// TokenMiddleware extracts a grant token from the request, runs the
// validation pipeline, and leaves the outcome on the context for the scope
// gate. Requests without a token pass through untouched: absence only
// matters to gates that require one.
//
// Extraction precedence is query parameter, then POST form field, then
// JSON body field; the first non-empty value wins. Values that do not even
// look like a compact JWS count as no token at all, so random garbage in
// the parameter never reaches the cryptographic path.
func TokenMiddleware(redeem *service.RedeemService, param string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r, param)
			if raw == "" || !jwtx.LooksLikeToken(raw) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			redemption, err := redeem.Validate(ctx, raw, r.URL.Path, httpx.IdentityFromContext(ctx))
			if err != nil {
				ctx = withGrantAttempt(ctx, &grantAttempt{Redemption: redemption, Err: err})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = withGrantAttempt(ctx, &grantAttempt{Redemption: redemption})

			switch redemption.Effect {
			case domain.EffectBindRequest:
				ctx = httpx.WithIdentity(ctx, redemption.Token.Identity)
			case domain.EffectEstablishSession:
				ctx = httpx.WithIdentity(ctx, redemption.Token.Identity)
				http.SetCookie(w, newSessionCookie(
					redemption.SessionCookie,
					redeem.Sessions.TTL,
				))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the token value from the request without consuming
// the body: form and JSON bodies are re-buffered so the guarded handler
// can still read them.
func extractToken(r *http.Request, param string) string {
	if v := r.URL.Query().Get(param); v != "" {
		return v
	}

	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		body, ok := rebuffer(r)
		if !ok {
			return ""
		}
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return ""
		}
		return values.Get(param)

	case "application/json":
		body, ok := rebuffer(r)
		if !ok {
			return ""
		}
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			return ""
		}
		if v, ok := fields[param].(string); ok {
			return v
		}
	}

	return ""
}

func rebuffer(r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxExtractionBody))
	if err != nil {
		return nil, false
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, true
}
