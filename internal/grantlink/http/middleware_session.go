package http

import (
	"net/http"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/pkg/httpx"
)

// SessionCookieName is the cookie carrying the opaque session token a
// SESSION-mode redemption establishes.
const SessionCookieName = "grantlink_session"

// SessionMiddleware resolves the session cookie to its identity and puts
// it on the request context. Unknown or expired cookies leave the request
// anonymous; they are never an error on their own.
func SessionMiddleware(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := httpx.WithIdentity(r.Context(), session.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newSessionCookie builds the Set-Cookie for a freshly established session.
func newSessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
