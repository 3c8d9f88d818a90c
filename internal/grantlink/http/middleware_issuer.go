package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/grantlink/grantlink/pkg/cryptox"
	"github.com/grantlink/grantlink/pkg/grantsdk"
	"github.com/grantlink/grantlink/pkg/httpx"
)

// IssuerAuthMiddleware protects the issuing API with the configured API
// key, presented as "Authorization: Bearer <key>". The configured value is
// either an argon2id PHC string or the plaintext key; plaintext comparison
// is constant time.
func IssuerAuthMiddleware(configuredKey string) httpx.Middleware {
	isPHC := cryptox.IsPHCHash(configuredKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented, ok := bearerToken(r)
			if !ok || !issuerKeyMatches(presented, configuredKey, isPHC) {
				httpx.WriteJSON(w, http.StatusUnauthorized, grantsdk.ErrorResponse{
					Error:            grantsdk.ErrorCodeUnauthorized,
					ErrorDescription: "Valid issuer API key required",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(auth, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func issuerKeyMatches(presented, configured string, isPHC bool) bool {
	if isPHC {
		return cryptox.VerifySecret(presented, configured) == nil
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
