package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grantlink/grantlink/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func issuerProbe(t *testing.T, configuredKey, authHeader string) int {
	t.Helper()

	handler := IssuerAuthMiddleware(configuredKey)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestIssuerAuthPlaintext(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusNoContent, issuerProbe(t, "secret-key", "Bearer secret-key"))
	require.Equal(t, http.StatusNoContent, issuerProbe(t, "secret-key", "bearer secret-key"))

	require.Equal(t, http.StatusUnauthorized, issuerProbe(t, "secret-key", ""))
	require.Equal(t, http.StatusUnauthorized, issuerProbe(t, "secret-key", "Bearer wrong"))
	require.Equal(t, http.StatusUnauthorized, issuerProbe(t, "secret-key", "Basic secret-key"))
	require.Equal(t, http.StatusUnauthorized, issuerProbe(t, "secret-key", "Bearer"))
}

func TestIssuerAuthPHCHash(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashSecret("secret-key")
	require.NoError(t, err)

	require.Equal(t, http.StatusNoContent, issuerProbe(t, hash, "Bearer secret-key"))
	require.Equal(t, http.StatusUnauthorized, issuerProbe(t, hash, "Bearer wrong"))

	// The PHC string itself is not the key.
	require.Equal(t, http.StatusUnauthorized, issuerProbe(t, hash, "Bearer "+hash))
}
