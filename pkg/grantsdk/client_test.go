package grantsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIssueToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/tokens", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "unsubscribe", req.Scope)
		require.Equal(t, 2, req.MaxUses)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(TokenResponse{
			ID:      "01ARZ3NDEKTSV4RRFFQ69G5FAV",
			Scope:   req.Scope,
			MaxUses: req.MaxUses,
			Token:   "aaa.bbb.ccc",
			Link:    "https://example.com/u?rt=aaa.bbb.ccc",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	resp, err := client.IssueToken(context.Background(), TokenRequest{
		Scope:   "unsubscribe",
		MaxUses: 2,
	})
	require.NoError(t, err)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", resp.ID)
	require.Equal(t, "aaa.bbb.ccc", resp.Token)
	require.NotEmpty(t, resp.Link)
}

func TestClientGetTokenNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error:            ErrorCodeNotFound,
			ErrorDescription: "Token not found",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	_, err := client.GetToken(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeNotFound, apiErr.Code)
}

func TestClientExpireToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/tokens/tok-1/expire", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TokenResponse{ID: "tok-1"})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	resp, err := client.ExpireToken(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.ID)
}

func TestClientListTokenLogs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tokens/tok-1/logs", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		require.Equal(t, "10", r.URL.Query().Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TokenLogsResponse{
			TokenID: "tok-1",
			Entries: []TokenLogEntry{{Outcome: "success", StatusCode: 200}},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	resp, err := client.ListTokenLogs(context.Background(), "tok-1", 5, 10)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "success", resp.Entries[0].Outcome)
}

func TestClientRedeemExhausted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/redeem/unsubscribe", r.URL.Path)
		require.Equal(t, "aaa.bbb.ccc", r.URL.Query().Get("rt"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusGone)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error:            ErrorCodeTokenExhausted,
			ErrorDescription: "Token has no remaining uses",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	_, err := client.Redeem(context.Background(), "unsubscribe", "rt", "aaa.bbb.ccc")
	require.Error(t, err)
	require.True(t, IsExhausted(err))
}

func TestClientHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/livez", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "public endpoint sends no key")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Version: "1.2.3"})
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Status)
}

func TestClientNonEnvelopeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	_, err := client.Health(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}
