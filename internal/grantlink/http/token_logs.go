package http

import (
	"net/http"
	"strconv"

	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/pkg/grantsdk"
	"github.com/grantlink/grantlink/pkg/httpx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

type TokenLogsHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		List Token Audit Log
//	@Description	List the audit entries recorded for a token, newest first.
//	@Description	Unknown token identifiers yield an empty list; the audit trail outlives deleted records.
//	@Tags			Tokens
//	@Produce		json
//	@Param			jti		path		string						true	"Token identifier"
//	@Param			limit	query		int							false	"Page size (default 50)"
//	@Param			offset	query		int							false	"Page offset"
//	@Success		200		{object}	grantsdk.TokenLogsResponse	"token_id, entries"
//	@Failure		401		{object}	grantsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	grantsdk.ErrorResponse		"error, error_description"
//	@Security		IssuerKey
//	@Router			/v1/tokens/{jti}/logs [get].
func (h *TokenLogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("jti")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.TokenService.Logs(ctx, id, limit, offset)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list token logs", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list token logs",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, grantsdk.TokenLogsResponse{
		TokenID: id,
		Entries: tokenLogEntries(logs),
	})
}
