package http

import (
	"errors"
	"net/http"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/pkg/grantsdk"
	"github.com/grantlink/grantlink/pkg/httpx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

type TokenGetHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Get Token Record
//	@Description	Fetch a token record by its identifier, including the current use count.
//	@Tags			Tokens
//	@Produce		json
//	@Param			jti	path		string					true	"Token identifier"
//	@Success		200	{object}	grantsdk.TokenResponse	"token record"
//	@Failure		401	{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Security		IssuerKey
//	@Router			/v1/tokens/{jti} [get].
func (h *TokenGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := h.TokenService.Get(ctx, r.PathValue("jti"))
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, grantsdk.ErrorResponse{
				Error:            grantsdk.ErrorCodeNotFound,
				ErrorDescription: "Token not found",
			})
			return
		}
		slogx.FromContext(ctx).Error("failed to fetch token", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to fetch token",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(token))
}
