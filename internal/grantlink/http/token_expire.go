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

type TokenExpireHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Expire Token
//	@Description	Stamp a token's expiry to now, cutting it off for all future redemptions.
//	@Description	Already-expired tokens are re-stamped; the operation is idempotent in effect.
//	@Tags			Tokens
//	@Produce		json
//	@Param			jti	path		string					true	"Token identifier"
//	@Success		200	{object}	grantsdk.TokenResponse	"updated token record"
//	@Failure		401	{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Security		IssuerKey
//	@Router			/v1/tokens/{jti}/expire [post].
func (h *TokenExpireHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := h.TokenService.Expire(ctx, r.PathValue("jti"))
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, grantsdk.ErrorResponse{
				Error:            grantsdk.ErrorCodeNotFound,
				ErrorDescription: "Token not found",
			})
			return
		}
		slogx.FromContext(ctx).Error("failed to expire token", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to expire token",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(token))
}
