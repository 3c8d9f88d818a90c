package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/internal/obs"
	"github.com/grantlink/grantlink/pkg/grantsdk"
	"github.com/grantlink/grantlink/pkg/httpx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

type TokenMintHandler struct {
	TokenService *service.TokenService

	// PublicURL and TokenParam build the ready-to-mail link returned
	// alongside the record.
	PublicURL  string
	TokenParam string
}

// ServeHTTP godoc
//
//	@Summary		Mint Grant Token
//	@Description	Create, sign, and persist a new grant token for a scoped operation.
//	@Description	Returns the full record, the signed token, and a ready-to-use link with the token attached.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		grantsdk.TokenRequest	true	"Token parameters"
//	@Success		201		{object}	grantsdk.TokenResponse	"token record with signed form and link"
//	@Failure		400		{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	grantsdk.ErrorResponse	"error, error_description"
//	@Security		IssuerKey
//	@Router			/v1/tokens [post].
func (h *TokenMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req grantsdk.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	mode, err := domain.ParseLoginMode(req.LoginMode)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "login_mode must be one of none, request, session",
		})
		return
	}

	params := domain.TokenParams{
		Scope:     req.Scope,
		LoginMode: mode,
		Identity:  req.Identity,
		MaxUses:   req.MaxUses,
		Payload:   req.Payload,
		Target:    req.Target,
	}

	// Absolute expiry wins over the relative form when both are given.
	switch {
	case req.ExpiresAt != 0:
		exp := time.Unix(req.ExpiresAt, 0).UTC()
		params.ExpiresAt = &exp
	case req.ExpiresIn != 0:
		exp := time.Now().UTC().Add(time.Duration(req.ExpiresIn) * time.Second)
		params.ExpiresAt = &exp
	}
	if req.NotBefore != 0 {
		nbf := time.Unix(req.NotBefore, 0).UTC()
		params.NotBefore = &nbf
	}

	token, err := h.TokenService.Issue(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScopeRequired):
			httpx.WriteJSON(w, http.StatusBadRequest, grantsdk.ErrorResponse{
				Error:            grantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "scope is required",
			})
		case errors.Is(err, domain.ErrIdentityRequired):
			httpx.WriteJSON(w, http.StatusBadRequest, grantsdk.ErrorResponse{
				Error:            grantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "identity is required for request and session modes",
			})
		case errors.Is(err, service.ErrInvalidTokenRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, grantsdk.ErrorResponse{
				Error:            grantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid token parameters",
			})
		default:
			log.Error("failed to mint token", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, grantsdk.ErrorResponse{
				Error:            grantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to create token",
			})
		}
		return
	}

	resp := tokenResponse(token)
	if h.PublicURL != "" {
		link, err := grantsdk.Tokenise(h.PublicURL, h.TokenParam, token.Encoded)
		if err != nil {
			log.Warn("failed to build tokenised link", "err", err)
		} else {
			resp.Link = link
		}
	}

	obs.TokenIssued(token.LoginMode.String())
	httpx.WriteJSON(w, http.StatusCreated, resp)
}
