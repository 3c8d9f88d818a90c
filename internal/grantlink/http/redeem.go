package http

import (
	"net/http"

	"github.com/grantlink/grantlink/pkg/grantsdk"
	"github.com/grantlink/grantlink/pkg/httpx"
)

// RedeemHandler is the demonstration guarded operation: it runs behind the
// token middleware and a required scope gate, so by the time it executes a
// use has already been consumed. It echoes what the token granted.
type RedeemHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Redeem Grant Token
//	@Description	Demonstration guarded operation for a scope. Requires a valid grant token for the
//	@Description	scope named in the path, presented as a query parameter, form field, or JSON body field.
//	@Description	A successful call consumes one use and echoes the scope, bound identity, and payload.
//	@Tags			Redeem
//	@Produce		json
//	@Param			scope	path		string					true	"Operation scope"
//	@Param			rt		query		string					false	"Encoded grant token"
//	@Success		200		{object}	grantsdk.RedeemResponse	"scope, identity, payload"
//	@Failure		401		{object}	grantsdk.ErrorResponse	"token required"
//	@Failure		403		{object}	grantsdk.ErrorResponse	"token rejected"
//	@Failure		410		{object}	grantsdk.ErrorResponse	"token exhausted"
//	@Router			/v1/redeem/{scope} [get].
func (h *RedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The required gate guarantees a successful redemption on the context.
	redemption := RedemptionFromContext(ctx)
	if redemption == nil {
		httpx.WriteJSON(w, http.StatusInternalServerError, grantsdk.ErrorResponse{
			Error:            grantsdk.ErrorCodeServerError,
			ErrorDescription: "Missing redemption context",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, grantsdk.RedeemResponse{
		Scope:    redemption.Token.Scope,
		Identity: httpx.IdentityFromContext(ctx),
		Payload:  redemption.Token.Payload,
	})
}
