package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/idx"
	"github.com/grantlink/grantlink/pkg/jwtx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

// Redemption is a successfully validated token attached to a request: the
// record, its verified claims, and the identity effect that was applied.
// SessionCookie carries the raw cookie value when a SESSION-mode token just
// established one.
type Redemption struct {
	Token  domain.Token
	Claims *jwtx.Claims
	Effect domain.Effect

	Session       *domain.Session
	SessionCookie string
}

// RedeemService is the validation pipeline: codec decode, record lookup by
// jti, record validation, then the mode-specific identity effect. It never
// lets malformed input escape as anything but a typed rejection.
type RedeemService struct {
	Store    store.Store
	Codec    *jwtx.Codec
	Sessions *SessionService

	Now func() time.Time
}

func (s *RedeemService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Validate runs the pipeline over a raw wire string. requestPath is the
// inbound path (for target-constrained tokens); currentIdentity is the
// already-authenticated caller, empty for anonymous requests.
//
// On a record-level rejection the returned redemption is non-nil but
// partial (token and claims only); decode failures and unknown records
// return nil.
//
// The signature is verified before any claim is trusted; the record then
// re-checks the claims against its own state in the fixed sequence
// implemented by domain.Token.Validate.
func (s *RedeemService) Validate(
	ctx context.Context,
	raw, requestPath, currentIdentity string,
) (*Redemption, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.Codec.Decode(raw)
	if err != nil {
		log.Warn("token decode failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenDecode, err)
	}

	token, err := s.Store.Tokens().GetTokenByID(ctx, claims.GrantID())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("token claims reference unknown record",
				slog.String("token_id", claims.GrantID()),
			)
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}

	effect, err := token.Validate(claims, requestPath, currentIdentity, s.now())
	if err != nil {
		log.Warn("token validation rejected",
			slog.String("token_id", token.ID.String()),
			slog.String("reason", domain.RejectionCode(err)),
		)
		// The partial redemption rides along so callers can attribute the
		// rejection to the record in the audit trail.
		return &Redemption{Token: token, Claims: claims}, err
	}

	redemption := &Redemption{
		Token:  token,
		Claims: claims,
		Effect: effect,
	}

	// SESSION is the one effect with side effects beyond the current
	// request: delegate to the session-establishment capability.
	if effect == domain.EffectEstablishSession {
		session, cookie, err := s.Sessions.Establish(ctx, token.Identity)
		if err != nil {
			return nil, err
		}
		redemption.Session = &session
		redemption.SessionCookie = cookie
	}

	return redemption, nil
}

// Consume is the authoritative use-count advance at the point of use. A
// false precondition surfaces as ErrMaxUses; cancellation after a
// successful increment is deliberately not rolled back.
func (s *RedeemService) Consume(ctx context.Context, id idx.ID) error {
	ok, err := s.Store.Tokens().TryConsumeUse(ctx, id.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ErrTokenNotFound
		}
		return err
	}
	if !ok {
		return domain.ErrMaxUses
	}
	return nil
}
