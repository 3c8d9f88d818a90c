// Package service holds the business logic between the HTTP layer and the
// store: issuing grant tokens, running the validation pipeline, recording
// the audit trail, and session establishment.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/jwtx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

var (
	ErrInvalidTokenRequest = errors.New("invalid token request")
)

// TokenService issues and manages grant token records. Issue is the single
// place a record and its signed wire form come into existence together.
type TokenService struct {
	Store store.Store
	Codec *jwtx.Codec

	// DefaultMaxUses applies when the caller omits a ceiling; SessionTTL is
	// the fixed expiry window forced onto SESSION-mode tokens.
	DefaultMaxUses int
	SessionTTL     time.Duration

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue creates, signs, and persists a new grant token.
func (s *TokenService) Issue(ctx context.Context, p domain.TokenParams) (domain.Token, error) {
	log := slogx.FromContext(ctx)

	token, err := domain.NewToken(p, s.now(), s.DefaultMaxUses, s.SessionTTL)
	if err != nil {
		if errors.Is(err, domain.ErrScopeRequired) || errors.Is(err, domain.ErrIdentityRequired) {
			return domain.Token{}, err
		}
		return domain.Token{}, fmt.Errorf("%w: %v", ErrInvalidTokenRequest, err)
	}

	encoded, err := s.Codec.Encode(token.Claims())
	if err != nil {
		log.Error("failed to sign token", slog.Any("error", err))
		return domain.Token{}, err
	}
	token.Encoded = encoded

	if err := s.Store.Tokens().CreateToken(ctx, token); err != nil {
		log.Error("failed to store token",
			slog.String("token_id", token.ID.String()),
			slog.Any("error", err),
		)
		return domain.Token{}, err
	}

	log.Info("token issued",
		slog.String("token_id", token.ID.String()),
		slog.String("scope", token.Scope),
		slog.String("login_mode", token.LoginMode.String()),
		slog.Int("max_uses", token.MaxUses),
	)

	return token, nil
}

// Get returns a token record by its jti. Operators can also paste the full
// signed token string and get the record that produced it.
func (s *TokenService) Get(ctx context.Context, id string) (domain.Token, error) {
	var (
		token domain.Token
		err   error
	)
	if jwtx.LooksLikeToken(id) {
		token, err = s.Store.Tokens().GetTokenByEncoded(ctx, id)
	} else {
		token, err = s.Store.Tokens().GetTokenByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, domain.ErrTokenNotFound
		}
		return domain.Token{}, err
	}
	return token, nil
}

// Expire stamps the token's expiry to now, cutting it off for all future
// validations without touching the row otherwise.
func (s *TokenService) Expire(ctx context.Context, id string) (domain.Token, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.Tokens().SetTokenExpiry(ctx, id, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, domain.ErrTokenNotFound
		}
		log.Error("failed to expire token", slog.String("token_id", id), slog.Any("error", err))
		return domain.Token{}, err
	}

	log.Info("token expired by issuer", slog.String("token_id", id))
	return s.Get(ctx, id)
}

// Logs lists the audit entries for a token, newest first.
func (s *TokenService) Logs(ctx context.Context, id string, limit, offset int) ([]domain.TokenLog, error) {
	// Listing for an unknown token returns the empty list rather than an
	// error: the audit trail outlives deleted records.
	return s.Store.TokenLogs().ListTokenLogsByTokenID(ctx, id, limit, offset)
}
