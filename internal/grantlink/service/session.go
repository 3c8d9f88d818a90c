package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/cryptox"
	"github.com/grantlink/grantlink/pkg/idx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

// SessionService is the session-establishment capability SESSION-mode
// redemptions delegate to, and the resolver the inbound middleware uses to
// recognise an already-authenticated caller.
type SessionService struct {
	Store store.Store
	TTL   time.Duration

	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Establish logs identity in: it creates a durable session row and returns
// it together with the raw cookie value. Only the fingerprint of the cookie
// value is stored.
func (s *SessionService) Establish(ctx context.Context, identity string) (domain.Session, string, error) {
	log := slogx.FromContext(ctx)

	cookie, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return domain.Session{}, "", err
	}

	now := s.now()
	session := domain.Session{
		ID:               idx.New(),
		Identity:         identity,
		TokenFingerprint: cryptox.FingerprintToken(cookie),
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.TTL),
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to store session",
			slog.String("session_id", session.ID.String()),
			slog.Any("error", err),
		)
		return domain.Session{}, "", err
	}

	log.Info("session established",
		slog.String("session_id", session.ID.String()),
		slog.String("identity", identity),
	)

	return session, cookie, nil
}

// Resolve maps a presented cookie value back to its active session, or
// store.ErrNotFound when it is unknown or expired.
func (s *SessionService) Resolve(ctx context.Context, cookie string) (domain.Session, error) {
	if cookie == "" {
		return domain.Session{}, store.ErrNotFound
	}

	return s.Store.Sessions().GetActiveSessionByFingerprint(
		ctx,
		cryptox.FingerprintToken(cookie),
		s.now(),
	)
}

// Destroy removes a session (logout). Unknown sessions are not an error.
func (s *SessionService) Destroy(ctx context.Context, id idx.ID) error {
	err := s.Store.Sessions().DeleteSession(ctx, id.String())
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
