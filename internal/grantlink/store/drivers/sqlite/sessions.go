package sqlite

import (
	"context"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/idx"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, identity, token_fingerprint, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID.String(),
		s.Identity,
		s.TokenFingerprint,
		s.CreatedAt.UTC(),
		s.ExpiresAt.UTC(),
	)
	return err
}

func (r *sessionsRepo) GetActiveSessionByFingerprint(
	ctx context.Context,
	fingerprint string,
	now time.Time,
) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, identity, token_fingerprint, created_at, expires_at
		FROM sessions
		WHERE token_fingerprint = ? AND expires_at > ?`, fingerprint, now.UTC())

	var (
		s  domain.Session
		id string
	)
	if err := row.Scan(&id, &s.Identity, &s.TokenFingerprint, &s.CreatedAt, &s.ExpiresAt); err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.ID = idx.ID(id)
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	return err
}
