// Package store defines the data access interfaces for grant tokens, audit
// entries, and sessions. Concrete drivers live under drivers/ (sqlite,
// postgres).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Tokens() Tokens
	TokenLogs() TokenLogs
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn returns
	// an error, committed otherwise. The recommended form for multi-step
	// operations.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tokens interface {
	// CreateToken inserts a new token record (id is provided by the app via
	// ULID).
	CreateToken(ctx context.Context, t domain.Token) error

	// GetTokenByID returns a token by its jti.
	GetTokenByID(ctx context.Context, id string) (domain.Token, error)

	// GetTokenByEncoded returns a token by its signed wire form. Operator
	// lookup path: "which record produced this string".
	GetTokenByEncoded(ctx context.Context, encoded string) (domain.Token, error)

	// SetTokenExpiry stamps expires_at, used by the explicit expire
	// operation.
	SetTokenExpiry(ctx context.Context, id string, at time.Time) error

	// TryConsumeUse atomically increments use_count if and only if the
	// effective ceiling has not been reached (SESSION tokens are clamped to
	// one in the statement itself). It is a single conditional UPDATE, never
	// read-modify-write. Returns false when the precondition no longer
	// holds, and ErrNotFound when no such token exists at all.
	TryConsumeUse(ctx context.Context, id string) (bool, error)
}

type TokenLogs interface {
	// CreateTokenLog appends one audit entry. Entries are never updated.
	CreateTokenLog(ctx context.Context, l domain.TokenLog) error

	// ListTokenLogsByTokenID returns entries for a token, newest first.
	ListTokenLogsByTokenID(ctx context.Context, tokenID string, limit, offset int) ([]domain.TokenLog, error)

	// DeleteTokenLogsBefore removes entries created before cutoff
	// (retention housekeeping).
	DeleteTokenLogsBefore(ctx context.Context, cutoff time.Time) error
}

type Sessions interface {
	// CreateSession stores a freshly established session.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetActiveSessionByFingerprint returns a not-yet-expired session by
	// the fingerprint of its cookie value.
	GetActiveSessionByFingerprint(ctx context.Context, fingerprint string, now time.Time) (domain.Session, error)

	// DeleteSession removes one session (logout).
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}
