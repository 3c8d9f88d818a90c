// Package sqlite is the default store driver, backed by the pure-Go
// modernc.org/sqlite driver so the binary stays CGO-free.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/idx"

	_ "modernc.org/sqlite"
)

// dbtx is the subset of *sql.DB and *sql.Tx the repos need, so the same
// repo code serves both the root store and transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling
// commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) Tokens() store.Tokens       { return &tokensRepo{db: s.db} }
func (s *Store) TokenLogs() store.TokenLogs { return &tokenLogsRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions   { return &sessionsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func marshalPayload(p map[string]any) (sql.NullString, error) {
	if len(p) == 0 {
		return sql.NullString{Valid: false}, nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func unmarshalPayload(ns sql.NullString) (map[string]any, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var p map[string]any
	if err := json.Unmarshal([]byte(ns.String), &p); err != nil {
		return nil, err
	}
	return p, nil
}

func scanToken(row interface{ Scan(dest ...any) error }) (domain.Token, error) {
	var (
		t         domain.Token
		id        string
		loginMode int
		expiresAt sql.NullTime
		notBefore sql.NullTime
		payload   sql.NullString
	)

	err := row.Scan(
		&id,
		&t.Scope,
		&loginMode,
		&t.Identity,
		&expiresAt,
		&notBefore,
		&t.IssuedAt,
		&t.MaxUses,
		&t.UseCount,
		&payload,
		&t.Target,
		&t.Encoded,
	)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}

	t.ID = idx.ID(id)
	t.LoginMode = domain.LoginMode(loginMode)
	t.IssuedAt = t.IssuedAt.UTC()
	t.ExpiresAt = mapNullTimePtr(expiresAt)
	t.NotBefore = mapNullTimePtr(notBefore)

	t.Payload, err = unmarshalPayload(payload)
	if err != nil {
		return domain.Token{}, err
	}

	return t, nil
}
