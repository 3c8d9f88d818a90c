package postgres

import (
	"context"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
)

type tokensRepo struct {
	db dbtx
}

const tokenColumns = `id, scope, login_mode, identity, expires_at, not_before,
	issued_at, max_uses, use_count, payload, target, encoded`

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.Token) error {
	payload, err := marshalPayload(t.Payload)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tokens (`+tokenColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID.String(),
		t.Scope,
		int(t.LoginMode),
		t.Identity,
		mapOptionalTime(t.ExpiresAt),
		mapOptionalTime(t.NotBefore),
		t.IssuedAt.UTC(),
		t.MaxUses,
		t.UseCount,
		payload,
		t.Target,
		t.Encoded,
	)
	return err
}

func (r *tokensRepo) GetTokenByID(ctx context.Context, id string) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tokenColumns+` FROM tokens WHERE id = $1`, id)
	return scanToken(row)
}

func (r *tokensRepo) GetTokenByEncoded(ctx context.Context, encoded string) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tokenColumns+` FROM tokens WHERE encoded = $1`, encoded)
	return scanToken(row)
}

func (r *tokensRepo) SetTokenExpiry(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tokens SET expires_at = $1 WHERE id = $2`, at.UTC(), id)
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

// TryConsumeUse is the authoritative use-count enforcement: one conditional
// UPDATE whose WHERE clause re-checks the ceiling, so two concurrent
// redemptions of a single-use token can never both succeed. SESSION tokens
// (login_mode = 2) are clamped to a ceiling of one inside the statement
// regardless of the stored max_uses.
func (r *tokensRepo) TryConsumeUse(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tokens
		SET use_count = use_count + 1
		WHERE id = $1
		  AND (CASE
		         WHEN login_mode = 2 THEN use_count < 1
		         WHEN max_uses > 0   THEN use_count < max_uses
		         ELSE TRUE
		       END)`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}

	// Distinguish "exhausted" from "no such token".
	if _, err := r.GetTokenByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}
