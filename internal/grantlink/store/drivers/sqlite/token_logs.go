package sqlite

import (
	"context"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/pkg/idx"
)

type tokenLogsRepo struct {
	db dbtx
}

func (r *tokenLogsRepo) CreateTokenLog(ctx context.Context, l domain.TokenLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO token_logs (id, token_id, identity, client_ip, user_agent, outcome, status_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID.String(),
		l.TokenID.String(),
		l.Identity,
		l.ClientIP,
		l.UserAgent,
		l.Outcome,
		l.StatusCode,
		l.CreatedAt.UTC(),
	)
	return err
}

func (r *tokenLogsRepo) ListTokenLogsByTokenID(
	ctx context.Context,
	tokenID string,
	limit, offset int,
) ([]domain.TokenLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, token_id, identity, client_ip, user_agent, outcome, status_code, created_at
		FROM token_logs
		WHERE token_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, tokenID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.TokenLog
	for rows.Next() {
		var (
			l       domain.TokenLog
			id      string
			tokenID string
		)
		if err := rows.Scan(
			&id,
			&tokenID,
			&l.Identity,
			&l.ClientIP,
			&l.UserAgent,
			&l.Outcome,
			&l.StatusCode,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.ID = idx.ID(id)
		l.TokenID = idx.ID(tokenID)
		l.CreatedAt = l.CreatedAt.UTC()
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (r *tokenLogsRepo) DeleteTokenLogsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM token_logs WHERE created_at < ?`, cutoff.UTC())
	return err
}
