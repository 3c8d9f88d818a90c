package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/idx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

// maxUserAgentLen caps stored user-agent strings; anything longer is
// truncated, not rejected.
const maxUserAgentLen = 400

// AuditService appends guarded-use outcomes to the token audit trail.
// Successful uses and rejections have independent toggles so operators can
// keep an error log while disabling normal-use logging. A failed audit
// write is logged and swallowed: the guarded operation already completed
// and its outcome must not be retracted by bookkeeping.
type AuditService struct {
	Store store.Store

	LogUses       bool
	LogRejections bool

	Now func() time.Time
}

func (a *AuditService) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

// Record appends one entry. The entry's Outcome decides which toggle
// applies: OutcomeSuccess falls under LogUses, everything else under
// LogRejections. ID and CreatedAt are filled in here.
func (a *AuditService) Record(ctx context.Context, entry domain.TokenLog) {
	if entry.Outcome == domain.OutcomeSuccess {
		if !a.LogUses {
			return
		}
	} else if !a.LogRejections {
		return
	}

	entry.ID = idx.New()
	entry.CreatedAt = a.now()
	if len(entry.UserAgent) > maxUserAgentLen {
		entry.UserAgent = entry.UserAgent[:maxUserAgentLen]
	}

	if err := a.Store.TokenLogs().CreateTokenLog(ctx, entry); err != nil {
		slogx.FromContext(ctx).Error("failed to write audit entry",
			slog.String("token_id", entry.TokenID.String()),
			slog.String("outcome", entry.Outcome),
			slog.Any("error", err),
		)
	}
}
