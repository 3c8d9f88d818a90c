package domain

import (
	"time"

	"github.com/grantlink/grantlink/pkg/idx"
)

// OutcomeSuccess is the audit outcome for a completed guarded use. All
// other outcomes are the rejection codes from RejectionCode.
const OutcomeSuccess = "success"

// TokenLog is one append-only audit entry for a guarded-use attempt.
// TokenID is stored as a plain value rather than a foreign key so the entry
// survives deletion of the token it describes. Entries are never updated;
// only retention housekeeping removes them.
type TokenLog struct {
	ID      idx.ID
	TokenID idx.ID // empty when the attempt never resolved to a record (e.g. decode failures)

	Identity   string
	ClientIP   string
	UserAgent  string
	Outcome    string
	StatusCode int
	CreatedAt  time.Time
}
