package http

import (
	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/pkg/grantsdk"
)

// tokenResponse maps a token record onto the wire shape shared with the
// SDK. The signed form is always included; the mint handler adds the
// tokenised link itself.
func tokenResponse(t domain.Token) grantsdk.TokenResponse {
	return grantsdk.TokenResponse{
		ID:        t.ID.String(),
		Scope:     t.Scope,
		LoginMode: t.LoginMode.String(),
		Identity:  t.Identity,
		ExpiresAt: t.ExpiresAt,
		NotBefore: t.NotBefore,
		IssuedAt:  t.IssuedAt,
		MaxUses:   t.MaxUses,
		UseCount:  t.UseCount,
		Payload:   t.Payload,
		Target:    t.Target,
		Token:     t.Encoded,
	}
}

func tokenLogEntries(logs []domain.TokenLog) []grantsdk.TokenLogEntry {
	entries := make([]grantsdk.TokenLogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, grantsdk.TokenLogEntry{
			ID:         l.ID.String(),
			TokenID:    l.TokenID.String(),
			Identity:   l.Identity,
			ClientIP:   l.ClientIP,
			UserAgent:  l.UserAgent,
			Outcome:    l.Outcome,
			StatusCode: l.StatusCode,
			CreatedAt:  l.CreatedAt,
		})
	}
	return entries
}
