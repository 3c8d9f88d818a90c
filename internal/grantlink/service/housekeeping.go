package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/store"
)

// HousekeepingService periodically removes expired sessions and prunes
// audit entries past the retention window, preventing unbounded growth of
// the sessions and token_logs tables. Token records themselves are never
// deleted here; expiry is enforced by validation, not removal.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// AuditRetention is how long audit entries are kept; zero disables
	// pruning entirely.
	AuditRetention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(
	st store.Store,
	logger *slog.Logger,
	interval time.Duration,
	auditRetention time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:          st,
		Logger:         logger,
		Interval:       interval,
		AuditRetention: auditRetention,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut the
// worker down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"audit_retention", s.AuditRetention,
	)
}

// Stop shuts down the background worker, blocking until any in-progress
// cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the deletions. Each is independent; a failure in one
// does not stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Store.Sessions().DeleteExpiredSessions(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	} else {
		s.Logger.Debug("deleted expired sessions")
	}

	if s.AuditRetention > 0 {
		cutoff := now.Add(-s.AuditRetention)
		if err := s.Store.TokenLogs().DeleteTokenLogsBefore(ctx, cutoff); err != nil {
			s.Logger.Error("failed to prune audit entries", "error", err)
		} else {
			s.Logger.Debug("pruned audit entries", "cutoff", cutoff)
		}
	}
}
