package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
)

// HousekeepingService periodically flags admin passwords past their max age
// and trims old affiliate clicks. Invitation tokens are kept for audit.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	ClickRetention time.Duration // zero keeps clicks forever
	Now            func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, clickRetention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:          st,
		Logger:         logger,
		Interval:       interval,
		ClickRetention: clickRetention,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress pass has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single pass. Each step is independent.
func (s *HousekeepingService) RunOnce(ctx context.Context) {
	now := clock(s.Now)

	if n, err := s.Store.Admins().FlagExpiredAdminPasswords(ctx, now); err != nil {
		s.Logger.Error("failed to flag expired admin passwords", "error", err)
	} else if n > 0 {
		s.Logger.Info("flagged expired admin passwords", "admins", n)
	}

	if s.ClickRetention > 0 {
		if n, err := s.Store.Clicks().DeleteClicksBefore(ctx, now.Add(-s.ClickRetention)); err != nil {
			s.Logger.Error("failed to delete old clicks", "error", err)
		} else {
			s.Logger.Debug("deleted old clicks", "clicks", n)
		}
	}
}
