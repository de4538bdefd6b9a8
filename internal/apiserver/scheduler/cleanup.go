package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/fuga-catalog/catalog/internal/catalog"
	"github.com/fuga-catalog/catalog/pkg/metrics"
	"go.uber.org/zap"
)

// CleanupScheduler periodically sweeps expired cover art deletion marks.
// The sweep itself lives in CoverArtService.CleanupExpired and can equally be
// triggered by an external job; this scheduler is an optional in-process
// convenience. Overlapping sweeps are safe since every candidate is
// re-validated independently.
type CleanupScheduler struct {
	coverArt *catalog.CoverArtService
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// NewCleanupScheduler creates a new cleanup scheduler
func NewCleanupScheduler(coverArt *catalog.CoverArtService, interval time.Duration, m *metrics.Metrics, logger *zap.Logger) *CleanupScheduler {
	return &CleanupScheduler{
		coverArt: coverArt,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

// Start launches the periodic sweep. No-op if already running.
func (s *CleanupScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(ctx)
	s.logger.Info("cover art cleanup scheduler started",
		zap.Duration("interval", s.interval))
}

// Stop halts the periodic sweep.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.running = false
	s.logger.Info("cover art cleanup scheduler stopped")
}

func (s *CleanupScheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep against the current time.
func (s *CleanupScheduler) RunOnce(ctx context.Context) {
	deleted, err := s.coverArt.CleanupExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("cover art cleanup sweep failed", zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveCleanup(deleted)
	}
	if deleted > 0 {
		s.logger.Info("cover art cleanup sweep finished", zap.Int("deleted", deleted))
	}
}
