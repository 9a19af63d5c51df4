// -----------------------------------------------------------------------
// Package cache schedules periodic eviction of expired response cache
// entries so the store does not accumulate dead payloads between restarts.
// -----------------------------------------------------------------------

package cache

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/interfaces"
)

// DefaultSweepSchedule runs the sweep every five minutes, matching the
// response cache TTL.
const DefaultSweepSchedule = "*/5 * * * *"

// SweeperService periodically removes expired entries from a ResponseCache.
type SweeperService struct {
	cache    interfaces.ResponseCache
	logger   arbor.ILogger
	schedule string
	cron     *cron.Cron
}

// NewSweeperService creates a sweeper with the given cron schedule. An empty
// schedule uses the default.
func NewSweeperService(cache interfaces.ResponseCache, logger arbor.ILogger, schedule string) *SweeperService {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &SweeperService{
		cache:    cache,
		logger:   logger,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers and starts the sweep job.
func (s *SweeperService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("failed to schedule cache sweep: %w", err)
	}
	s.cron.Start()

	s.logger.Info().Str("schedule", s.schedule).Msg("Cache sweeper started")
	return nil
}

// Stop halts the scheduler. Running sweeps finish before Stop returns.
func (s *SweeperService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Cache sweeper stopped")
}

func (s *SweeperService) sweep() {
	removed, err := s.cache.Sweep()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Cache sweep failed")
		return
	}
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("Cache sweep completed")
	}
}
