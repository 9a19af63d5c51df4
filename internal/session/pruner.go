package session

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// DefaultPruneSchedule removes idle sessions every ten minutes.
const DefaultPruneSchedule = "*/10 * * * *"

// Pruner periodically drops sessions that have been idle too long.
type Pruner struct {
	store    *Store
	logger   arbor.ILogger
	schedule string
	maxIdle  time.Duration
	cron     *cron.Cron
}

// NewPruner creates a session pruner. An empty schedule uses DefaultPruneSchedule.
func NewPruner(store *Store, logger arbor.ILogger, schedule string, maxIdle time.Duration) *Pruner {
	if schedule == "" {
		schedule = DefaultPruneSchedule
	}
	if maxIdle <= 0 {
		maxIdle = time.Hour
	}
	return &Pruner{
		store:    store,
		logger:   logger,
		schedule: schedule,
		maxIdle:  maxIdle,
		cron:     cron.New(),
	}
}

// Start registers the prune job and starts the scheduler.
func (p *Pruner) Start() error {
	if _, err := p.cron.AddFunc(p.schedule, p.prune); err != nil {
		return err
	}
	p.cron.Start()

	p.logger.Info().
		Str("schedule", p.schedule).
		Str("max_idle", p.maxIdle.String()).
		Msg("Session pruner started")
	return nil
}

// Stop halts the scheduler and waits for a running prune to finish.
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info().Msg("Session pruner stopped")
}

func (p *Pruner) prune() {
	removed := p.store.PruneIdle(p.maxIdle)
	if removed > 0 {
		p.logger.Info().Int("removed", removed).Msg("Pruned idle sessions")
	}
}
