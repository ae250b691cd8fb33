package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// sweepTimeout bounds a single sweep against the store.
const sweepTimeout = time.Minute

// OrphanDeleter removes tasks whose owner no longer exists.
type OrphanDeleter interface {
	DeleteOrphanTasks(ctx context.Context) (int64, error)
}

// Scheduler runs the orphan-task sweep on a cron schedule. DeleteUser
// removes the user and its tasks in two steps, so a crash in between leaves
// tasks without an owner; the sweep collects them.
type Scheduler struct {
	store OrphanDeleter
	cron  *cron.Cron
}

// NewScheduler creates a scheduler for the given cron spec (standard five
// fields or descriptors such as "@every 1h").
func NewScheduler(store OrphanDeleter, spec string) (*Scheduler, error) {
	s := &Scheduler{
		store: store,
		cron:  cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run starts the scheduler in its own goroutine.
func (s *Scheduler) Run() {
	log.Info().Msg("Starting orphan task sweeper...")
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped orphan task sweeper.")
}

// SweepOnce runs a single sweep and reports how many tasks were removed.
func (s *Scheduler) SweepOnce(ctx context.Context) (int64, error) {
	return s.store.DeleteOrphanTasks(ctx)
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.SweepOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Orphan task sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("Removed orphaned tasks")
	}
}
