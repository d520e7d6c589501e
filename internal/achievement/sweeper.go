package achievement

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = 10 * time.Minute

type reevaluator interface {
	ReevaluateAll(ctx context.Context) (int, error)
}

// Sweeper periodically re-evaluates every user's achievements, catching
// grants that completion-time evaluation missed or that new definitions
// unlocked.
type Sweeper struct {
	cron *cron.Cron
	svc  reevaluator
	log  *zap.Logger
}

// NewSweeper schedules a sweep on a standard five-field cron spec (or a
// descriptor such as "@hourly").
func NewSweeper(svc reevaluator, schedule string, log *zap.Logger) (*Sweeper, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sweeper{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		svc:  svc,
		log:  log,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep up to ctx.
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("achievement sweep still running at shutdown")
	}
}

func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	start := time.Now()
	granted, err := s.svc.ReevaluateAll(ctx)
	if err != nil {
		s.log.Error("achievement sweep failed", zap.Int("granted", granted), zap.Error(err))
		return
	}
	s.log.Info("achievement sweep finished", zap.Int("granted", granted), zap.Duration("took", time.Since(start)))
}
