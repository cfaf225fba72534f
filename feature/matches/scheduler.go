package matches

import (
	"context"
	"fmt"
	"time"

	"valortracker/feature/matches/models"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// PlayerLister lists the players the scheduler keeps in sync.
type PlayerLister interface {
	Players(ctx context.Context) ([]models.Player, error)
}

// Syncer queues one background synchronization.
type Syncer interface {
	SubmitSync(ctx context.Context, playerID, region string) (string, error)
}

// Scheduler periodically queues a background sync for every known player.
type Scheduler struct {
	sched   gocron.Scheduler
	players PlayerLister
	syncer  Syncer
	logger  *zap.Logger
}

// NewScheduler creates a scheduler firing every interval. It does not start it.
func NewScheduler(interval time.Duration, players PlayerLister, syncer Syncer, logger *zap.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid schedule interval %s", interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{sched: sched, players: players, syncer: syncer, logger: logger}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := s.RunOnce(ctx); err != nil {
				logger.Error("Scheduled sync round failed", zap.Error(err))
			}
		}),
		gocron.WithName("match-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to register sync job: %w", err)
	}
	return s, nil
}

// Start begins firing the job.
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Shutdown stops the scheduler and waits for a running round.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

// RunOnce queues a sync for every player with a known region and returns how
// many were queued.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	players, err := s.players.Players(ctx)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, p := range players {
		if p.Region == "" {
			continue
		}
		id, err := s.syncer.SubmitSync(ctx, p.ID, p.Region)
		if err != nil {
			s.logger.Warn("Failed to queue scheduled sync", zap.String("player_id", p.ID), zap.Error(err))
			continue
		}
		s.logger.Debug("Queued scheduled sync", zap.String("player_id", p.ID), zap.String("task_id", id))
		queued++
	}
	s.logger.Info("Scheduled sync round", zap.Int("players", len(players)), zap.Int("queued", queued))
	return queued, nil
}
