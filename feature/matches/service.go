package matches

import (
	"context"
	"errors"
	"fmt"

	"valortracker/core/cache"
	"valortracker/core/tasks"
	"valortracker/core/utils"
	"valortracker/feature/matches/archive"
	"valortracker/feature/matches/matchsync"
	"valortracker/feature/matches/models"
	"valortracker/feature/matches/store"

	"go.uber.org/zap"
)

// TaskKindSync is the background task kind that runs one synchronization.
const TaskKindSync = "match_sync"

// ErrInvalidRequest is returned for requests missing a player id or region.
var ErrInvalidRequest = errors.New("puuid and region are required")

// SyncRequest is the payload of a background synchronization.
type SyncRequest struct {
	PlayerID string `json:"puuid"`
	Region   string `json:"region"`
}

func (r SyncRequest) validate() error {
	if r.PlayerID == "" || r.Region == "" {
		return ErrInvalidRequest
	}
	return nil
}

// Service exposes the match history operations used by the handlers, the
// scheduler and the CLI.
type Service struct {
	store        *store.Store
	orchestrator *matchsync.Orchestrator
	listing      *Listing
	queue        *tasks.Queue
	archive      *archive.Archive
	cfg          matchsync.Config
	logger       *zap.Logger
}

// NewService wires the orchestrator, the listing cache and, when queue is
// set, the background sync task. arch may be nil when archiving is off.
func NewService(st *store.Store, source matchsync.Source, c cache.Cache, queue *tasks.Queue, arch *archive.Archive, cfg matchsync.Config, logger *zap.Logger) *Service {
	listing := NewListing(c, st, cfg.CacheTTL, logger)

	opts := []matchsync.Option{matchsync.WithInvalidator(listing.Invalidate)}
	if arch != nil {
		opts = append(opts, matchsync.WithArchiver(arch))
	}

	s := &Service{
		store:        st,
		orchestrator: matchsync.New(source, st, cfg, logger, opts...),
		listing:      listing,
		queue:        queue,
		archive:      arch,
		cfg:          cfg,
		logger:       logger,
	}
	if queue != nil {
		queue.Register(TaskKindSync, s.runSyncTask)
	}
	return s
}

// History returns the player's synchronized matches, newest first.
func (s *Service) History(ctx context.Context, playerID string, limit int) ([]Card, error) {
	ceiling := s.cfg.HistoryLimit
	if ceiling <= 0 {
		ceiling = 50
	}
	if limit <= 0 {
		limit = ceiling
	}
	return s.listing.History(ctx, playerID, utils.Clamp(limit, 1, ceiling))
}

// Scoreboard returns a stored match with its full roster.
func (s *Service) Scoreboard(ctx context.Context, matchID string) (*Scoreboard, error) {
	match, roster, err := s.store.Scoreboard(ctx, matchID)
	if err != nil {
		return nil, err
	}
	out := &Scoreboard{Match: *match, Roster: make([]Line, 0, len(roster))}
	for _, p := range roster {
		out.Roster = append(out.Roster, newLine(p, match.RoundsPlayed))
	}
	return out, nil
}

// SyncNow runs a synchronization bounded by the interactive cap.
func (s *Service) SyncNow(ctx context.Context, playerID, region string) (*matchsync.Result, error) {
	if err := (SyncRequest{PlayerID: playerID, Region: region}).validate(); err != nil {
		return nil, err
	}
	return s.orchestrator.Synchronize(ctx, playerID, region, matchsync.Options{Cap: s.cfg.InteractiveCap})
}

// SyncBackground runs a synchronization bounded by the background cap in the
// calling goroutine.
func (s *Service) SyncBackground(ctx context.Context, playerID, region string, progress func(matchsync.Result)) (*matchsync.Result, error) {
	if err := (SyncRequest{PlayerID: playerID, Region: region}).validate(); err != nil {
		return nil, err
	}
	return s.orchestrator.Synchronize(ctx, playerID, region, matchsync.Options{
		Cap:        s.cfg.BackgroundCap,
		OnProgress: progress,
	})
}

// SubmitSync queues a background synchronization and returns its handle.
func (s *Service) SubmitSync(ctx context.Context, playerID, region string) (string, error) {
	req := SyncRequest{PlayerID: playerID, Region: region}
	if err := req.validate(); err != nil {
		return "", err
	}
	if s.queue == nil {
		return "", errors.New("background tasks are not running")
	}
	return s.queue.Submit(ctx, TaskKindSync, req)
}

// Task returns the state of a background task.
func (s *Service) Task(ctx context.Context, id string) (*tasks.Task, error) {
	if s.queue == nil {
		return nil, tasks.ErrTaskNotFound
	}
	return s.queue.Poll(ctx, id)
}

// Clear removes every stored match and invalidates the affected listings.
// It returns the number of affected players.
func (s *Service) Clear(ctx context.Context) (int, error) {
	players, err := s.store.ClearAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, id := range players {
		if err := s.listing.Invalidate(ctx, id); err != nil {
			s.logger.Warn("Failed to invalidate listing after clear", zap.String("player_id", id), zap.Error(err))
		}
	}
	s.logger.Info("Cleared stored matches", zap.Int("players", len(players)))
	return len(players), nil
}

// RawMatch returns the archived remote record of a match.
func (s *Service) RawMatch(ctx context.Context, region, matchID string) ([]byte, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("raw archive disabled: %w", models.ErrNotFound)
	}
	return s.archive.Load(ctx, region, matchID)
}

func (s *Service) runSyncTask(ctx context.Context, task *tasks.Task, report tasks.ProgressFunc) (any, error) {
	var req SyncRequest
	if err := task.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid sync payload: %w", err)
	}
	return s.SyncBackground(ctx, req.PlayerID, req.Region, func(r matchsync.Result) {
		report(map[string]int{
			"pages":    r.Pages,
			"fetched":  r.Fetched,
			"inserted": r.Inserted,
			"linked":   r.Linked,
		})
	})
}
