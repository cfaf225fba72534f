package matchsync

import (
	"context"
	"errors"
	"fmt"

	"valortracker/core/logger"
	"valortracker/core/metrics"
	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/models"
	"valortracker/feature/matches/normalize"

	"go.uber.org/zap"
)

// Reason tells why a run stopped.
type Reason string

const (
	ReasonExhausted     Reason = "exhausted"
	ReasonHeuristicStop Reason = "heuristic-stop"
	ReasonCapReached    Reason = "cap-reached"
)

// Source fetches pages of raw match records.
type Source interface {
	FetchPage(ctx context.Context, req henrik.PageRequest) ([]henrik.RawMatch, error)
}

// Gateway is the subset of the store the orchestrator writes through.
type Gateway interface {
	ExistingMatchIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
	ExistingParticipations(ctx context.Context, matchIDs []string, playerID string) (map[string]bool, error)
	InsertMatchWithRoster(ctx context.Context, match *models.Match, roster []models.Participation) error
	MarkLinked(ctx context.Context, matchIDs []string, playerID string) (int64, error)
}

// Archiver keeps a copy of newly stored raw records.
type Archiver interface {
	Archive(ctx context.Context, region string, raw henrik.RawMatch) error
}

// Invalidator is told when a player's stored history changed.
type Invalidator func(ctx context.Context, playerID string) error

// Result summarises one run. On error it holds the progress made so far.
type Result struct {
	PlayerID   string `json:"player_id"`
	Region     string `json:"region"`
	Reason     Reason `json:"reason,omitempty"`
	Pages      int    `json:"pages"`
	Fetched    int    `json:"fetched"`
	Inserted   int    `json:"inserted"`
	Linked     int    `json:"linked"`
	Skipped    int    `json:"skipped"`
	Duplicates int    `json:"duplicates"`
}

// Changed reports whether the run modified the player's history.
func (r *Result) Changed() bool {
	return r.Inserted > 0 || r.Linked > 0
}

// Options tune a single run.
type Options struct {
	// Cap bounds the records fetched. Zero uses the interactive cap.
	Cap int
	// OnProgress is called after each processed page.
	OnProgress func(Result)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithArchiver archives every newly inserted raw record.
func WithArchiver(a Archiver) Option {
	return func(o *Orchestrator) { o.archiver = a }
}

// WithInvalidator registers the hook run after a run changed a player's history.
func WithInvalidator(fn Invalidator) Option {
	return func(o *Orchestrator) { o.invalidate = fn }
}

// Orchestrator drives the pagination loop. It keeps no per-run state, so one
// instance serves the interactive and background paths concurrently.
type Orchestrator struct {
	source     Source
	gateway    Gateway
	archiver   Archiver
	invalidate Invalidator
	logger     *zap.Logger

	pageSize   int
	threshold  int
	defaultCap int
}

// New creates an orchestrator.
func New(source Source, gateway Gateway, cfg Config, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source:     source,
		gateway:    gateway,
		logger:     logger,
		pageSize:   cfg.PageSize,
		threshold:  cfg.HitThreshold,
		defaultCap: cfg.InteractiveCap,
	}
	if o.pageSize <= 0 {
		o.pageSize = 10
	}
	if o.threshold <= 0 {
		o.threshold = 3
	}
	if o.defaultCap <= 0 {
		o.defaultCap = 20
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run is the mutable state of one Synchronize call.
type run struct {
	playerID  string
	region    string
	remaining int
	res       Result
	logger    *zap.Logger
}

// Synchronize pages through the player's remote history until it is
// exhausted, K consecutive already-linked matches are seen, or cap records
// were fetched. Pages committed before a failure stay committed.
func (o *Orchestrator) Synchronize(ctx context.Context, playerID, region string, opts Options) (*Result, error) {
	limit := opts.Cap
	if limit <= 0 {
		limit = o.defaultCap
	}

	r := &run{
		playerID:  playerID,
		region:    region,
		remaining: o.threshold,
		res:       Result{PlayerID: playerID, Region: region},
		logger:    logger.WithSync(o.logger, playerID, region),
	}

	defer o.afterRun(ctx, r)

	offset := 0
	for {
		size := min(o.pageSize, limit-r.res.Fetched)
		l := r.logger.With(zap.Int("offset", offset), zap.Int("size", size))

		page, err := o.source.FetchPage(ctx, henrik.PageRequest{
			PlayerID: playerID,
			Region:   region,
			Offset:   offset,
			Size:     size,
		})
		if err != nil {
			l.Warn("Page fetch failed", zap.Error(err), zap.Bool("retryable", models.IsRetryable(err)))
			return &r.res, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			r.res.Reason = ReasonExhausted
			break
		}
		if len(page) > size {
			page = page[:size]
		}

		r.res.Pages++
		r.res.Fetched += len(page)

		stopped, err := o.processPage(ctx, r, page)
		if err != nil {
			return &r.res, err
		}
		l.Debug("Page processed",
			zap.Int("fetched", r.res.Fetched),
			zap.Int("inserted", r.res.Inserted),
			zap.Int("remaining_hits", r.remaining),
		)
		if opts.OnProgress != nil {
			opts.OnProgress(r.res)
		}

		if stopped {
			r.res.Reason = ReasonHeuristicStop
			break
		}
		offset += size
		if r.res.Fetched >= limit {
			r.res.Reason = ReasonCapReached
			break
		}
	}

	return &r.res, nil
}

func (o *Orchestrator) processPage(ctx context.Context, r *run, page []henrik.RawMatch) (bool, error) {
	ids := make([]string, 0, len(page))
	for _, raw := range page {
		if id := raw.ID(); id != "" {
			ids = append(ids, id)
		}
	}

	known, err := o.gateway.ExistingMatchIDs(ctx, ids)
	if err != nil {
		return false, err
	}
	knownIDs := make([]string, 0, len(known))
	for id := range known {
		knownIDs = append(knownIDs, id)
	}
	linked, err := o.gateway.ExistingParticipations(ctx, knownIDs, r.playerID)
	if err != nil {
		return false, err
	}

	var toLink []string
	stopped := false

	for _, raw := range page {
		id := raw.ID()

		if _, ok := known[id]; ok {
			isLinked, has := linked[id]
			switch {
			case !has:
			case isLinked:
				r.remaining--
			default:
				toLink = append(toLink, id)
				linked[id] = true
				r.remaining = o.threshold
			}
			if r.remaining <= 0 {
				stopped = true
				break
			}
			continue
		}

		match, roster, err := normalize.Normalize(raw)
		if err != nil {
			if !models.IsNormalization(err) {
				return false, err
			}
			r.res.Skipped++
			r.logger.Warn("Skipping malformed match record", zap.Error(err))
			continue
		}

		self := false
		for i := range roster {
			if roster[i].PlayerID == r.playerID {
				roster[i].Linked = true
				self = true
			}
		}

		err = o.gateway.InsertMatchWithRoster(ctx, match, roster)
		switch {
		case errors.Is(err, models.ErrDuplicateKey):
			// A concurrent run stored it first, possibly unlinked for this player.
			r.res.Duplicates++
			if self {
				toLink = append(toLink, id)
			}
		case err != nil:
			return false, err
		default:
			r.res.Inserted++
			o.archive(ctx, r, raw)
		}

		known[id] = struct{}{}
		if self {
			linked[id] = true
		}
	}

	if len(toLink) > 0 {
		n, err := o.gateway.MarkLinked(ctx, toLink, r.playerID)
		if err != nil {
			return false, err
		}
		r.res.Linked += int(n)
	}
	return stopped, nil
}

func (o *Orchestrator) archive(ctx context.Context, r *run, raw henrik.RawMatch) {
	if o.archiver == nil {
		return
	}
	if err := o.archiver.Archive(ctx, r.region, raw); err != nil {
		r.logger.Warn("Failed to archive raw match", zap.String("match_id", raw.ID()), zap.Error(err))
	}
}

func (o *Orchestrator) afterRun(ctx context.Context, r *run) {
	reason := string(r.res.Reason)
	if reason == "" {
		reason = "aborted"
	}
	metrics.RecordSyncRun(reason, r.res.Inserted, r.res.Linked, r.res.Skipped, r.res.Duplicates)

	if r.res.Changed() && o.invalidate != nil {
		// Invalidate even if the caller's context is gone; committed pages are visible.
		if err := o.invalidate(context.WithoutCancel(ctx), r.playerID); err != nil {
			r.logger.Error("Failed to invalidate cached history", zap.Error(err))
		}
	}

	r.logger.Info("Synchronization finished",
		zap.String("reason", reason),
		zap.Int("pages", r.res.Pages),
		zap.Int("fetched", r.res.Fetched),
		zap.Int("inserted", r.res.Inserted),
		zap.Int("linked", r.res.Linked),
		zap.Int("skipped", r.res.Skipped),
		zap.Int("duplicates", r.res.Duplicates),
	)
}
