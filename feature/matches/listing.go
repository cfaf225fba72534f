package matches

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"valortracker/core/cache"
	"valortracker/core/metrics"
	"valortracker/feature/matches/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// initialGeneration is used until a player's history is first invalidated.
const initialGeneration = "0"

// HistoryStore loads a player's linked history.
type HistoryStore interface {
	History(ctx context.Context, playerID string, limit int) ([]models.Participation, error)
}

// Listing is the read-through cache in front of the history query.
//
// Entries are keyed by player and generation. Invalidate moves the player to
// a fresh generation, so nothing filled before the call is read again even if
// a fill that started earlier finishes later.
type Listing struct {
	cache  cache.Cache
	store  HistoryStore
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
}

// NewListing creates a listing cache.
func NewListing(c cache.Cache, store HistoryStore, ttl time.Duration, logger *zap.Logger) *Listing {
	return &Listing{cache: c, store: store, ttl: ttl, logger: logger}
}

// History returns up to limit cards, newest first.
func (l *Listing) History(ctx context.Context, playerID string, limit int) ([]Card, error) {
	gen := l.generation(ctx, playerID)
	key := fmt.Sprintf("player_matches_%s_%s_%d", playerID, gen, limit)

	if raw, ok, err := l.cache.Get(ctx, key); err != nil {
		l.logger.Warn("Listing cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var cards []Card
		if err := json.Unmarshal(raw, &cards); err == nil {
			metrics.RecordCacheLookup(true)
			return cards, nil
		}
		l.logger.Warn("Discarding undecodable listing entry", zap.String("key", key))
	}
	metrics.RecordCacheLookup(false)

	v, err, _ := l.group.Do(key, func() (any, error) {
		parts, err := l.store.History(ctx, playerID, limit)
		if err != nil {
			return nil, err
		}
		cards := make([]Card, 0, len(parts))
		for _, p := range parts {
			cards = append(cards, newCard(p))
		}

		if raw, err := json.Marshal(cards); err == nil {
			if err := l.cache.Set(ctx, key, raw, l.ttl); err != nil {
				l.logger.Warn("Listing cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return cards, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Card), nil
}

// Invalidate makes every cached listing of playerID unreachable.
func (l *Listing) Invalidate(ctx context.Context, playerID string) error {
	if err := l.cache.Set(ctx, generationKey(playerID), []byte(uuid.NewString()), 0); err != nil {
		return fmt.Errorf("failed to invalidate listing of %s: %w", playerID, err)
	}
	return nil
}

func (l *Listing) generation(ctx context.Context, playerID string) string {
	raw, ok, err := l.cache.Get(ctx, generationKey(playerID))
	if err != nil {
		// Without a readable generation the cache cannot be trusted; use a key nobody shares.
		l.logger.Warn("Listing generation read failed", zap.String("player_id", playerID), zap.Error(err))
		return uuid.NewString()
	}
	if !ok {
		return initialGeneration
	}
	return string(raw)
}

func generationKey(playerID string) string {
	return "player_matches_gen_" + playerID
}
