package matches

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"valortracker/core/cache"
	"valortracker/core/database"
	"valortracker/core/tasks"
	"valortracker/feature/matches/archive"
	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/henrik/henriktest"
	"valortracker/feature/matches/matchsync"
	"valortracker/feature/matches/models"
	"valortracker/feature/matches/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu      sync.Mutex
	matches []henrik.RawMatch
	err     error
}

func (f *fakeSource) FetchPage(_ context.Context, req henrik.PageRequest) ([]henrik.RawMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if req.Offset >= len(f.matches) {
		return nil, nil
	}
	end := min(req.Offset+req.Size, len(f.matches))
	return append([]henrik.RawMatch(nil), f.matches[req.Offset:end]...), nil
}

func (f *fakeSource) set(matches []henrik.RawMatch, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches, f.err = matches, err
}

// history builds n matches, most recent first.
func history(n int, self, opponent string) []henrik.RawMatch {
	out := make([]henrik.RawMatch, n)
	for i := range out {
		out[i] = henriktest.Match(fmt.Sprintf("m%02d", i), 13, 8, henriktest.Roster(self, opponent)...)
		start := int64(1700000000 - i*3600)
		out[i].Metadata.GameStart = &start
	}
	return out
}

type env struct {
	svc   *Service
	store *store.Store
	src   *fakeSource
	cache *cache.Memory
	queue *tasks.Queue
}

var testCfg = matchsync.Config{
	PageSize:       10,
	HitThreshold:   3,
	InteractiveCap: 20,
	BackgroundCap:  40,
	CacheTTL:       time.Minute,
	HistoryLimit:   50,
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWith(t, nil)
}

func newEnvWith(t *testing.T, arch *archive.Archive) *env {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))

	st := store.New(db)
	mem := cache.NewMemory()
	src := &fakeSource{}
	q := tasks.NewQueue(mem, tasks.Config{Workers: 1, QueueSize: 8, MaxAttempts: 2, RetryDelay: time.Millisecond, TTL: time.Minute},
		zap.NewNop(), models.IsRetryable)

	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	t.Cleanup(func() { cancel(); q.Wait() })

	return &env{
		svc:   NewService(st, src, mem, q, arch, testCfg, zap.NewNop()),
		store: st,
		src:   src,
		cache: mem,
		queue: q,
	}
}
