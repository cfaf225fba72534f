package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSyncRun(t *testing.T) {
	runs := testutil.ToFloat64(SyncRunsTotal.WithLabelValues("exhausted"))
	inserted := testutil.ToFloat64(SyncMatchesInsertedTotal)
	linked := testutil.ToFloat64(SyncParticipationsLinkedTotal)

	RecordSyncRun("exhausted", 3, 2, 1, 0)

	assert.Equal(t, runs+1, testutil.ToFloat64(SyncRunsTotal.WithLabelValues("exhausted")))
	assert.Equal(t, inserted+3, testutil.ToFloat64(SyncMatchesInsertedTotal))
	assert.Equal(t, linked+2, testutil.ToFloat64(SyncParticipationsLinkedTotal))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(ListingCacheTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(ListingCacheTotal.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(ListingCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(ListingCacheTotal.WithLabelValues("miss")))
}

func TestHandler(t *testing.T) {
	RecordSyncRun("cap-reached", 0, 0, 0, 0)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "valortracker_sync_runs_total"))
}
