package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SyncRunsTotal counts finished synchronization runs by stop reason.
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valortracker_sync_runs_total",
			Help: "Total number of synchronization runs by stop reason",
		},
		[]string{"reason"},
	)

	// SyncMatchesInsertedTotal counts matches stored for the first time.
	SyncMatchesInsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valortracker_sync_matches_inserted_total",
			Help: "Total number of new matches stored",
		},
	)

	// SyncParticipationsLinkedTotal counts participations flipped to linked.
	SyncParticipationsLinkedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valortracker_sync_participations_linked_total",
			Help: "Total number of participations marked as linked",
		},
	)

	// SyncRecordsSkippedTotal counts remote records dropped during normalization.
	SyncRecordsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valortracker_sync_records_skipped_total",
			Help: "Total number of remote records skipped as malformed",
		},
	)

	// SyncDuplicatesTotal counts inserts lost to a concurrent writer.
	SyncDuplicatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valortracker_sync_duplicates_total",
			Help: "Total number of inserts that hit an existing row",
		},
	)

	// RemoteErrorsTotal counts failed calls to the match history provider by kind.
	RemoteErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valortracker_remote_errors_total",
			Help: "Total number of failed remote calls by error kind",
		},
		[]string{"kind"},
	)

	// RemoteRequestDuration tracks page fetch latency.
	RemoteRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "valortracker_remote_request_duration_seconds",
			Help:    "Duration of remote match history requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// ListingCacheTotal counts listing cache lookups by outcome.
	ListingCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valortracker_listing_cache_total",
			Help: "Total number of listing cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordSyncRun records the outcome of one synchronization run.
func RecordSyncRun(reason string, inserted, linked, skipped, duplicates int) {
	SyncRunsTotal.WithLabelValues(reason).Inc()
	SyncMatchesInsertedTotal.Add(float64(inserted))
	SyncParticipationsLinkedTotal.Add(float64(linked))
	SyncRecordsSkippedTotal.Add(float64(skipped))
	SyncDuplicatesTotal.Add(float64(duplicates))
}

// RecordCacheLookup records a listing cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		ListingCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	ListingCacheTotal.WithLabelValues("miss").Inc()
}

// Handler exposes the default registry as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
