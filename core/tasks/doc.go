// Package tasks runs background jobs on a fixed worker pool.
//
// Submit persists a queued task and returns its handle; Poll reads the task back
// as queued, running, succeeded (with a result) or failed (with an error). Task
// state is written through cache.Cache with a TTL, so with a redis cache the
// handle can be polled from any process.
//
// Handlers may publish progress while running. Errors classified as retryable
// are retried up to MaxAttempts with RetryDelay in between; the task stays
// running meanwhile.
package tasks
