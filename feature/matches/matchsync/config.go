package matchsync

import "time"

// Config holds the pagination policy and the background execution settings.
type Config struct {
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"10"`
	// HitThreshold is K: consecutive already-linked matches that stop a run.
	HitThreshold int `mapstructure:"hit_threshold" default:"3"`
	// InteractiveCap bounds records fetched by a request-path sync.
	InteractiveCap int `mapstructure:"interactive_cap" default:"20"`
	// BackgroundCap bounds records fetched by a background sync.
	BackgroundCap int `mapstructure:"background_cap" default:"50"`
	// Workers is the size of the background worker pool.
	Workers int `mapstructure:"workers" default:"2"`
	// QueueSize is the number of background syncs that may wait for a worker.
	QueueSize int `mapstructure:"queue_size" default:"64"`
	// MaxAttempts is how often a background sync is tried on transient failures.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// RetryDelay is the pause between background attempts.
	RetryDelay time.Duration `mapstructure:"retry_delay" default:"5s"`
	// TaskTTL is how long task state stays pollable.
	TaskTTL time.Duration `mapstructure:"task_ttl" default:"1h"`
	// CacheTTL bounds staleness of cached listings between invalidations.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"60s"`
	// HistoryLimit is the default and maximum number of listing entries.
	HistoryLimit int `mapstructure:"history_limit" default:"50"`
	// ScheduleEnabled turns on periodic background syncs of every known player.
	ScheduleEnabled bool `mapstructure:"schedule_enabled" default:"false"`
	// ScheduleInterval is the period of the scheduled syncs.
	ScheduleInterval time.Duration `mapstructure:"schedule_interval" default:"1h"`
}
