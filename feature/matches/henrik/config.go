package henrik

import "time"

// Config holds configuration for the HenrikDev match history API.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://api.henrikdev.xyz/valorant"`
	// APIKey is sent verbatim in the Authorization header.
	APIKey string `mapstructure:"api_key" default:""`
	// Mode filters the match history (competitive, unrated, ...).
	Mode string `mapstructure:"mode" default:"competitive"`
	// TimeoutSeconds bounds every single page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// RequestsPerMinute is the client side rate limit. Zero disables it.
	RequestsPerMinute int `mapstructure:"requests_per_minute" default:"30"`
	// Burst is the number of requests allowed above the steady rate.
	Burst int `mapstructure:"burst" default:"5"`
	// BreakerFailures is the number of consecutive transient failures that open the breaker.
	BreakerFailures int `mapstructure:"breaker_failures" default:"5"`
	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout" default:"30s"`
}

// Timeout returns the per-request deadline.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
