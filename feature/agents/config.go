package agents

import "time"

// Config holds configuration for the agent catalog source.
type Config struct {
	// BaseURL is the valorant-api.com root, without a trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://valorant-api.com/v1"`
	// Language is the locale of names and descriptions.
	Language string `mapstructure:"language" default:"en-US"`
	// TimeoutSeconds bounds the catalog request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Timeout returns the request deadline.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
