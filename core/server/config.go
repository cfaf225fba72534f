package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeout bounds reading a full request.
	ReadTimeout time.Duration `mapstructure:"read_timeout" default:"30s"`
	// WriteTimeout bounds writing a response, including interactive syncs.
	WriteTimeout time.Duration `mapstructure:"write_timeout" default:"120s"`
	// CORSOrigins is a comma separated list of allowed origins, "*" for any.
	CORSOrigins string `mapstructure:"cors_origins" default:"*"`
}

// ListenAddr returns the address passed to the listener.
func (c Config) ListenAddr() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

// CORS returns the cross-origin policy. Credentials are only allowed for an
// explicit origin list.
func (c Config) CORS() cors.Config {
	origins := strings.TrimSpace(c.CORSOrigins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-API-Key,X-Ray-ID",
		ExposeHeaders:    "X-Ray-ID",
		AllowCredentials: origins != "*",
	}
}
