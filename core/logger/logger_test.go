package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		level zapcore.Level
	}{
		{"Debug console", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"Info json", Config{Level: "info", Format: "json"}, zapcore.InfoLevel},
		{"Warn json", Config{Level: "warn", Format: "json"}, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.level))
			assert.False(t, l.Core().Enabled(tt.level-1))
		})
	}
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-123")
		WithRayID(base, c).Info("hello")
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ray-123", logs.All()[0].ContextMap()["ray_id"])
}

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(&Config{Level: "info", Format: "json"})
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, "message", cfg.EncoderConfig.MessageKey)

	cfg = buildConfig(&Config{Level: "debug", Format: "console"})
	assert.Equal(t, "console", cfg.Encoding)
	assert.True(t, cfg.DisableStacktrace)
	assert.True(t, cfg.Development)
}

func TestWithSync(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithSync(zap.New(core), "p-1", "eu").Info("synced")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "p-1", fields["player_id"])
	assert.Equal(t, "eu", fields["region"])
}
