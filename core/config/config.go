package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"valortracker/core/cache"
	"valortracker/core/database"
	"valortracker/core/logger"
	"valortracker/core/server"
	"valortracker/core/storage"
	"valortracker/feature/agents"
	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/matchsync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Redis holds configuration for the shared cache.
	Redis cache.Config `mapstructure:"redis"`
	// Storage holds configuration for the raw match archive bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Henrik holds configuration for the remote match source.
	Henrik henrik.Config `mapstructure:"henrik"`
	// Sync holds the pagination policy and background worker settings.
	Sync matchsync.Config `mapstructure:"sync"`
	// Agents holds configuration for the agent catalog source.
	Agents agents.Config `mapstructure:"agents"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SYNC_PAGE_SIZE -> sync.page_size)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate rejects settings the sync engine cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}

	s := c.Sync
	if s.PageSize <= 0 {
		errs = append(errs, errors.New("sync.page_size must be positive"))
	}
	if s.HitThreshold <= 0 {
		errs = append(errs, errors.New("sync.hit_threshold must be positive"))
	}
	if s.InteractiveCap <= 0 || s.BackgroundCap <= 0 {
		errs = append(errs, errors.New("sync caps must be positive"))
	}
	if s.BackgroundCap < s.InteractiveCap {
		errs = append(errs, errors.New("sync.background_cap must not be below sync.interactive_cap"))
	}
	if s.ScheduleEnabled && s.ScheduleInterval <= 0 {
		errs = append(errs, errors.New("sync.schedule_interval must be positive when scheduling is enabled"))
	}

	if c.Henrik.BaseURL == "" {
		errs = append(errs, errors.New("henrik.base_url is required"))
	}
	if c.Storage.Archive && c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage.bucket is required when archiving"))
	}
	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
