package cmd

import (
	"context"
	"fmt"

	"valortracker/core/cache"
	"valortracker/core/config"
	"valortracker/core/database"
	"valortracker/core/storage"
	"valortracker/core/tasks"
	"valortracker/feature/matches/archive"
	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/matchsync"
	"valortracker/feature/matches/models"
	"valortracker/feature/matches/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps are the collaborators shared by the commands.
type deps struct {
	db      *gorm.DB
	store   *store.Store
	cache   cache.Cache
	henrik  *henrik.Client
	archive *archive.Archive
}

// openDeps connects the database, the cache, the remote client and, when
// enabled, the raw archive bucket. Tables are migrated on the way.
func openDeps(ctx context.Context, cfg *config.Config, l *zap.Logger) (*deps, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db, models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	l.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	c, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if cfg.Redis.Addr == "" {
		l.Info("Using in-process cache")
	} else {
		l.Info("Connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	d := &deps{
		db:     db,
		store:  store.New(db),
		cache:  c,
		henrik: henrik.NewClient(cfg.Henrik, l),
	}

	if cfg.Storage.Archive {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		d.archive = archive.New(client, cfg.Storage.Bucket)
		l.Info("Archiving raw matches", zap.String("bucket", cfg.Storage.Bucket))
	}
	return d, nil
}

// close releases the connections held by d.
func (d *deps) close() {
	if r, ok := d.cache.(*cache.Redis); ok {
		_ = r.Close()
	}
	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func taskConfig(cfg matchsync.Config) tasks.Config {
	return tasks.Config{
		Workers:     cfg.Workers,
		QueueSize:   cfg.QueueSize,
		MaxAttempts: cfg.MaxAttempts,
		RetryDelay:  cfg.RetryDelay,
		TTL:         cfg.TaskTTL,
	}
}
