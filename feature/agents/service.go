package agents

import (
	"context"
	"fmt"

	"valortracker/feature/matches/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service lists the agent catalog and fills it on demand.
type Service struct {
	db     *gorm.DB
	source Source
	logger *zap.Logger
	group  singleflight.Group
}

// NewService creates a new agent service.
func NewService(db *gorm.DB, source Source, logger *zap.Logger) *Service {
	return &Service{db: db, source: source, logger: logger}
}

// List returns the stored agents ordered by name. An empty table is filled
// from the source first; concurrent callers share one fill.
func (s *Service) List(ctx context.Context) ([]models.Agent, error) {
	agents, err := s.stored(ctx)
	if err != nil || len(agents) > 0 {
		return agents, err
	}

	v, err, _ := s.group.Do("fill", func() (any, error) {
		return s.fill(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Agent), nil
}

// Refresh deletes the stored catalog and returns how many rows were removed.
func (s *Service) Refresh(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Agent{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear agents: %w", res.Error)
	}
	s.logger.Info("Cleared agent catalog", zap.Int64("deleted", res.RowsAffected))
	return res.RowsAffected, nil
}

func (s *Service) stored(ctx context.Context) ([]models.Agent, error) {
	var out []models.Agent
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return out, nil
}

func (s *Service) fill(ctx context.Context) ([]models.Agent, error) {
	remote, err := s.source.Agents(ctx)
	if err != nil {
		return nil, err
	}
	if len(remote) > 0 {
		// Another process may have filled the table meanwhile.
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}},
			DoNothing: true,
		}).Create(&remote).Error
		if err != nil {
			return nil, fmt.Errorf("failed to store agents: %w", err)
		}
	}
	s.logger.Info("Filled agent catalog", zap.Int("agents", len(remote)))
	return s.stored(ctx)
}
