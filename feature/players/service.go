package players

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/models"

	"go.uber.org/zap"
)

// ErrInvalidName is returned when the name or tag is empty.
var ErrInvalidName = errors.New("name and tag are required")

// AccountSource looks up a remote account by display name and tag.
type AccountSource interface {
	Account(ctx context.Context, name, tag string) (*henrik.Account, error)
}

// Store persists players.
type Store interface {
	UpsertPlayer(ctx context.Context, p *models.Player) error
	Player(ctx context.Context, id string) (*models.Player, error)
	Players(ctx context.Context) ([]models.Player, error)
}

// Service resolves and lists players.
type Service struct {
	accounts AccountSource
	store    Store
	logger   *zap.Logger
}

// NewService creates a new player service.
func NewService(accounts AccountSource, store Store, logger *zap.Logger) *Service {
	return &Service{accounts: accounts, store: store, logger: logger}
}

// Resolve looks the account up remotely and refreshes the stored player.
func (s *Service) Resolve(ctx context.Context, name, tag string) (*models.Player, error) {
	name, tag = strings.TrimSpace(name), strings.TrimSpace(tag)
	if name == "" || tag == "" {
		return nil, ErrInvalidName
	}

	acc, err := s.accounts.Account(ctx, name, tag)
	if err != nil {
		return nil, fmt.Errorf("resolve %s#%s: %w", name, tag, err)
	}

	p := &models.Player{
		ID:           acc.PUUID,
		Name:         acc.Name,
		Tag:          acc.Tag,
		Region:       strings.ToLower(acc.Region),
		AccountLevel: acc.AccountLevel,
	}
	if p.Name == "" {
		p.Name = name
	}
	if p.Tag == "" {
		p.Tag = tag
	}
	if err := s.store.UpsertPlayer(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug("Resolved player",
		zap.String("player_id", p.ID),
		zap.String("name", p.Name),
		zap.String("region", p.Region),
	)
	return s.store.Player(ctx, p.ID)
}

// List returns every known player.
func (s *Service) List(ctx context.Context) ([]models.Player, error) {
	return s.store.Players(ctx)
}
