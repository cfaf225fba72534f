package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"valortracker/feature/matches/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence gateway for matches, participations and players.
type Store struct {
	db *gorm.DB
}

// New creates a store on an open connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ExistingMatchIDs returns the subset of ids already stored, in one query.
func (s *Store) ExistingMatchIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var found []string
	if err := s.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing matches: %w", err)
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}

// ExistingParticipations maps match id to the linked flag of playerID's row,
// for the matches where such a row exists.
func (s *Store) ExistingParticipations(ctx context.Context, matchIDs []string, playerID string) (map[string]bool, error) {
	out := make(map[string]bool, len(matchIDs))
	if len(matchIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		MatchID string
		Linked  bool
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Participation{}).
		Select("match_id", "linked").
		Where("match_id IN ? AND player_id = ?", matchIDs, playerID).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing participations: %w", err)
	}
	for _, r := range rows {
		out[r.MatchID] = r.Linked
	}
	return out, nil
}

// InsertMatchWithRoster stores a match and its full roster atomically.
// A concurrent insert of the same match yields models.ErrDuplicateKey.
func (s *Store) InsertMatchWithRoster(ctx context.Context, match *models.Match, roster []models.Participation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return err
		}
		if len(roster) == 0 {
			return nil
		}
		return tx.Create(&roster).Error
	})
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return fmt.Errorf("match %s: %w", match.ID, models.ErrDuplicateKey)
	}
	return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
}

// MarkLinked flags playerID's rows in the given matches as linked, in one
// statement. Missing rows are ignored.
func (s *Store) MarkLinked(ctx context.Context, matchIDs []string, playerID string) (int64, error) {
	if len(matchIDs) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Participation{}).
		Where("match_id IN ? AND player_id = ? AND linked = ?", matchIDs, playerID, false).
		Update("linked", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to link participations: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// History returns playerID's linked participations with their match, newest first.
func (s *Store) History(ctx context.Context, playerID string, limit int) ([]models.Participation, error) {
	var parts []models.Participation
	q := s.db.WithContext(ctx).
		Joins("JOIN matches ON matches.id = participations.match_id").
		Where("participations.player_id = ? AND participations.linked = ?", playerID, true).
		Order("matches.start_time DESC").
		Order("participations.match_id").
		Preload("Match")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", playerID, err)
	}
	return parts, nil
}

// Scoreboard returns a match and its roster ordered by position.
func (s *Store) Scoreboard(ctx context.Context, matchID string) (*models.Match, []models.Participation, error) {
	var match models.Match
	if err := s.db.WithContext(ctx).First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("match %s: %w", matchID, models.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}

	var roster []models.Participation
	if err := s.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("position").
		Find(&roster).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load roster of %s: %w", matchID, err)
	}
	return &match, roster, nil
}

// ClearAll removes every match and participation and returns the ids of the
// players whose rows were removed.
func (s *Store) ClearAll(ctx context.Context) ([]string, error) {
	var players []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Participation{}).Distinct().Pluck("player_id", &players).Error; err != nil {
			return err
		}
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		return all.Delete(&models.Match{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clear matches: %w", err)
	}
	return players, nil
}

// UpsertPlayer inserts the player or refreshes its mutable fields.
func (s *Store) UpsertPlayer(ctx context.Context, p *models.Player) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "tag", "region", "account_level", "updated_at"}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
	}
	return nil
}

// Player loads one player by id.
func (s *Store) Player(ctx context.Context, id string) (*models.Player, error) {
	var p models.Player
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load player %s: %w", id, err)
	}
	return &p, nil
}

// Players lists every known player.
func (s *Store) Players(ctx context.Context) ([]models.Player, error) {
	var out []models.Player
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return out, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Drivers without an error translator.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
