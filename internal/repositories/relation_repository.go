package repositories

import (
	"errors"

	"github.com/tastebook/backend/internal/models"
	"gorm.io/gorm"
)

// RelationRepository defines the interface for toggle-able actor→target edges
// (likes, bookmarks, subscriptions).
type RelationRepository interface {
	// Toggle flips the relation and reports whether it is active afterwards.
	Toggle(actorID uint, targetID string, kind string) (bool, error)
	IsActive(actorID uint, targetID string, kind string) (bool, error)
	CountByTarget(targetID string, kind string) (int64, error)
	CountByActor(actorID uint, kind string) (int64, error)
	ListTargetIDs(actorID uint, kind string) ([]string, error)
	ListActorIDs(targetID string, kind string) ([]uint, error)
	// ActiveMap reports which of targetIDs the actor has an active relation
	// with, for batch enrichment of listings.
	ActiveMap(actorID uint, kind string, targetIDs []string) (map[string]bool, error)
}

// PostgresRelationRepository implements RelationRepository for PostgreSQL
type PostgresRelationRepository struct {
	db *gorm.DB
}

// NewPostgresRelationRepository creates a new PostgresRelationRepository
func NewPostgresRelationRepository(db *gorm.DB) *PostgresRelationRepository {
	return &PostgresRelationRepository{db: db}
}

// Toggle deletes the edge if it exists, otherwise inserts it. The composite
// unique index on (actor_id, target_id, kind) is the authority under races: a
// duplicate-key failure means another request created the edge first, which is
// reported as the relation being active.
func (r *PostgresRelationRepository) Toggle(actorID uint, targetID string, kind string) (bool, error) {
	res := r.db.Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, kind).
		Delete(&models.Relation{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	rel := &models.Relation{ActorID: actorID, TargetID: targetID, Kind: kind}
	if err := r.db.Create(rel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresRelationRepository) IsActive(actorID uint, targetID string, kind string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Relation{}).
		Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, kind).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRelationRepository) CountByTarget(targetID string, kind string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Relation{}).
		Where("target_id = ? AND kind = ?", targetID, kind).
		Count(&count).Error
	return count, err
}

func (r *PostgresRelationRepository) CountByActor(actorID uint, kind string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Relation{}).
		Where("actor_id = ? AND kind = ?", actorID, kind).
		Count(&count).Error
	return count, err
}

func (r *PostgresRelationRepository) ListTargetIDs(actorID uint, kind string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Relation{}).
		Where("actor_id = ? AND kind = ?", actorID, kind).
		Order("created_at DESC").
		Pluck("target_id", &ids).Error
	return ids, err
}

func (r *PostgresRelationRepository) ListActorIDs(targetID string, kind string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Relation{}).
		Where("target_id = ? AND kind = ?", targetID, kind).
		Order("created_at DESC").
		Pluck("actor_id", &ids).Error
	return ids, err
}

func (r *PostgresRelationRepository) ActiveMap(actorID uint, kind string, targetIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(targetIDs) == 0 {
		return result, nil
	}
	var relations []models.Relation
	err := r.db.Where("actor_id = ? AND kind = ? AND target_id IN ?", actorID, kind, targetIDs).
		Find(&relations).Error
	if err != nil {
		return nil, err
	}
	for _, rel := range relations {
		result[rel.TargetID] = true
	}
	return result, nil
}
