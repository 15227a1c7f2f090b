package activity

import (
	"context"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists activity rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, log *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByEntity returns the entries for one entity, oldest first.
func (r *Repository) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
