package repository

import (
	"context"

	"campusboard/internal/cache"
	"campusboard/internal/models"

	"gorm.io/gorm"
)

// SanctionRepository defines the interface for sanction data operations
type SanctionRepository interface {
	Create(ctx context.Context, sanction *models.Sanction) error
	ListByUser(ctx context.Context, userID string) ([]*models.Sanction, error)
	List(ctx context.Context, limit, offset int) ([]*models.Sanction, error)
	Delete(ctx context.Context, id string) error
}

type sanctionRepository struct {
	db *gorm.DB
}

// NewSanctionRepository creates a new sanction repository
func NewSanctionRepository(db *gorm.DB) SanctionRepository {
	return &sanctionRepository{db: db}
}

func (r *sanctionRepository) Create(ctx context.Context, sanction *models.Sanction) error {
	if sanction.ID == "" {
		sanction.ID = models.NewID()
	}
	err := r.db.WithContext(ctx).Create(sanction).Error
	if err == nil {
		cache.InvalidateSanction(ctx, sanction.UserID)
	}
	return err
}

func (r *sanctionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Sanction, error) {
	var sanctions []*models.Sanction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sanctions).Error
	if err != nil {
		return nil, err
	}
	return sanctions, nil
}

func (r *sanctionRepository) List(ctx context.Context, limit, offset int) ([]*models.Sanction, error) {
	var sanctions []*models.Sanction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sanctions).Error
	if err != nil {
		return nil, err
	}
	return sanctions, nil
}

func (r *sanctionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Sanction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
