package repository

import (
	"context"

	"campusboard/internal/cache"
	"campusboard/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines the interface for abuse report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context, limit, offset int) ([]*models.Report, error)
	ListByTarget(ctx context.Context, targetPostID string) ([]*models.Report, error)
	Delete(ctx context.Context, id string) error
	CountsByTarget(ctx context.Context) (map[string]int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = models.NewID()
	}
	err := r.db.WithContext(ctx).Create(report).Error
	if err == nil {
		cache.InvalidateFlaggedPosts(ctx)
	}
	return err
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, limit, offset int) ([]*models.Report, error) {
	var reports []*models.Report
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListByTarget(ctx context.Context, targetPostID string) ([]*models.Report, error) {
	var reports []*models.Report
	err := r.db.WithContext(ctx).
		Where("target_post_id = ?", targetPostID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateFlaggedPosts(ctx)
	return nil
}

// CountsByTarget aggregates report totals per target post id.
func (r *reportRepository) CountsByTarget(ctx context.Context) (map[string]int64, error) {
	type row struct {
		TargetPostID string
		Total        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Select("target_post_id, COUNT(*) as total").
		Group("target_post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.TargetPostID] = rw.Total
	}
	return counts, nil
}
