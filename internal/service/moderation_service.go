package service

import (
	"context"
	"errors"
	"time"

	"campusboard/internal/cache"
	"campusboard/internal/models"
	"campusboard/internal/observability"
	"campusboard/internal/repository"
	"campusboard/internal/validation"

	"gorm.io/gorm"
)

type ModerationService struct {
	sanctionRepo repository.SanctionRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

type ApplySanctionInput struct {
	UserID   string
	Type     string
	Reason   string
	IssuedBy string
	// Days the sanction lasts; 0 means indefinite. Ignored for expulsions,
	// which are always indefinite.
	DurationDays int
}

func NewModerationService(sanctionRepo repository.SanctionRepository, userRepo repository.UserRepository) *ModerationService {
	return &ModerationService{
		sanctionRepo: sanctionRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// ApplySanction records a sanction against a user.
func (s *ModerationService) ApplySanction(ctx context.Context, in ApplySanctionInput) (*models.Sanction, error) {
	if !validation.ValidID(in.UserID) {
		return nil, models.NewValidationError("User id is malformed")
	}
	if !models.ValidSanctionType(in.Type) {
		return nil, models.NewValidationError("Invalid sanction type")
	}
	if in.Reason == "" {
		return nil, models.NewValidationError("Sanction reason is required")
	}
	if in.DurationDays < 0 {
		return nil, models.NewValidationError("Sanction duration must not be negative")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError("Failed to fetch user", err)
	}

	sanction := &models.Sanction{
		UserID:   in.UserID,
		Type:     in.Type,
		Reason:   in.Reason,
		IssuedBy: in.IssuedBy,
	}
	if in.DurationDays > 0 && in.Type != models.SanctionExpulsion {
		expires := s.now().AddDate(0, 0, in.DurationDays)
		sanction.ExpiresAt = &expires
	}

	if err := s.sanctionRepo.Create(ctx, sanction); err != nil {
		return nil, models.NewInternalError("Failed to apply sanction", err)
	}

	observability.SanctionsApplied.WithLabelValues(sanction.Type).Inc()
	return sanction, nil
}

// IsSanctioned reports whether the user is currently restricted from
// publishing. Warnings never restrict; expired suspensions no longer count.
func (s *ModerationService) IsSanctioned(ctx context.Context, userID string) (bool, error) {
	if !validation.ValidID(userID) {
		return false, models.NewValidationError("User id is malformed")
	}

	var sanctions []*models.Sanction
	err := cache.Aside(ctx, cache.SanctionKey(userID), &sanctions, cache.SanctionTTL, func() error {
		var err error
		sanctions, err = s.sanctionRepo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return false, models.NewInternalError("Failed to fetch sanctions", err)
	}

	now := s.now()
	for _, sanction := range sanctions {
		if sanction.Active(now) {
			return true, nil
		}
	}
	return false, nil
}

// ListUserSanctions returns the full sanction history of a user, newest first.
func (s *ModerationService) ListUserSanctions(ctx context.Context, userID string) ([]*models.Sanction, error) {
	if !validation.ValidID(userID) {
		return nil, models.NewValidationError("User id is malformed")
	}
	sanctions, err := s.sanctionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError("Failed to list sanctions", err)
	}
	return sanctions, nil
}

// ListSanctions returns a page of all sanctions, newest first.
func (s *ModerationService) ListSanctions(ctx context.Context, limit, offset int) ([]*models.Sanction, error) {
	sanctions, err := s.sanctionRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError("Failed to list sanctions", err)
	}
	return sanctions, nil
}
