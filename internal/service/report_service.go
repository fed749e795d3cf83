package service

import (
	"context"
	"errors"

	"campusboard/internal/cache"
	"campusboard/internal/models"
	"campusboard/internal/observability"
	"campusboard/internal/repository"
	"campusboard/internal/validation"

	"gorm.io/gorm"
)

type ReportService struct {
	reportRepo    repository.ReportRepository
	postRepo      repository.PostRepository
	flagThreshold int
}

type CreateReportInput struct {
	ReporterID   string
	TargetPostID string
	Reason       string
	Details      string
}

// FlaggedPost pairs a reported post with its live report total.
type FlaggedPost struct {
	Post        *models.Post `json:"post"`
	ReportTotal int64        `json:"report_total"`
	Flagged     bool         `json:"flagged"`
}

// SyncResult summarizes a report counter synchronization run.
type SyncResult struct {
	Targets      int   `json:"targets"`
	TotalReports int64 `json:"total_reports"`
}

func NewReportService(reportRepo repository.ReportRepository, postRepo repository.PostRepository, flagThreshold int) *ReportService {
	return &ReportService{
		reportRepo:    reportRepo,
		postRepo:      postRepo,
		flagThreshold: flagThreshold,
	}
}

// CreateReport files an abuse report. Only the format of the target id is
// checked: the post may be deleted at any moment and a report against an id
// that no longer resolves is still a valid report.
func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if in.ReporterID == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if msg := validation.ValidateReportInput(&validation.ReportInput{
		TargetPostID: in.TargetPostID,
		Reason:       in.Reason,
		Details:      in.Details,
	}); msg != "" {
		return nil, models.NewValidationError(msg)
	}

	report := &models.Report{
		TargetPostID: in.TargetPostID,
		Reason:       in.Reason,
		Details:      in.Details,
		ReporterID:   in.ReporterID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, models.NewInternalError("Failed to create report", err)
	}

	observability.ReportsCreated.WithLabelValues(report.Reason).Inc()
	return report, nil
}

func (s *ReportService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	if !validation.ValidID(id) {
		return nil, models.NewValidationError("Report id is malformed")
	}
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Report not found")
		}
		return nil, models.NewInternalError("Failed to fetch report", err)
	}
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context, limit, offset int) ([]*models.Report, error) {
	reports, err := s.reportRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError("Failed to list reports", err)
	}
	return reports, nil
}

// ReportsForPost lists every report filed against one post, newest first.
// Moderators use it to read the individual complaints behind a flagged entry;
// the target may already be deleted, its reports remain readable.
func (s *ReportService) ReportsForPost(ctx context.Context, targetPostID string) ([]*models.Report, error) {
	if !validation.ValidID(targetPostID) {
		return nil, models.NewValidationError("Post id is malformed")
	}
	reports, err := s.reportRepo.ListByTarget(ctx, targetPostID)
	if err != nil {
		return nil, models.NewInternalError("Failed to list reports for post", err)
	}
	return reports, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	if !validation.ValidID(id) {
		return models.NewValidationError("Report id is malformed")
	}
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Report not found")
		}
		return models.NewInternalError("Failed to delete report", err)
	}
	return nil
}

// FlaggedPosts returns every post that currently has at least one report,
// with its live report total. Reports whose target post no longer exists are
// silently skipped; a dangling reference never fails the listing.
func (s *ReportService) FlaggedPosts(ctx context.Context) ([]*FlaggedPost, error) {
	var flagged []*FlaggedPost
	err := cache.Aside(ctx, cache.FlaggedPostsKey, &flagged, cache.FlaggedTTL, func() error {
		counts, err := s.reportRepo.CountsByTarget(ctx)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			flagged = []*FlaggedPost{}
			return nil
		}

		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		posts, err := s.postRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}

		flagged = make([]*FlaggedPost, 0, len(posts))
		for _, p := range posts {
			total := counts[p.ID]
			flagged = append(flagged, &FlaggedPost{
				Post:        p,
				ReportTotal: total,
				Flagged:     total >= int64(s.flagThreshold),
			})
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError("Failed to list flagged posts", err)
	}
	return flagged, nil
}

// SyncReportCounts recomputes every post's persisted report counter from the
// reports table. This is the only writer of report_count; creation and
// deletion of reports never touch it directly.
func (s *ReportService) SyncReportCounts(ctx context.Context) (*SyncResult, error) {
	counts, err := s.reportRepo.CountsByTarget(ctx)
	if err != nil {
		return nil, models.NewInternalError("Failed to aggregate reports", err)
	}
	if err := s.postRepo.SetReportCounts(ctx, counts); err != nil {
		return nil, models.NewInternalError("Failed to write report counters", err)
	}

	result := &SyncResult{Targets: len(counts)}
	for _, n := range counts {
		result.TotalReports += n
	}
	return result, nil
}
