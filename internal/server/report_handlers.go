package server

import (
	"campusboard/internal/models"
	"campusboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reporte
// @Summary File an abuse report
// @Description Report a post; the target id is checked for format only, never for existence
// @Tags reports
// @Accept json
// @Produce json
// @Param request body validation.ReportInput true "Report payload"
// @Success 201 {object} models.Report
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reporte [post]
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		TargetPostID string `json:"publicacion"`
		Reason       string `json:"motivo"`
		Details      string `json:"detalle"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.CreateReport(c.Context(), service.CreateReportInput{
		ReporterID:   currentUserID(c),
		TargetPostID: req.TargetPostID,
		Reason:       req.Reason,
		Details:      req.Details,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/reporte
// @Summary List reports
// @Tags reports
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Report
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reporte [get]
func (s *Server) GetReports(c *fiber.Ctx) error {
	p := s.parsePagination(c)

	reports, err := s.reportService.ListReports(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reports)
}

// GetReport handles GET /api/reporte/:id
// @Summary Get a report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} models.Report
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reporte/{id} [get]
func (s *Server) GetReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	report, err := s.reportService.GetReport(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(report)
}

// DeleteReport handles DELETE /api/reporte/:id
// @Summary Dismiss a report
// @Description Remove a report once a moderator has resolved it
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reporte/{id} [delete]
func (s *Server) DeleteReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reportService.DeleteReport(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Report deleted"})
}

// GetFlaggedPosts handles GET /api/reporte/publicaciones
// @Summary List reported posts
// @Description Posts with at least one report, each with its live report total; dangling reports are skipped
// @Tags reports
// @Produce json
// @Success 200 {array} service.FlaggedPost
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reporte/publicaciones [get]
func (s *Server) GetFlaggedPosts(c *fiber.Ctx) error {
	flagged, err := s.reportService.FlaggedPosts(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(flagged)
}

// GetPostReports handles GET /api/reporte/publicaciones/:id
// @Summary List the reports filed against one post
// @Description The individual complaints behind a flagged entry; readable even after the post is deleted
// @Tags reports
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Report
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reporte/publicaciones/{id} [get]
func (s *Server) GetPostReports(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reports, err := s.reportService.ReportsForPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reports)
}

// SyncReportCounts handles POST /api/reporte/sync
// @Summary Synchronize report counters
// @Description Recompute every post's persisted report counter from the reports table
// @Tags reports
// @Produce json
// @Success 200 {object} service.SyncResult
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reporte/sync [post]
func (s *Server) SyncReportCounts(c *fiber.Ctx) error {
	result, err := s.reportService.SyncReportCounts(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}
