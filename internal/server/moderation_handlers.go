package server

import (
	"campusboard/internal/models"
	"campusboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ApplySanction handles POST /api/moderacion/usuarios/:id/sancion
// @Summary Sanction a user
// @Description Apply a warning, suspension or expulsion to a user
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body object{tipo=string,motivo=string,dias=int} true "Sanction payload"
// @Success 201 {object} models.Sanction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /moderacion/usuarios/{id}/sancion [post]
func (s *Server) ApplySanction(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Type         string `json:"tipo"`
		Reason       string `json:"motivo"`
		DurationDays int    `json:"dias"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sanction, err := s.moderationService.ApplySanction(c.Context(), service.ApplySanctionInput{
		UserID:       id,
		Type:         req.Type,
		Reason:       req.Reason,
		IssuedBy:     currentUserID(c),
		DurationDays: req.DurationDays,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sanction)
}

// IsSanctioned handles GET /api/moderacion/usuarios/:id/sancionado
// @Summary Check whether a user is restricted
// @Description Warnings never restrict; expired suspensions no longer count
// @Tags moderation
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} object{sanctioned=bool}
// @Security BearerAuth
// @Router /moderacion/usuarios/{id}/sancionado [get]
func (s *Server) IsSanctioned(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	sanctioned, err := s.moderationService.IsSanctioned(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"sanctioned": sanctioned})
}

// GetUserSanctions handles GET /api/moderacion/usuarios/:id/sanciones
// @Summary Sanction history of a user
// @Tags moderation
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Sanction
// @Security BearerAuth
// @Router /moderacion/usuarios/{id}/sanciones [get]
func (s *Server) GetUserSanctions(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	sanctions, err := s.moderationService.ListUserSanctions(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(sanctions)
}

// GetSanctions handles GET /api/moderacion/sanciones
// @Summary List all sanctions
// @Tags moderation
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Sanction
// @Security BearerAuth
// @Router /moderacion/sanciones [get]
func (s *Server) GetSanctions(c *fiber.Ctx) error {
	p := s.parsePagination(c)

	sanctions, err := s.moderationService.ListSanctions(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(sanctions)
}
