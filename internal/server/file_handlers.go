package server

import (
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"

	"campusboard/internal/models"
	"campusboard/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 5 << 20 // 5 MiB

// ListImages handles GET /api/ftp
// @Summary List stored images
// @Tags images
// @Produce json
// @Success 200 {array} string
// @Router /ftp [get]
func (s *Server) ListImages(c *fiber.Ctx) error {
	names, err := s.images.List()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to list images", err))
	}
	return c.JSON(names)
}

// DownloadImage handles GET /api/ftp/:name
// @Summary Download a stored image
// @Tags images
// @Produce octet-stream
// @Param name path string true "Image file name"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /ftp/{name} [get]
func (s *Server) DownloadImage(c *fiber.Ctx) error {
	name := c.Params("name")
	if msg := validation.ValidateImageName(name); msg != "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(msg))
	}

	f, err := s.images.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Image not found"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to open image", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to read image", err))
	}

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	return c.Send(data)
}

// UploadImage handles POST /api/ftp
// @Summary Upload an image
// @Description Accepts a multipart "imagen" field; only jpg, png and gif are stored
// @Tags images
// @Accept mpfd
// @Produce json
// @Success 201 {object} object{nombre=string,bytes=int}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /ftp [post]
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Multipart field 'imagen' is required"))
	}

	name := filepath.Base(fileHeader.Filename)
	if msg := validation.ValidateImageName(name); msg != "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(msg))
	}
	if fileHeader.Size > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image exceeds the 5 MiB limit"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to read upload", err))
	}
	defer src.Close()

	n, err := s.images.Save(name, src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to store image", err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"nombre": name,
		"bytes":  n,
	})
}
