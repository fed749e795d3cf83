package server

import (
	"campusboard/internal/models"
	"campusboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/publicacion
// @Summary Create a post
// @Description Publish a classified ad, marketplace listing or general post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body validation.PostInput true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /publicacion [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		PostType string `json:"tipo"`
		Title    string `json:"titulo"`
		Body     string `json:"contenido"`
		Category string `json:"categoria"`
		Image    string `json:"imagen"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		PostType: req.PostType,
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/publicacion
// @Summary List posts
// @Description List posts newest first, optionally filtered by type and category
// @Tags posts
// @Produce json
// @Param tipo query string false "Post type (aviso, mercado, publicacion)"
// @Param categoria query string false "Category within the post type"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /publicacion [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := s.parsePagination(c)

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		PostType: c.Query("tipo"),
		Category: c.Query("categoria"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/publicacion/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /publicacion/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/publicacion/:id
// @Summary Delete a post
// @Description Authors may delete their own posts; moderators may delete any
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /publicacion/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.postService.DeletePost(c.Context(), service.DeletePostInput{
		PostID:     id,
		ActorID:    currentUserID(c),
		ActorRoles: currentRoles(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// LikePost handles POST /api/publicacion/:id/like
// @Summary Like a post
// @Description Add one to the post's like counter; reactions are anonymous and permanent
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /publicacion/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.LikePost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DislikePost handles POST /api/publicacion/:id/dislike
// @Summary Dislike a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /publicacion/{id}/dislike [post]
func (s *Server) DislikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.DislikePost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
