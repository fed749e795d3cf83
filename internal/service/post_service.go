// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"errors"

	"campusboard/internal/authz"
	"campusboard/internal/models"
	"campusboard/internal/observability"
	"campusboard/internal/repository"
	"campusboard/internal/validation"

	"gorm.io/gorm"
)

// ImageStore is the part of the image store the post service needs.
type ImageStore interface {
	Exists(name string) (bool, error)
}

type PostService struct {
	postRepo     repository.PostRepository
	images       ImageStore
	isSanctioned func(ctx context.Context, userID string) (bool, error)
}

type CreatePostInput struct {
	AuthorID string
	PostType string
	Title    string
	Body     string
	Category string
	Image    string
}

type ListPostsInput struct {
	PostType string
	Category string
	Limit    int
	Offset   int
}

type DeletePostInput struct {
	PostID     string
	ActorID    string
	ActorRoles []string
}

func NewPostService(
	postRepo repository.PostRepository,
	images ImageStore,
	isSanctioned func(ctx context.Context, userID string) (bool, error),
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		images:       images,
		isSanctioned: isSanctioned,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	if s.isSanctioned != nil {
		restricted, err := s.isSanctioned(ctx, in.AuthorID)
		if err != nil {
			return nil, err
		}
		if restricted {
			return nil, models.NewForbiddenError("Account is sanctioned and cannot publish")
		}
	}

	if msg := validation.ValidatePostInput(&validation.PostInput{
		PostType: in.PostType,
		Title:    in.Title,
		Body:     in.Body,
		Category: in.Category,
		Image:    in.Image,
	}); msg != "" {
		return nil, models.NewValidationError(msg)
	}

	// The image must already be uploaded; a post never references a file
	// the store does not hold.
	if in.Image != "" {
		exists, err := s.images.Exists(in.Image)
		if err != nil {
			return nil, models.NewInternalError("Failed to check image", err)
		}
		if !exists {
			return nil, models.NewImageNotFoundError(in.Image)
		}
	}

	post := &models.Post{
		PostType: in.PostType,
		Title:    in.Title,
		Body:     in.Body,
		Category: in.Category,
		Image:    in.Image,
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError("Failed to create post", err)
	}

	observability.PostsCreated.WithLabelValues(post.PostType).Inc()
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if !validation.ValidID(id) {
		return nil, models.NewValidationError("Post id is malformed")
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError("Failed to fetch post", err)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.PostType != "" {
		if _, ok := models.CategoriesByType[in.PostType]; !ok {
			return nil, models.NewValidationError("Invalid post type filter")
		}
		if in.Category != "" && !models.ValidCategory(in.PostType, in.Category) {
			return nil, models.NewValidationError("Invalid category filter for post type")
		}
	} else if in.Category != "" {
		return nil, models.NewValidationError("Category filter requires a post type")
	}

	posts, err := s.postRepo.List(ctx, in.PostType, in.Category, in.Limit, in.Offset)
	if err != nil {
		return nil, models.NewInternalError("Failed to list posts", err)
	}
	return posts, nil
}

func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error) {
	if !validation.ValidID(authorID) {
		return nil, models.NewValidationError("Author id is malformed")
	}
	posts, err := s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError("Failed to list posts", err)
	}
	return posts, nil
}

// DeletePost removes a post. Authors may remove their own posts; anyone else
// needs the delete-post permission.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if !validation.ValidID(in.PostID) {
		return models.NewValidationError("Post id is malformed")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return models.NewInternalError("Failed to fetch post", err)
	}

	if post.AuthorID != in.ActorID && !authz.Allowed(in.ActorRoles, authz.ActionDeletePost) {
		return models.NewForbiddenError("Not allowed to delete this post")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return models.NewInternalError("Failed to delete post", err)
	}
	return nil
}

// LikePost registers one like and returns the refreshed post. Reactions are
// anonymous counters; there is no per-user record and no undo.
func (s *PostService) LikePost(ctx context.Context, id string) (*models.Post, error) {
	return s.react(ctx, id, s.postRepo.IncrementLikes)
}

// DislikePost registers one dislike and returns the refreshed post.
func (s *PostService) DislikePost(ctx context.Context, id string) (*models.Post, error) {
	return s.react(ctx, id, s.postRepo.IncrementDislikes)
}

func (s *PostService) react(ctx context.Context, id string, inc func(context.Context, string) error) (*models.Post, error) {
	if !validation.ValidID(id) {
		return nil, models.NewValidationError("Post id is malformed")
	}
	if err := inc(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError("Failed to update reaction", err)
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch post", err)
	}
	return post, nil
}
