// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"campusboard/internal/cache"
	"campusboard/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error)
	List(ctx context.Context, postType, category string, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error)
	Delete(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
	IncrementDislikes(ctx context.Context, id string) error
	SetReportCounts(ctx context.Context, counts map[string]int64) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = models.NewID()
	}
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Where("id = ?", id).
			First(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id IN ?", ids).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, postType, category string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post

	fetch := func() error {
		q := r.db.WithContext(ctx).Preload("Author")
		if postType != "" {
			q = q.Where("post_type = ?", postType)
		}
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q.Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	}

	// Category-filtered pages are not cached; they are rare and cheap.
	if category != "" {
		if err := fetch(); err != nil {
			return nil, err
		}
		return posts, nil
	}

	page := 0
	if limit > 0 {
		page = offset / limit
	}
	key := cache.PostListKey(ctx, postType, page, limit)
	if err := cache.Aside(ctx, key, &posts, cache.PostListTTL, fetch); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostsList(ctx)
	// The flagged listing joins reports to posts, so losing a post changes it
	// just as much as losing a report does.
	cache.InvalidateFlaggedPosts(ctx)
	return nil
}

// IncrementLikes bumps the like counter with a single atomic UPDATE so that
// concurrent reactions never lose increments.
func (r *postRepository) IncrementLikes(ctx context.Context, id string) error {
	return r.incrementCounter(ctx, id, "like_count")
}

// IncrementDislikes bumps the dislike counter with a single atomic UPDATE.
func (r *postRepository) IncrementDislikes(ctx context.Context, id string) error {
	return r.incrementCounter(ctx, id, "dislike_count")
}

func (r *postRepository) incrementCounter(ctx context.Context, id, column string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// SetReportCounts rewrites every post's report counter from the given
// aggregation: posts absent from counts are reset to zero.
func (r *postRepository) SetReportCounts(ctx context.Context, counts map[string]int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("report_count <> 0").
			UpdateColumn("report_count", 0).Error; err != nil {
			return err
		}
		for id, n := range counts {
			if err := tx.Model(&models.Post{}).
				Where("id = ?", id).
				UpdateColumn("report_count", n).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for id := range counts {
		cache.InvalidatePost(ctx, id)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}
