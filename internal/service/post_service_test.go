package service

import (
	"context"
	"errors"
	"testing"

	"campusboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, string) (*models.Post, error)
	getByIDsFn          func(context.Context, []string) ([]*models.Post, error)
	listFn              func(context.Context, string, string, int, int) ([]*models.Post, error)
	listByAuthorFn      func(context.Context, string, int, int) ([]*models.Post, error)
	deleteFn            func(context.Context, string) error
	incrementLikesFn    func(context.Context, string) error
	incrementDislikesFn func(context.Context, string) error
	setReportCountsFn   func(context.Context, map[string]int64) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *postRepoStub) List(ctx context.Context, postType, category string, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, postType, category, limit, offset)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementLikes(ctx context.Context, id string) error {
	return s.incrementLikesFn(ctx, id)
}
func (s *postRepoStub) IncrementDislikes(ctx context.Context, id string) error {
	return s.incrementDislikesFn(ctx, id)
}
func (s *postRepoStub) SetReportCounts(ctx context.Context, counts map[string]int64) error {
	return s.setReportCountsFn(ctx, counts)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:            func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:           func(_ context.Context, _ string) (*models.Post, error) { return &models.Post{}, nil },
		getByIDsFn:          func(_ context.Context, _ []string) ([]*models.Post, error) { return nil, nil },
		listFn:              func(_ context.Context, _, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn:      func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		deleteFn:            func(_ context.Context, _ string) error { return nil },
		incrementLikesFn:    func(_ context.Context, _ string) error { return nil },
		incrementDislikesFn: func(_ context.Context, _ string) error { return nil },
		setReportCountsFn:   func(_ context.Context, _ map[string]int64) error { return nil },
	}
}

// imageStoreStub is a stub for ImageStore.
type imageStoreStub struct {
	existsFn func(string) (bool, error)
}

func (s *imageStoreStub) Exists(name string) (bool, error) {
	return s.existsFn(name)
}

func allImagesExist() *imageStoreStub {
	return &imageStoreStub{existsFn: func(string) (bool, error) { return true, nil }}
}

func neverSanctioned(_ context.Context, _ string) (bool, error) { return false, nil }

// assertErrorCode asserts that err is an AppError with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

const testPostID = "507f1f77bcf86cd799439011"
const testUserID = "aaaaaaaaaaaaaaaaaaaaaaaa"

func validCreateInput() CreatePostInput {
	return CreatePostInput{
		AuthorID: testUserID,
		PostType: models.PostTypeAviso,
		Title:    "Perdí mi credencial",
		Body:     "La dejé en la sala de estudio ayer por la tarde.",
		Category: "perdidos",
	}
}

func TestCreatePost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := noopPostRepo()
		var created *models.Post
		repo.createFn = func(_ context.Context, p *models.Post) error {
			created = p
			return nil
		}
		svc := NewPostService(repo, allImagesExist(), neverSanctioned)

		post, err := svc.CreatePost(context.Background(), validCreateInput())
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, testUserID, post.AuthorID)
		assert.Equal(t, models.PostTypeAviso, post.PostType)
	})

	t.Run("requires authentication", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), allImagesExist(), neverSanctioned)
		in := validCreateInput()
		in.AuthorID = ""
		_, err := svc.CreatePost(context.Background(), in)
		assertErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("sanctioned author is rejected", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), allImagesExist(),
			func(_ context.Context, _ string) (bool, error) { return true, nil })
		_, err := svc.CreatePost(context.Background(), validCreateInput())
		assertErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("invalid category for type", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), allImagesExist(), neverSanctioned)
		in := validCreateInput()
		in.Category = "ventas"
		_, err := svc.CreatePost(context.Background(), in)
		assertErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("mercado without image", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), allImagesExist(), neverSanctioned)
		in := validCreateInput()
		in.PostType = models.PostTypeMercado
		in.Category = "ventas"
		_, err := svc.CreatePost(context.Background(), in)
		assertErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("referenced image must exist in the store", func(t *testing.T) {
		images := &imageStoreStub{existsFn: func(string) (bool, error) { return false, nil }}
		svc := NewPostService(noopPostRepo(), images, neverSanctioned)
		in := validCreateInput()
		in.Image = "missing.jpg"
		_, err := svc.CreatePost(context.Background(), in)
		assertErrorCode(t, err, "IMAGE_NOT_FOUND")
	})
}

func TestGetPost(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), allImagesExist(), neverSanctioned)
		_, err := svc.GetPost(context.Background(), "not-hex")
		assertErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("not found", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ string) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewPostService(repo, allImagesExist(), neverSanctioned)
		_, err := svc.GetPost(context.Background(), testPostID)
		assertErrorCode(t, err, "NOT_FOUND")
	})
}

func TestListPosts(t *testing.T) {
	svc := NewPostService(noopPostRepo(), allImagesExist(), neverSanctioned)

	t.Run("invalid type filter", func(t *testing.T) {
		_, err := svc.ListPosts(context.Background(), ListPostsInput{PostType: "otros"})
		assertErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("category filter requires type", func(t *testing.T) {
		_, err := svc.ListPosts(context.Background(), ListPostsInput{Category: "ventas"})
		assertErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("valid filter passes through", func(t *testing.T) {
		repo := noopPostRepo()
		var gotType, gotCategory string
		repo.listFn = func(_ context.Context, postType, category string, _, _ int) ([]*models.Post, error) {
			gotType, gotCategory = postType, category
			return []*models.Post{}, nil
		}
		svc := NewPostService(repo, allImagesExist(), neverSanctioned)
		_, err := svc.ListPosts(context.Background(), ListPostsInput{
			PostType: models.PostTypeMercado,
			Category: "ventas",
			Limit:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostTypeMercado, gotType)
		assert.Equal(t, "ventas", gotCategory)
	})
}

func TestDeletePost(t *testing.T) {
	existing := &models.Post{ID: testPostID, AuthorID: testUserID}

	repoWith := func(post *models.Post) *postRepoStub {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ string) (*models.Post, error) { return post, nil }
		return repo
	}

	t.Run("author deletes own post", func(t *testing.T) {
		repo := repoWith(existing)
		deleted := false
		repo.deleteFn = func(_ context.Context, _ string) error { deleted = true; return nil }
		svc := NewPostService(repo, allImagesExist(), neverSanctioned)

		err := svc.DeletePost(context.Background(), DeletePostInput{
			PostID:  testPostID,
			ActorID: testUserID,
		})
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("stranger without permission is rejected", func(t *testing.T) {
		svc := NewPostService(repoWith(existing), allImagesExist(), neverSanctioned)
		err := svc.DeletePost(context.Background(), DeletePostInput{
			PostID:     testPostID,
			ActorID:    "bbbbbbbbbbbbbbbbbbbbbbbb",
			ActorRoles: []string{models.RoleUser},
		})
		assertErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("moderator deletes any post", func(t *testing.T) {
		repo := repoWith(existing)
		deleted := false
		repo.deleteFn = func(_ context.Context, _ string) error { deleted = true; return nil }
		svc := NewPostService(repo, allImagesExist(), neverSanctioned)

		err := svc.DeletePost(context.Background(), DeletePostInput{
			PostID:     testPostID,
			ActorID:    "bbbbbbbbbbbbbbbbbbbbbbbb",
			ActorRoles: []string{models.RoleModerator},
		})
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestReactions(t *testing.T) {
	t.Run("like increments and returns the refreshed post", func(t *testing.T) {
		repo := noopPostRepo()
		var liked string
		repo.incrementLikesFn = func(_ context.Context, id string) error { liked = id; return nil }
		repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id, LikeCount: 5}, nil
		}
		svc := NewPostService(repo, allImagesExist(), neverSanctioned)

		post, err := svc.LikePost(context.Background(), testPostID)
		require.NoError(t, err)
		assert.Equal(t, testPostID, liked)
		assert.Equal(t, 5, post.LikeCount)
	})

	t.Run("dislike on missing post", func(t *testing.T) {
		repo := noopPostRepo()
		repo.incrementDislikesFn = func(_ context.Context, _ string) error { return gorm.ErrRecordNotFound }
		svc := NewPostService(repo, allImagesExist(), neverSanctioned)
		_, err := svc.DislikePost(context.Background(), testPostID)
		assertErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), allImagesExist(), neverSanctioned)
		_, err := svc.LikePost(context.Background(), "zzz")
		assertErrorCode(t, err, "VALIDATION_ERROR")
	})
}
