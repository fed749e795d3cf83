package repository

import (
	"context"
	"testing"

	"campusboard/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an isolated in-memory database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Report{}, &models.Sanction{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:       models.NewID(),
		Username: "jperez",
		Email:    "jperez2024@alumnos.ubiobio.cl",
		Password: "hashed",
		Roles:    models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID, postType, category string) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:       models.NewID(),
		PostType: postType,
		Title:    "Clases de calculo",
		Body:     "Ofrezco clases particulares de calculo diferencial",
		Category: category,
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedReport(t *testing.T, db *gorm.DB, targetID, reason string) *models.Report {
	t.Helper()
	report := &models.Report{
		ID:           models.NewID(),
		TargetPostID: targetID,
		Reason:       reason,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func ctx() context.Context {
	return context.Background()
}
