// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"campusboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       models.NewID(),
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    fmt.Sprintf("%s%d@alumnos.ubiobio.cl", gofakeit.Word(), gofakeit.Number(1000, 9999)),
		Password: string(hashed),
	}
	user.SetRoles([]string{models.RoleUser})

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateModerator persists a user carrying the moderator role.
func (f *Factory) CreateModerator() (*models.User, error) {
	return f.CreateUser(func(u *models.User) {
		u.SetRoles([]string{models.RoleUser, models.RoleModerator})
	})
}

// CreateAdmin persists a user carrying the admin role.
func (f *Factory) CreateAdmin() (*models.User, error) {
	return f.CreateUser(func(u *models.User) {
		u.SetRoles([]string{models.RoleUser, models.RoleAdmin})
	})
}

// BuildPost constructs a post for the given author with a random type and a
// category valid for that type, but does not persist it.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	types := []string{models.PostTypeAviso, models.PostTypeMercado, models.PostTypePublicacion}
	postType := types[f.rnd.Intn(len(types))]
	categories := models.CategoriesByType[postType]
	category := categories[f.rnd.Intn(len(categories))]

	post := &models.Post{
		ID:       models.NewID(),
		PostType: postType,
		Title:    gofakeit.Sentence(5),
		Body:     gofakeit.Paragraph(1, 3, 8, "\n"),
		Category: category,
		AuthorID: author.ID,
	}
	if postType == models.PostTypeMercado {
		post.Image = fmt.Sprintf("seed-%s.jpg", gofakeit.UUID()[:8])
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rnd.Intn(90)
	hoursBack := f.rnd.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	post.LikeCount = f.rnd.Intn(40)
	post.DislikeCount = f.rnd.Intn(10)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateReport persists a report filed by reporter against the given post id.
func (f *Factory) CreateReport(reporter *models.User, targetPostID string, overrides ...func(*models.Report)) (*models.Report, error) {
	report := &models.Report{
		ID:           models.NewID(),
		TargetPostID: targetPostID,
		Reason:       models.ReportReasons[f.rnd.Intn(len(models.ReportReasons))],
		Details:      gofakeit.Sentence(8),
		ReporterID:   reporter.ID,
	}
	for _, override := range overrides {
		override(report)
	}
	if err := f.db.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// CreateSanction persists a sanction against the given user.
func (f *Factory) CreateSanction(user *models.User, issuedBy string, overrides ...func(*models.Sanction)) (*models.Sanction, error) {
	types := []string{models.SanctionAmonestacion, models.SanctionSuspension}
	sanction := &models.Sanction{
		ID:       models.NewID(),
		UserID:   user.ID,
		Type:     types[f.rnd.Intn(len(types))],
		Reason:   gofakeit.Sentence(6),
		IssuedBy: issuedBy,
	}
	if sanction.Type == models.SanctionSuspension {
		expires := time.Now().AddDate(0, 0, 7+f.rnd.Intn(23))
		sanction.ExpiresAt = &expires
	}
	for _, override := range overrides {
		override(sanction)
	}
	if err := f.db.Create(sanction).Error; err != nil {
		return nil, err
	}
	return sanction, nil
}
