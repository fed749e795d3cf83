package seed

import (
	"fmt"
	"log"

	"campusboard/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll wipes every seeded table. Order matters: reports and sanctions
// reference posts and users.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Report{},
		&models.Sanction{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Run creates a demo population: users (one moderator, one admin among them),
// posts across all three boards, and reports concentrated on a handful of
// posts so the moderation views have something to show.
func (s *Seeder) Run(numUsers, numPosts, numReports int) error {
	if numUsers < 3 {
		numUsers = 3
	}

	users := make([]*models.User, 0, numUsers)

	admin, err := s.factory.CreateAdmin()
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	users = append(users, admin)

	moderator, err := s.factory.CreateModerator()
	if err != nil {
		return fmt.Errorf("failed to create moderator: %w", err)
	}
	users = append(users, moderator)

	for i := 2; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users (admin: %s, moderator: %s)", len(users), admin.Username, moderator.Username)

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rnd.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	// Concentrate reports on ~10% of posts so some cross the flag threshold.
	if len(posts) > 0 {
		hotCount := len(posts)/10 + 1
		for i := 0; i < numReports; i++ {
			target := posts[s.factory.rnd.Intn(hotCount)]
			reporter := users[s.factory.rnd.Intn(len(users))]
			if _, err := s.factory.CreateReport(reporter, target.ID); err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
		}
		log.Printf("Created %d reports across %d posts", numReports, hotCount)
	}

	// A couple of sanctions so the moderation endpoints have history.
	for i := 0; i < 2 && i+2 < len(users); i++ {
		if _, err := s.factory.CreateSanction(users[i+2], moderator.ID); err != nil {
			return fmt.Errorf("failed to create sanction: %w", err)
		}
	}

	return nil
}
