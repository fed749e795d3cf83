package service

import (
	"context"
	"errors"
	"strings"

	"campusboard/internal/models"
	"campusboard/internal/repository"
	"campusboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Every self-registered account starts with
// the plain user role regardless of what the request claims.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if msg := validation.ValidateSignupInput(&validation.SignupInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}); msg != "" {
		return nil, models.NewValidationError(msg)
	}

	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return nil, models.NewValidationError("Username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError("Failed to check username", err)
	}
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, models.NewValidationError("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError("Failed to check email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError("Failed to hash password", err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	user.SetRoles([]string{models.RoleUser})

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, models.NewInternalError("Failed to create user", err)
	}
	return user, nil
}

// Authenticate verifies credentials and returns the matching user. The login
// may be a username or an institutional email; an unknown login and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	if login == "" || password == "" {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, login)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, models.NewInternalError("Failed to fetch user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if !validation.ValidID(id) {
		return nil, models.NewValidationError("User id is malformed")
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError("Failed to fetch user", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError("Failed to list users", err)
	}
	return users, nil
}
