package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/ports"
)

// MinPasswordLength is the shortest accepted secret.
const MinPasswordLength = 6

// RegisterInput carries the validated fields of a registration request.
type RegisterInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Password    string
	Role        core.Role
	GDPRConsent bool
}

// UpdateProfileInput carries the validated fields of a profile update.
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

// UserService handles account registration and profile management.
type UserService struct {
	repo       ports.UserRepository
	bcryptCost int
}

// NewUserService creates a new user service. cost is the bcrypt work
// factor; pass bcrypt.DefaultCost outside of tests.
func NewUserService(repo ports.UserRepository, cost int) *UserService {
	return &UserService{repo: repo, bcryptCost: cost}
}

// Register creates a new account with a salted one-way hash of the secret.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*core.User, error) {
	if !in.Role.Registerable() {
		return nil, &core.Error{
			Kind:    core.KindFormatViolation,
			Message: "request validation failed",
			Details: []core.FieldViolation{{
				Field:   "role",
				Kind:    core.KindFormatViolation,
				Message: "role must be 1 (athlete) or 2 (trainer)",
			}},
		}
	}
	if !in.GDPRConsent {
		return nil, &core.Error{
			Kind:    core.KindFormatViolation,
			Message: "request validation failed",
			Details: []core.FieldViolation{{
				Field:   "gdpr_consent",
				Kind:    core.KindFormatViolation,
				Message: "consent is required",
			}},
		}
	}
	if len(in.Password) < MinPasswordLength {
		return nil, passwordTooShort("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &core.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetProfile returns the account with the given ID
func (s *UserService) GetProfile(ctx context.Context, id string) (*core.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile saves basic profile fields and returns the updated account
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*core.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		user.FirstName = strings.TrimSpace(in.FirstName)
	}
	if in.LastName != "" {
		user.LastName = strings.TrimSpace(in.LastName)
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	}
	if in.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// ChangePassword replaces the stored secret hash
func (s *UserService) ChangePassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return passwordTooShort("new_password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

// ListUsers returns all registered accounts
func (s *UserService) ListUsers(ctx context.Context) ([]core.User, error) {
	return s.repo.List(ctx)
}

func passwordTooShort(field string) *core.Error {
	return &core.Error{
		Kind:    core.KindFormatViolation,
		Message: "request validation failed",
		Details: []core.FieldViolation{{
			Field:   field,
			Kind:    core.KindFormatViolation,
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}},
	}
}
