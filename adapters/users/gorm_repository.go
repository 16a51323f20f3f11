package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/ports"
)

// userRecord is the relational shape of a core.User.
type userRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	FirstName    string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	PhoneNumber  string `gorm:"size:32"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash []byte
	Role         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

// GormRepository is a gorm-backed implementation of the UserRepository interface
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository and migrates the users table
func NewGormRepository(db *gorm.DB) (ports.UserRepository, error) {
	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}
	return &GormRepository{db: db}, nil
}

// Create stores a new user. An already-registered email is a conflict.
func (r *GormRepository) Create(ctx context.Context, user *core.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return core.ErrConflict
	}

	record := toRecord(user)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns the user with the given ID
func (r *GormRepository) GetByID(ctx context.Context, id string) (*core.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return toUser(&record), nil
}

// GetByEmail returns the user with the given email
func (r *GormRepository) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return toUser(&record), nil
}

// Update saves profile fields. Moving to an email owned by another user
// is a conflict.
func (r *GormRepository) Update(ctx context.Context, user *core.User) error {
	var existing userRecord
	err := r.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err == nil && existing.ID != user.ID {
		return core.ErrConflict
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"phone_number": user.PhoneNumber,
			"email":        user.Email,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return core.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored secret hash
func (r *GormRepository) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	result := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return core.ErrNotFound
	}
	return nil
}

// List returns all registered users
func (r *GormRepository) List(ctx context.Context) ([]core.User, error) {
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]core.User, 0, len(records))
	for i := range records {
		users = append(users, *toUser(&records[i]))
	}
	return users, nil
}

func toRecord(u *core.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PhoneNumber:  u.PhoneNumber,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         int(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUser(r *userRecord) *core.User {
	return &core.User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PhoneNumber:  r.PhoneNumber,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         core.Role(r.Role),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
