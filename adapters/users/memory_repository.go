package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/ports"
)

// MemoryRepository is an in-memory implementation of the UserRepository
// interface, intended for tests and local development.
type MemoryRepository struct {
	byID    map[string]core.User
	byEmail map[string]string
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]core.User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user. An already-registered email is a conflict.
func (r *MemoryRepository) Create(ctx context.Context, user *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return core.ErrConflict
	}

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByID returns the user with the given ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.byID[id]
	if !exists {
		return nil, core.ErrNotFound
	}
	return &user, nil
}

// GetByEmail returns the user with the given email
func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[email]
	if !exists {
		return nil, core.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

// Update saves profile fields. Moving to an email owned by another user
// is a conflict.
func (r *MemoryRepository) Update(ctx context.Context, user *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[user.ID]
	if !exists {
		return core.ErrNotFound
	}
	if ownerID, taken := r.byEmail[user.Email]; taken && ownerID != user.ID {
		return core.ErrConflict
	}

	delete(r.byEmail, current.Email)

	updated := current
	updated.FirstName = user.FirstName
	updated.LastName = user.LastName
	updated.PhoneNumber = user.PhoneNumber
	updated.Email = user.Email
	updated.UpdatedAt = time.Now()

	r.byID[user.ID] = updated
	r.byEmail[updated.Email] = user.ID
	return nil
}

// UpdatePassword replaces the stored secret hash
func (r *MemoryRepository) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.byID[id]
	if !exists {
		return core.ErrNotFound
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	r.byID[id] = user
	return nil
}

// List returns all registered users ordered by creation time
func (r *MemoryRepository) List(ctx context.Context) ([]core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]core.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

var _ ports.UserRepository = (*MemoryRepository)(nil)
