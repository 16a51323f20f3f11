package ports

import (
	"context"

	"github.com/qlap/traingate/core"
)

// UserRepository is the relational store for registered accounts.
// Implementations return core.ErrNotFound for missing users and
// core.ErrConflict when an email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *core.User) error
	GetByID(ctx context.Context, id string) (*core.User, error)
	GetByEmail(ctx context.Context, email string) (*core.User, error)
	Update(ctx context.Context, user *core.User) error
	UpdatePassword(ctx context.Context, id string, hash []byte) error
	List(ctx context.Context) ([]core.User, error)
}
