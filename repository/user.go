package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// UserRepository persists account records. Users are created once and only
// read afterwards; there is no update or delete.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserCache is a best-effort read cache in front of UserRepository, used on
// the token-verification hot path. A miss is reported as domain.ErrUserNotFound.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}
