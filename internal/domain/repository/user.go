package repository

import (
	"context"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// UserRepository describes persistence operations with staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
