package repository

import (
	"context"

	"github.com/rutea-api/internal/domain"
)

// UserRepository - persistence of users
type UserRepository interface {
	// GetByID returns ErrUserNotFound when no row matches
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List returns users matching every non-nil filter field, ordered by id
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)

	// Create inserts the user and sets its ID
	Create(ctx context.Context, user *domain.User) error

	// Update overwrites every column of the row with user.ID
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the user together with its reviews and routes
	Delete(ctx context.Context, id int64) error
}
