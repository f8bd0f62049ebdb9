package repository

import (
	"context"

	"github.com/rutea-api/internal/domain"
)

// CategoryRepository - persistence of categories
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context, filter domain.CategoryFilter) ([]*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error

	// Delete fails with ErrConflict while points still reference the category
	Delete(ctx context.Context, id int64) error
}
