package repository

import (
	"context"

	"github.com/rutea-api/internal/domain"
)

// ReviewRepository - persistence of reviews
type ReviewRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
}
