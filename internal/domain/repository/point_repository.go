package repository

import (
	"context"

	"github.com/rutea-api/internal/domain"
)

// PointRepository - persistence of points of interest
type PointRepository interface {
	// GetByID returns the point with CategoryName filled in
	GetByID(ctx context.Context, id int64) (*domain.PointOfInterest, error)

	List(ctx context.Context, filter domain.PointFilter) ([]*domain.PointOfInterest, error)

	// ExistingIDs returns the subset of ids that exist, in one query
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// Create inserts the point, sets its ID and CategoryName
	Create(ctx context.Context, point *domain.PointOfInterest) error

	// Update overwrites the row and refreshes CategoryName
	Update(ctx context.Context, point *domain.PointOfInterest) error

	// Delete removes the point, its reviews and its route memberships
	Delete(ctx context.Context, id int64) error
}
