package repository

import (
	"context"

	"github.com/rutea-api/internal/domain"
)

// RouteRepository - persistence of routes and their ordered point lists.
// Writes touching the point list run in a single transaction.
type RouteRepository interface {
	// GetByID returns the route with PointIDs in stored order
	GetByID(ctx context.Context, id int64) (*domain.Route, error)

	List(ctx context.Context, filter domain.RouteFilter) ([]*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error

	// Update overwrites the row and replaces the point list
	Update(ctx context.Context, route *domain.Route) error

	Delete(ctx context.Context, id int64) error
}
