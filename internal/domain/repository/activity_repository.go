package repository

import (
	"context"

	"github.com/rutea-api/internal/domain"
)

// ActivityRepository - persistence of the change log
type ActivityRepository interface {
	// RecordBatch stores activities in one transaction and returns how many
	// were new. Events already stored are skipped
	RecordBatch(ctx context.Context, activities []*domain.Activity) (int, error)

	// List returns the newest entries first
	List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error)
}
