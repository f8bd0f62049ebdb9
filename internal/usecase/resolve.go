package usecase

import (
	"context"
	"fmt"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
)

// resolver looks up the entities a write refers to. Each failure is the
// typed not-found error of the missing entity, naming its id.
type resolver struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	points     repository.PointRepository
}

func (r resolver) category(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := r.categories.GetByID(ctx, id)
	if errors.IsNotFound(err) {
		return nil, errors.ErrCategoryNotFound.WithMessage(fmt.Sprintf("Category %d not found", id))
	}
	return c, err
}

func (r resolver) user(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.users.GetByID(ctx, id)
	if errors.IsNotFound(err) {
		return nil, errors.ErrUserNotFound.WithMessage(fmt.Sprintf("User %d not found", id))
	}
	return u, err
}

func (r resolver) point(ctx context.Context, id int64) (*domain.PointOfInterest, error) {
	p, err := r.points.GetByID(ctx, id)
	if errors.IsNotFound(err) {
		return nil, errors.ErrPointNotFound.WithMessage(fmt.Sprintf("Point of interest %d not found", id))
	}
	return p, err
}

// pointList checks every id with one query and reports the first missing id
// in input order. Duplicates are allowed.
func (r resolver) pointList(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	existing, err := r.points.ExistingIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return err
	}
	found := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return errors.ErrPointNotFound.WithMessage(fmt.Sprintf("Point of interest %d not found", id))
		}
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
