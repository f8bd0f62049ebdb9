package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/usecase/dto"
)

type ActivityUseCase struct {
	activityRepo repository.ActivityRepository
	logger       *zap.Logger
}

func NewActivityUseCase(activityRepo repository.ActivityRepository, logger *zap.Logger) *ActivityUseCase {
	return &ActivityUseCase{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// List returns the most recent activity, newest first.
func (uc *ActivityUseCase) List(ctx context.Context, filter domain.ActivityFilter) ([]dto.ActivityResponse, error) {
	filter.Limit = filter.NormalizedLimit()
	items, err := uc.activityRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list activity", zap.Error(err))
		return nil, err
	}
	return dto.NewActivityResponses(items), nil
}

// RecordBatch stores consumed change events and returns how many were new.
// The batch is rejected as a whole when any event is invalid.
func (uc *ActivityUseCase) RecordBatch(ctx context.Context, events []domain.ChangeEvent) (int, error) {
	activities := make([]*domain.Activity, 0, len(events))
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return 0, err
		}
		activities = append(activities, domain.ActivityFromEvent(event))
	}
	if len(activities) == 0 {
		return 0, nil
	}

	inserted, err := uc.activityRepo.RecordBatch(ctx, activities)
	if err != nil {
		uc.logger.Error("Failed to record activity", zap.Int("events", len(events)), zap.Error(err))
		return 0, err
	}
	if skipped := len(activities) - inserted; skipped > 0 {
		uc.logger.Debug("Duplicate change events skipped", zap.Int("count", skipped))
	}
	return inserted, nil
}
