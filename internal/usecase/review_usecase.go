package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/validator"
	"github.com/rutea-api/internal/usecase/dto"
	"github.com/rutea-api/internal/usecase/patch"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	resolve    resolver
	events     EventPublisher
	patches    *patch.Table[domain.Review]
	logger     *zap.Logger
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	pointRepo repository.PointRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
	logger *zap.Logger,
) *ReviewUseCase {
	uc := &ReviewUseCase{
		reviewRepo: reviewRepo,
		resolve:    resolver{points: pointRepo, users: userRepo},
		events:     events,
		logger:     logger,
	}
	// puntoId before usuarioId: the point is resolved first
	uc.patches = patch.NewTable(
		patch.StringField("comentario", func(r *domain.Review, v string) { r.Comment = v }),
		patch.NullableStringField("titulo", func(r *domain.Review, v *string) { r.Title = v }),
		patch.IntField("valoracion", func(r *domain.Review, v int) { r.Rating = v }),
		patch.IntField("likes", func(r *domain.Review, v int) { r.Likes = v }),
		patch.BoolField("editada", func(r *domain.Review, v bool) { r.Edited = v }),
		patch.DateField("fechaPublicacion", func(r *domain.Review, v domain.Date) { r.PublishedOn = v }),
		patch.RefField("puntoId", uc.setPoint),
		patch.RefField("usuarioId", uc.setUser),
	)
	return uc
}

func (uc *ReviewUseCase) setPoint(ctx context.Context, r *domain.Review, id int64) error {
	point, err := uc.resolve.point(ctx, id)
	if err != nil {
		return err
	}
	r.PointID = point.ID
	return nil
}

func (uc *ReviewUseCase) setUser(ctx context.Context, r *domain.Review, id int64) error {
	user, err := uc.resolve.user(ctx, id)
	if err != nil {
		return err
	}
	r.UserID = user.ID
	return nil
}

// resolveRefs - point first, then user
func (uc *ReviewUseCase) resolveRefs(ctx context.Context, r *domain.Review) error {
	if err := uc.setPoint(ctx, r, r.PointID); err != nil {
		return err
	}
	return uc.setUser(ctx, r, r.UserID)
}

func (uc *ReviewUseCase) Create(ctx context.Context, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	review := req.ToDomain()
	if err := uc.resolveRefs(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		uc.logger.Error("Failed to create review", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Review created",
		zap.Int64("id", review.ID),
		zap.Int64("point_id", review.PointID),
		zap.Int64("user_id", review.UserID),
	)
	uc.events.Publish(ctx, domain.EntityReview, review.ID, domain.ActionCreated)

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (uc *ReviewUseCase) GetByID(ctx context.Context, id int64) (*dto.ReviewResponse, error) {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (uc *ReviewUseCase) List(ctx context.Context, filter domain.ReviewFilter) ([]dto.ReviewResponse, error) {
	reviews, err := uc.reviewRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list reviews", zap.Error(err))
		return nil, err
	}
	uc.logger.Debug("Reviews listed", zap.Int("count", len(reviews)))
	return dto.NewReviewResponses(reviews), nil
}

func (uc *ReviewUseCase) Update(ctx context.Context, id int64, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := uc.reviewRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	review := req.ToDomain()
	review.ID = id
	if err := uc.resolveRefs(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		uc.logger.Error("Failed to update review", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Review updated", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityReview, id, domain.ActionUpdated)

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (uc *ReviewUseCase) Patch(ctx context.Context, id int64, payload map[string]any) (*dto.ReviewResponse, error) {
	existing, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	ignored, err := uc.patches.Apply(ctx, &updated, payload)
	logIgnored(uc.logger, domain.EntityReview, id, ignored)
	if err != nil {
		return nil, err
	}
	updated.ID = id

	if err := validator.Validate(dto.ReviewRequestFromDomain(&updated)); err != nil {
		return nil, err
	}
	if err := uc.reviewRepo.Update(ctx, &updated); err != nil {
		uc.logger.Error("Failed to patch review", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Review patched", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityReview, id, domain.ActionPatched)

	resp := dto.NewReviewResponse(&updated)
	return &resp, nil
}

func (uc *ReviewUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Review deleted", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityReview, id, domain.ActionDeleted)
	return nil
}
