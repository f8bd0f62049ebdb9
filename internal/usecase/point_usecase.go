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

type PointUseCase struct {
	pointRepo repository.PointRepository
	resolve   resolver
	events    EventPublisher
	patches   *patch.Table[domain.PointOfInterest]
	logger    *zap.Logger
}

func NewPointUseCase(
	pointRepo repository.PointRepository,
	categoryRepo repository.CategoryRepository,
	events EventPublisher,
	logger *zap.Logger,
) *PointUseCase {
	uc := &PointUseCase{
		pointRepo: pointRepo,
		resolve:   resolver{categories: categoryRepo, points: pointRepo},
		events:    events,
		logger:    logger,
	}
	uc.patches = patch.NewTable(
		patch.StringField("nombre", func(p *domain.PointOfInterest, v string) { p.Name = v }),
		patch.Float64Field("latitud", func(p *domain.PointOfInterest, v float64) { p.Latitude = v }),
		patch.Float64Field("longitud", func(p *domain.PointOfInterest, v float64) { p.Longitude = v }),
		patch.Float32Field("puntuacionMedia", func(p *domain.PointOfInterest, v float32) { p.AverageRating = v }),
		patch.BoolField("abiertoActualmente", func(p *domain.PointOfInterest, v bool) { p.OpenNow = v }),
		patch.DateTimeField("fechaCreacion", func(p *domain.PointOfInterest, v domain.DateTime) { p.CreatedAt = v }),
		patch.RefField("categoriaId", uc.setCategory),
	)
	return uc
}

func (uc *PointUseCase) setCategory(ctx context.Context, p *domain.PointOfInterest, id int64) error {
	category, err := uc.resolve.category(ctx, id)
	if err != nil {
		return err
	}
	p.CategoryID = category.ID
	p.CategoryName = category.Name
	return nil
}

func (uc *PointUseCase) Create(ctx context.Context, req dto.PointRequest) (*dto.PointResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	point := req.ToDomain()
	if err := uc.setCategory(ctx, point, req.CategoryID); err != nil {
		return nil, err
	}

	if err := uc.pointRepo.Create(ctx, point); err != nil {
		uc.logger.Error("Failed to create point of interest", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Point of interest created", zap.Int64("id", point.ID), zap.Int64("category_id", point.CategoryID))
	uc.events.Publish(ctx, domain.EntityPoint, point.ID, domain.ActionCreated)

	resp := dto.NewPointResponse(point)
	return &resp, nil
}

func (uc *PointUseCase) GetByID(ctx context.Context, id int64) (*dto.PointResponse, error) {
	point, err := uc.pointRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPointResponse(point)
	return &resp, nil
}

func (uc *PointUseCase) List(ctx context.Context, filter domain.PointFilter) ([]dto.PointResponse, error) {
	points, err := uc.pointRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list points of interest", zap.Error(err))
		return nil, err
	}
	uc.logger.Debug("Points of interest listed", zap.Int("count", len(points)))
	return dto.NewPointResponses(points), nil
}

func (uc *PointUseCase) Update(ctx context.Context, id int64, req dto.PointRequest) (*dto.PointResponse, error) {
	if _, err := uc.pointRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	point := req.ToDomain()
	point.ID = id
	if err := uc.setCategory(ctx, point, req.CategoryID); err != nil {
		return nil, err
	}

	if err := uc.pointRepo.Update(ctx, point); err != nil {
		uc.logger.Error("Failed to update point of interest", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Point of interest updated", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityPoint, id, domain.ActionUpdated)

	resp := dto.NewPointResponse(point)
	return &resp, nil
}

func (uc *PointUseCase) Patch(ctx context.Context, id int64, payload map[string]any) (*dto.PointResponse, error) {
	existing, err := uc.pointRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	ignored, err := uc.patches.Apply(ctx, &updated, payload)
	logIgnored(uc.logger, domain.EntityPoint, id, ignored)
	if err != nil {
		return nil, err
	}
	updated.ID = id

	if err := validator.Validate(dto.PointRequestFromDomain(&updated)); err != nil {
		return nil, err
	}
	if err := uc.pointRepo.Update(ctx, &updated); err != nil {
		uc.logger.Error("Failed to patch point of interest", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Point of interest patched", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityPoint, id, domain.ActionPatched)

	resp := dto.NewPointResponse(&updated)
	return &resp, nil
}

// Delete removes the point, its reviews and its route memberships.
func (uc *PointUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.pointRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Point of interest deleted", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityPoint, id, domain.ActionDeleted)
	return nil
}
