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

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	events       EventPublisher
	patches      *patch.Table[domain.Category]
	logger       *zap.Logger
}

func NewCategoryUseCase(
	categoryRepo repository.CategoryRepository,
	events EventPublisher,
	logger *zap.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		events:       events,
		patches: patch.NewTable(
			patch.StringField("nombre", func(c *domain.Category, v string) { c.Name = v }),
			patch.NullableStringField("descripcion", func(c *domain.Category, v *string) { c.Description = v }),
			patch.NullableStringField("iconoUrl", func(c *domain.Category, v *string) { c.IconURL = v }),
			patch.IntField("ordenPrioridad", func(c *domain.Category, v int) { c.Priority = v }),
			patch.BoolField("activa", func(c *domain.Category, v bool) { c.Active = v }),
			patch.Float32Field("costePromedio", func(c *domain.Category, v float32) { c.AverageCost = v }),
		),
		logger: logger,
	}
}

func (uc *CategoryUseCase) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	category := req.ToDomain()
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		uc.logger.Error("Failed to create category", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Category created", zap.Int64("id", category.ID))
	uc.events.Publish(ctx, domain.EntityCategory, category.ID, domain.ActionCreated)

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (uc *CategoryUseCase) List(ctx context.Context, filter domain.CategoryFilter) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	uc.logger.Debug("Categories listed", zap.Int("count", len(categories)))
	return dto.NewCategoryResponses(categories), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id int64, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	category := req.ToDomain()
	category.ID = id
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		uc.logger.Error("Failed to update category", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Category updated", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityCategory, id, domain.ActionUpdated)

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (uc *CategoryUseCase) Patch(ctx context.Context, id int64, payload map[string]any) (*dto.CategoryResponse, error) {
	existing, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	ignored, err := uc.patches.Apply(ctx, &updated, payload)
	logIgnored(uc.logger, domain.EntityCategory, id, ignored)
	if err != nil {
		return nil, err
	}
	updated.ID = id

	if err := validator.Validate(dto.CategoryRequestFromDomain(&updated)); err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Update(ctx, &updated); err != nil {
		uc.logger.Error("Failed to patch category", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Category patched", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityCategory, id, domain.ActionPatched)

	resp := dto.NewCategoryResponse(&updated)
	return &resp, nil
}

// Delete fails with CONFLICT while points of interest reference the category.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Category deleted", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityCategory, id, domain.ActionDeleted)
	return nil
}
