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

type RouteUseCase struct {
	routeRepo repository.RouteRepository
	resolve   resolver
	events    EventPublisher
	patches   *patch.Table[domain.Route]
	logger    *zap.Logger
}

func NewRouteUseCase(
	routeRepo repository.RouteRepository,
	userRepo repository.UserRepository,
	pointRepo repository.PointRepository,
	events EventPublisher,
	logger *zap.Logger,
) *RouteUseCase {
	uc := &RouteUseCase{
		routeRepo: routeRepo,
		resolve:   resolver{users: userRepo, points: pointRepo},
		events:    events,
		logger:    logger,
	}
	// usuarioId before puntosIds: the owner is resolved first
	uc.patches = patch.NewTable(
		patch.StringField("titulo", func(r *domain.Route, v string) { r.Title = v }),
		patch.NullableStringField("dificultad", func(r *domain.Route, v *string) { r.Difficulty = v }),
		patch.Float32Field("distanciaKm", func(r *domain.Route, v float32) { r.DistanceKm = v }),
		patch.IntField("duracionMinutos", func(r *domain.Route, v int) { r.DurationMinutes = v }),
		patch.BoolField("publica", func(r *domain.Route, v bool) { r.Public = v }),
		patch.DateField("fechaRealizacion", func(r *domain.Route, v domain.Date) { r.CompletedOn = v }),
		patch.RefField("usuarioId", uc.setUser),
		patch.RefListField("puntosIds", uc.setPoints),
	)
	return uc
}

func (uc *RouteUseCase) setUser(ctx context.Context, r *domain.Route, id int64) error {
	user, err := uc.resolve.user(ctx, id)
	if err != nil {
		return err
	}
	r.UserID = user.ID
	return nil
}

func (uc *RouteUseCase) setPoints(ctx context.Context, r *domain.Route, ids []int64) error {
	if err := uc.resolve.pointList(ctx, ids); err != nil {
		return err
	}
	r.PointIDs = append([]int64{}, ids...)
	return nil
}

func (uc *RouteUseCase) resolveRefs(ctx context.Context, r *domain.Route) error {
	if err := uc.setUser(ctx, r, r.UserID); err != nil {
		return err
	}
	return uc.setPoints(ctx, r, r.PointIDs)
}

func (uc *RouteUseCase) Create(ctx context.Context, req dto.RouteRequest) (*dto.RouteResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	route := req.ToDomain()
	if err := uc.resolveRefs(ctx, route); err != nil {
		return nil, err
	}

	if err := uc.routeRepo.Create(ctx, route); err != nil {
		uc.logger.Error("Failed to create route", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Route created",
		zap.Int64("id", route.ID),
		zap.Int64("user_id", route.UserID),
		zap.Int("points", len(route.PointIDs)),
	)
	uc.events.Publish(ctx, domain.EntityRoute, route.ID, domain.ActionCreated)

	resp := dto.NewRouteResponse(route)
	return &resp, nil
}

func (uc *RouteUseCase) GetByID(ctx context.Context, id int64) (*dto.RouteResponse, error) {
	route, err := uc.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRouteResponse(route)
	return &resp, nil
}

func (uc *RouteUseCase) List(ctx context.Context, filter domain.RouteFilter) ([]dto.RouteResponse, error) {
	routes, err := uc.routeRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list routes", zap.Error(err))
		return nil, err
	}
	uc.logger.Debug("Routes listed", zap.Int("count", len(routes)))
	return dto.NewRouteResponses(routes), nil
}

// Update replaces the route and its whole point list.
func (uc *RouteUseCase) Update(ctx context.Context, id int64, req dto.RouteRequest) (*dto.RouteResponse, error) {
	if _, err := uc.routeRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	route := req.ToDomain()
	route.ID = id
	if err := uc.resolveRefs(ctx, route); err != nil {
		return nil, err
	}

	if err := uc.routeRepo.Update(ctx, route); err != nil {
		uc.logger.Error("Failed to update route", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Route updated", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityRoute, id, domain.ActionUpdated)

	resp := dto.NewRouteResponse(route)
	return &resp, nil
}

func (uc *RouteUseCase) Patch(ctx context.Context, id int64, payload map[string]any) (*dto.RouteResponse, error) {
	existing, err := uc.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.PointIDs = append([]int64{}, existing.PointIDs...)
	ignored, err := uc.patches.Apply(ctx, &updated, payload)
	logIgnored(uc.logger, domain.EntityRoute, id, ignored)
	if err != nil {
		return nil, err
	}
	updated.ID = id

	if err := validator.Validate(dto.RouteRequestFromDomain(&updated)); err != nil {
		return nil, err
	}
	if err := uc.routeRepo.Update(ctx, &updated); err != nil {
		uc.logger.Error("Failed to patch route", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Route patched", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityRoute, id, domain.ActionPatched)

	resp := dto.NewRouteResponse(&updated)
	return &resp, nil
}

func (uc *RouteUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.routeRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Route deleted", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityRoute, id, domain.ActionDeleted)
	return nil
}
