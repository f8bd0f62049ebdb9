package dto

import "github.com/rutea-api/internal/domain"

// MaxRoutePoints - upper bound of puntosIds
const MaxRoutePoints = 500

// RouteRequest - body of POST and PUT /api/rutas
type RouteRequest struct {
	Title           string       `json:"titulo" validate:"notblank,max=60" example:"Madrid de los Austrias"`
	Difficulty      *string      `json:"dificultad,omitempty" validate:"omitempty,max=255" example:"media"`
	DistanceKm      float32      `json:"distanciaKm" validate:"min=0" example:"4.2"`
	DurationMinutes int          `json:"duracionMinutos" validate:"min=0" example:"90"`
	Public          bool         `json:"publica"`
	CompletedOn     *domain.Date `json:"fechaRealizacion" validate:"required" swaggertype:"string" example:"2024-05-01"`
	UserID          int64        `json:"usuarioId" validate:"required" example:"1"`
	PointIDs        []int64      `json:"puntosIds" validate:"max=500" example:"1,2,3"`
}

func (r *RouteRequest) ToDomain() *domain.Route {
	rt := &domain.Route{
		Title:           r.Title,
		Difficulty:      r.Difficulty,
		DistanceKm:      r.DistanceKm,
		DurationMinutes: r.DurationMinutes,
		Public:          r.Public,
		UserID:          r.UserID,
		PointIDs:        append([]int64{}, r.PointIDs...),
	}
	if r.CompletedOn != nil {
		rt.CompletedOn = *r.CompletedOn
	}
	return rt
}

func RouteRequestFromDomain(rt *domain.Route) *RouteRequest {
	completed := rt.CompletedOn
	return &RouteRequest{
		Title:           rt.Title,
		Difficulty:      rt.Difficulty,
		DistanceKm:      rt.DistanceKm,
		DurationMinutes: rt.DurationMinutes,
		Public:          rt.Public,
		CompletedOn:     &completed,
		UserID:          rt.UserID,
		PointIDs:        rt.PointIDs,
	}
}

type RouteResponse struct {
	ID              int64       `json:"id" example:"1"`
	Title           string      `json:"titulo" example:"Madrid de los Austrias"`
	Difficulty      *string     `json:"dificultad"`
	DistanceKm      float32     `json:"distanciaKm" example:"4.2"`
	DurationMinutes int         `json:"duracionMinutos" example:"90"`
	Public          bool        `json:"publica"`
	CompletedOn     domain.Date `json:"fechaRealizacion" swaggertype:"string" example:"2024-05-01"`
	UserID          int64       `json:"usuarioId" example:"1"`
	PointIDs        []int64     `json:"puntosIds"`
}

func NewRouteResponse(rt *domain.Route) RouteResponse {
	ids := rt.PointIDs
	if ids == nil {
		ids = []int64{}
	}
	return RouteResponse{
		ID:              rt.ID,
		Title:           rt.Title,
		Difficulty:      rt.Difficulty,
		DistanceKm:      rt.DistanceKm,
		DurationMinutes: rt.DurationMinutes,
		Public:          rt.Public,
		CompletedOn:     rt.CompletedOn,
		UserID:          rt.UserID,
		PointIDs:        ids,
	}
}

func NewRouteResponses(routes []*domain.Route) []RouteResponse {
	out := make([]RouteResponse, 0, len(routes))
	for _, rt := range routes {
		out = append(out, NewRouteResponse(rt))
	}
	return out
}
