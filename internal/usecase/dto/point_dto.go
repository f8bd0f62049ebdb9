package dto

import "github.com/rutea-api/internal/domain"

// PointRequest - body of POST and PUT /api/puntos
type PointRequest struct {
	Name          string           `json:"nombre" validate:"notblank,max=255" example:"Museo del Prado"`
	Latitude      float64          `json:"latitud" validate:"min=-90,max=90" example:"40.4138"`
	Longitude     float64          `json:"longitud" validate:"min=-180,max=180" example:"-3.6921"`
	AverageRating float32          `json:"puntuacionMedia" validate:"min=0,max=5" example:"4.7"`
	OpenNow       bool             `json:"abiertoActualmente"`
	CreatedAt     *domain.DateTime `json:"fechaCreacion,omitempty" swaggertype:"string" example:"2024-05-01T10:00:00"`
	CategoryID    int64            `json:"categoriaId" validate:"required" example:"1"`
}

// ToDomain defaults fechaCreacion to the current time.
func (r *PointRequest) ToDomain() *domain.PointOfInterest {
	p := &domain.PointOfInterest{
		Name:          r.Name,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		AverageRating: r.AverageRating,
		OpenNow:       r.OpenNow,
		CategoryID:    r.CategoryID,
	}
	if r.CreatedAt != nil {
		p.CreatedAt = *r.CreatedAt
	} else {
		p.CreatedAt = domain.Now()
	}
	return p
}

func PointRequestFromDomain(p *domain.PointOfInterest) *PointRequest {
	created := p.CreatedAt
	return &PointRequest{
		Name:          p.Name,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		AverageRating: p.AverageRating,
		OpenNow:       p.OpenNow,
		CreatedAt:     &created,
		CategoryID:    p.CategoryID,
	}
}

type PointResponse struct {
	ID            int64           `json:"id" example:"1"`
	Name          string          `json:"nombre" example:"Museo del Prado"`
	Latitude      float64         `json:"latitud" example:"40.4138"`
	Longitude     float64         `json:"longitud" example:"-3.6921"`
	AverageRating float32         `json:"puntuacionMedia" example:"4.7"`
	OpenNow       bool            `json:"abiertoActualmente"`
	CreatedAt     domain.DateTime `json:"fechaCreacion" swaggertype:"string" example:"2024-05-01T10:00:00"`
	CategoryID    int64           `json:"categoriaId" example:"1"`
	CategoryName  string          `json:"categoriaNombre" example:"Museos"`
}

func NewPointResponse(p *domain.PointOfInterest) PointResponse {
	return PointResponse{
		ID:            p.ID,
		Name:          p.Name,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		AverageRating: p.AverageRating,
		OpenNow:       p.OpenNow,
		CreatedAt:     p.CreatedAt,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
	}
}

func NewPointResponses(points []*domain.PointOfInterest) []PointResponse {
	out := make([]PointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, NewPointResponse(p))
	}
	return out
}
