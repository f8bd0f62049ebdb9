package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/rutea-api/internal/domain"
)

type ActivityResponse struct {
	ID         int64     `json:"id" example:"1"`
	EventID    uuid.UUID `json:"eventId" swaggertype:"string" example:"7d3f8c2a-1b4e-4c6d-9a0f-2e5b8c7d1a3f"`
	Entity     string    `json:"entidad" example:"ruta"`
	EntityID   int64     `json:"entidadId" example:"3"`
	Action     string    `json:"accion" example:"CREATED"`
	OccurredAt time.Time `json:"fecha"`
	RecordedAt time.Time `json:"registrada"`
}

func NewActivityResponses(items []*domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ActivityResponse{
			ID:         a.ID,
			EventID:    a.EventID,
			Entity:     a.Entity,
			EntityID:   a.EntityID,
			Action:     a.Action,
			OccurredAt: a.OccurredAt,
			RecordedAt: a.RecordedAt,
		})
	}
	return out
}

// HealthResponse - body of GET /api/health
type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services"`
}
