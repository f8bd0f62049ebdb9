package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

// Activity - persisted change event
type Activity struct {
	ID         int64     `db:"id"`
	EventID    uuid.UUID `db:"event_id"`
	Entity     string    `db:"entidad"`
	EntityID   int64     `db:"entidad_id"`
	Action     string    `db:"accion"`
	OccurredAt time.Time `db:"fecha"`
	RecordedAt time.Time `db:"registrada"`
}

// ActivityFromEvent maps a change event to its activity row.
func ActivityFromEvent(e ChangeEvent) *Activity {
	return &Activity{
		EventID:    e.ID,
		Entity:     e.Entity,
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		OccurredAt: e.OccurredAt,
	}
}

type ActivityFilter struct {
	Entity   *string
	EntityID *int64
	Limit    int
}

// NormalizedLimit clamps Limit into [1, MaxActivityLimit].
func (f ActivityFilter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultActivityLimit
	case f.Limit > MaxActivityLimit:
		return MaxActivityLimit
	}
	return f.Limit
}
