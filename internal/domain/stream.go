package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StreamChanges - default stream receiving entity change events
const StreamChanges = "stream:rutea:changes"

// Entity names carried by change events
const (
	EntityUser     = "usuario"
	EntityCategory = "categoria"
	EntityPoint    = "punto"
	EntityReview   = "resena"
	EntityRoute    = "ruta"
)

// Action - what happened to an entity
type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionPatched Action = "PATCHED"
	ActionDeleted Action = "DELETED"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionPatched, ActionDeleted:
		return true
	}
	return false
}

// ChangeEvent - published after every successful mutation
type ChangeEvent struct {
	ID         uuid.UUID `json:"id"`
	Entity     string    `json:"entidad"`
	EntityID   int64     `json:"entidadId"`
	Action     Action    `json:"accion"`
	OccurredAt time.Time `json:"fecha"`
}

// NewChangeEvent builds an event with a fresh id and the current time.
func NewChangeEvent(entity string, entityID int64, action Action) ChangeEvent {
	return ChangeEvent{
		ID:         uuid.New(),
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
}

// Validate checks an event read back from the stream.
func (e *ChangeEvent) Validate() error {
	if e.ID == uuid.Nil {
		return fmt.Errorf("event id is empty")
	}
	if e.Entity == "" {
		return fmt.Errorf("event %s has no entity", e.ID)
	}
	if e.EntityID <= 0 {
		return fmt.Errorf("event %s has invalid entity id %d", e.ID, e.EntityID)
	}
	if !e.Action.Valid() {
		return fmt.Errorf("event %s has unknown action %q", e.ID, e.Action)
	}
	return nil
}

// StreamMessage - raw message read from a Redis stream
type StreamMessage struct {
	ID   string
	Data string
}
