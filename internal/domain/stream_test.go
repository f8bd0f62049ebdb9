package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeEvent_Validate(t *testing.T) {
	valid := NewChangeEvent(EntityPoint, 7, ActionCreated)

	tests := []struct {
		name    string
		mutate  func(e *ChangeEvent)
		wantErr bool
	}{
		{name: "valid event", mutate: func(e *ChangeEvent) {}},
		{name: "nil id", mutate: func(e *ChangeEvent) { e.ID = uuid.Nil }, wantErr: true},
		{name: "empty entity", mutate: func(e *ChangeEvent) { e.Entity = "" }, wantErr: true},
		{name: "zero entity id", mutate: func(e *ChangeEvent) { e.EntityID = 0 }, wantErr: true},
		{name: "unknown action", mutate: func(e *ChangeEvent) { e.Action = "RENAMED" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangeEvent_JSONFieldNames(t *testing.T) {
	e := ChangeEvent{
		ID:         uuid.MustParse("7d3f8c2a-1b4e-4c6d-9a0f-2e5b8c7d1a3f"),
		Entity:     EntityRoute,
		EntityID:   3,
		Action:     ActionDeleted,
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "ruta", raw["entidad"])
	assert.Equal(t, float64(3), raw["entidadId"])
	assert.Equal(t, "DELETED", raw["accion"])
	assert.Equal(t, "2024-05-01T10:00:00Z", raw["fecha"])
}

func TestActivityFilter_NormalizedLimit(t *testing.T) {
	tests := []struct {
		limit    int
		expected int
	}{
		{0, DefaultActivityLimit},
		{-3, DefaultActivityLimit},
		{10, 10},
		{MaxActivityLimit, MaxActivityLimit},
		{MaxActivityLimit + 1, MaxActivityLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ActivityFilter{Limit: tt.limit}.NormalizedLimit())
	}
}
