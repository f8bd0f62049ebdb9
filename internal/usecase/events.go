package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
)

const publishTimeout = 2 * time.Second

// EventPublisher announces successful mutations. Publishing is best effort
// and never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, entity string, entityID int64, action domain.Action)
}

// StreamEventPublisher appends change events to a Redis stream.
type StreamEventPublisher struct {
	streams repository.StreamRepository
	stream  string
	logger  *zap.Logger
}

func NewStreamEventPublisher(streams repository.StreamRepository, stream string, logger *zap.Logger) *StreamEventPublisher {
	return &StreamEventPublisher{
		streams: streams,
		stream:  stream,
		logger:  logger,
	}
}

func (p *StreamEventPublisher) Publish(ctx context.Context, entity string, entityID int64, action domain.Action) {
	event := domain.NewChangeEvent(entity, entityID, action)

	// The request context may already be near its deadline
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.streams.PublishToStream(ctx, p.stream, event); err != nil {
		p.logger.Warn("Failed to publish change event",
			zap.String("event_id", event.ID.String()),
			zap.String("entity", entity),
			zap.Int64("entity_id", entityID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

// NopEventPublisher drops every event.
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, string, int64, domain.Action) {}
