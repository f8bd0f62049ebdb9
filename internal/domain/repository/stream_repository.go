package repository

import (
	"context"

	"github.com/rutea-api/internal/domain"
)

// StreamRepository - Redis Streams access
type StreamRepository interface {
	// ConsumeBatch reads up to count messages for the consumer, blocking for
	// at most the configured block time
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error)

	// AckMessages acknowledges several messages in one call
	AckMessages(ctx context.Context, stream, group string, messageIDs ...string) error

	// CreateConsumerGroup creates the group (and the stream) if missing
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream marshals data as JSON and appends it to the stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
