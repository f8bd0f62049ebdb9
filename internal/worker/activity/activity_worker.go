// Package activity persists change events from the Redis stream into the
// actividad table.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/worker"
)

const (
	defaultBatchSize = 50
	errorBackoff     = time.Second
)

type Config struct {
	Stream        string
	ConsumerGroup string
	// ConsumerName defaults to <hostname>-<pid>
	ConsumerName string
	BatchSize    int64
}

// EventRecorder stores change events and reports how many were new.
type EventRecorder interface {
	RecordBatch(ctx context.Context, events []domain.ChangeEvent) (int, error)
}

type Worker struct {
	*worker.BaseWorker
	streams      repository.StreamRepository
	recorder     EventRecorder
	stream       string
	consumerName string
	batchSize    int64
}

func NewWorker(
	streams repository.StreamRepository,
	recorder EventRecorder,
	cfg Config,
	logger *zap.Logger,
) *Worker {
	if cfg.Stream == "" {
		cfg.Stream = domain.StreamChanges
	}
	if cfg.ConsumerName == "" {
		hostname, _ := os.Hostname()
		cfg.ConsumerName = fmt.Sprintf("%s-%d", hostname, os.Getpid())
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("activity", cfg.ConsumerGroup, logger),
		streams:      streams,
		recorder:     recorder,
		stream:       cfg.Stream,
		consumerName: cfg.ConsumerName,
		batchSize:    cfg.BatchSize,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting activity worker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int64("batch_size", w.batchSize),
	)

	if err := w.streams.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Activity worker stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := w.ProcessBatch(ctx); err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			select {
			case <-time.After(errorBackoff):
			case <-w.StopChan():
			case <-ctx.Done():
			}
		}
	}
}

// ProcessBatch reads one batch, stores its events and acks it. Malformed
// messages are acked and dropped. When the store fails nothing valid is
// acked, so the batch is delivered again. Returns the number of messages read.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streams.ConsumeBatch(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	events := make([]domain.ChangeEvent, 0, len(messages))
	validIDs := make([]string, 0, len(messages))
	var malformedIDs []string

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Dropping malformed change event", zap.String("message_id", msg.ID), zap.Error(err))
			malformedIDs = append(malformedIDs, msg.ID)
			continue
		}
		events = append(events, event)
		validIDs = append(validIDs, msg.ID)
	}

	if len(malformedIDs) > 0 {
		if err := w.streams.AckMessages(ctx, w.stream, w.ConsumerGroup(), malformedIDs...); err != nil {
			logger.Warn("Failed to ack malformed messages", zap.Error(err))
		}
	}
	if len(events) == 0 {
		return len(messages), nil
	}

	inserted, err := w.recorder.RecordBatch(ctx, events)
	if err != nil {
		return len(messages), fmt.Errorf("record activity: %w", err)
	}

	// an unacked batch is redelivered; already stored events are skipped
	if err := w.streams.AckMessages(ctx, w.stream, w.ConsumerGroup(), validIDs...); err != nil {
		logger.Warn("Failed to ack messages", zap.Error(err))
	}

	logger.Debug("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("inserted", inserted),
		zap.Int("duplicates", len(events)-inserted),
		zap.Int("malformed", len(malformedIDs)),
	)
	return len(messages), nil
}

func parseMessage(msg domain.StreamMessage) (domain.ChangeEvent, error) {
	var event domain.ChangeEvent
	if msg.Data == "" {
		return event, fmt.Errorf("missing data field")
	}
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return event, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return event, err
	}
	return event, nil
}
