package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository/mocks"
)

func TestStreamEventPublisher_Publish(t *testing.T) {
	streams := &mocks.StreamRepository{}
	pub := NewStreamEventPublisher(streams, domain.StreamChanges, zap.NewNop())

	streams.On("PublishToStream", mock.Anything, domain.StreamChanges, mock.MatchedBy(func(e domain.ChangeEvent) bool {
		return e.ID != uuid.Nil &&
			e.Entity == domain.EntityReview &&
			e.EntityID == 12 &&
			e.Action == domain.ActionPatched &&
			!e.OccurredAt.IsZero()
	})).Return(nil)

	pub.Publish(context.Background(), domain.EntityReview, 12, domain.ActionPatched)
	streams.AssertExpectations(t)
}

func TestStreamEventPublisher_FailureIsSwallowed(t *testing.T) {
	streams := &mocks.StreamRepository{}
	pub := NewStreamEventPublisher(streams, domain.StreamChanges, zap.NewNop())

	streams.On("PublishToStream", mock.Anything, domain.StreamChanges, mock.Anything).Return(stderrors.New("redis down"))

	assert.NotPanics(t, func() {
		pub.Publish(context.Background(), domain.EntityUser, 1, domain.ActionDeleted)
	})
}

func TestStreamEventPublisher_IgnoresCanceledRequest(t *testing.T) {
	streams := &mocks.StreamRepository{}
	pub := NewStreamEventPublisher(streams, domain.StreamChanges, zap.NewNop())

	streams.On("PublishToStream", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), domain.StreamChanges, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub.Publish(ctx, domain.EntityRoute, 2, domain.ActionCreated)
	streams.AssertExpectations(t)
}
