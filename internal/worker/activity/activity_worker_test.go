package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository/mocks"
	"github.com/rutea-api/internal/usecase"
	"github.com/rutea-api/internal/worker/activity"
)

const (
	testStream = "stream:test:changes"
	testGroup  = "test-group"
	testName   = "test-consumer"
)

func newWorker() (*activity.Worker, *mocks.StreamRepository, *mocks.ActivityRepository) {
	streams := &mocks.StreamRepository{}
	repo := &mocks.ActivityRepository{}
	w := activity.NewWorker(streams, usecase.NewActivityUseCase(repo, zap.NewNop()), activity.Config{
		Stream:        testStream,
		ConsumerGroup: testGroup,
		ConsumerName:  testName,
		BatchSize:     10,
	}, zap.NewNop())
	return w, streams, repo
}

func message(t *testing.T, id string, event domain.ChangeEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestProcessBatch_RecordsAndAcks(t *testing.T) {
	w, streams, repo := newWorker()
	ctx := context.Background()

	created := domain.NewChangeEvent(domain.EntityRoute, 3, domain.ActionCreated)
	deleted := domain.NewChangeEvent(domain.EntityUser, 1, domain.ActionDeleted)

	streams.On("ConsumeBatch", ctx, testStream, testGroup, testName, int64(10)).Return([]domain.StreamMessage{
		message(t, "1-0", created),
		message(t, "2-0", deleted),
	}, nil)
	repo.On("RecordBatch", ctx, mock.MatchedBy(func(items []*domain.Activity) bool {
		return len(items) == 2 &&
			items[0].EventID == created.ID && items[0].Entity == "ruta" && items[0].Action == "CREATED" &&
			items[1].EventID == deleted.ID && items[1].EntityID == 1
	})).Return(2, nil)
	streams.On("AckMessages", ctx, testStream, testGroup, []string{"1-0", "2-0"}).Return(nil)

	n, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	streams.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestProcessBatch_AcksMalformed(t *testing.T) {
	w, streams, repo := newWorker()
	ctx := context.Background()

	valid := domain.NewChangeEvent(domain.EntityCategory, 2, domain.ActionPatched)
	invalidAction := domain.NewChangeEvent(domain.EntityCategory, 2, domain.Action("EXPLODED"))

	streams.On("ConsumeBatch", ctx, testStream, testGroup, testName, int64(10)).Return([]domain.StreamMessage{
		{ID: "1-0", Data: "not json"},
		{ID: "2-0"},
		message(t, "3-0", invalidAction),
		message(t, "4-0", valid),
	}, nil)
	streams.On("AckMessages", ctx, testStream, testGroup, []string{"1-0", "2-0", "3-0"}).Return(nil).Once()
	repo.On("RecordBatch", ctx, mock.AnythingOfType("[]*domain.Activity")).Return(1, nil)
	streams.On("AckMessages", ctx, testStream, testGroup, []string{"4-0"}).Return(nil).Once()

	n, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	streams.AssertExpectations(t)
}

func TestProcessBatch_StoreFailureLeavesBatchPending(t *testing.T) {
	w, streams, repo := newWorker()
	ctx := context.Background()

	streams.On("ConsumeBatch", ctx, testStream, testGroup, testName, int64(10)).Return([]domain.StreamMessage{
		message(t, "1-0", domain.NewChangeEvent(domain.EntityPoint, 9, domain.ActionUpdated)),
	}, nil)
	repo.On("RecordBatch", ctx, mock.Anything).Return(0, errors.New("connection refused"))

	_, err := w.ProcessBatch(ctx)
	require.Error(t, err)
	streams.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessBatch_Empty(t *testing.T) {
	w, streams, repo := newWorker()
	ctx := context.Background()

	streams.On("ConsumeBatch", ctx, testStream, testGroup, testName, int64(10)).Return([]domain.StreamMessage{}, nil)

	n, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	repo.AssertNotCalled(t, "RecordBatch", mock.Anything, mock.Anything)
}

func TestStart_StopsOnSignal(t *testing.T) {
	w, streams, _ := newWorker()

	streams.On("CreateConsumerGroup", mock.Anything, testStream, testGroup).Return(nil)
	streams.On("ConsumeBatch", mock.Anything, testStream, testGroup, testName, int64(10)).
		After(5*time.Millisecond).
		Return([]domain.StreamMessage{}, nil)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStart_GroupCreationFails(t *testing.T) {
	w, streams, _ := newWorker()
	streams.On("CreateConsumerGroup", mock.Anything, testStream, testGroup).Return(errors.New("redis down"))

	err := w.Start(context.Background())
	assert.Error(t, err)
}
