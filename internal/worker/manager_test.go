package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type loopWorker struct {
	*BaseWorker
	started atomic.Bool
	block   bool
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	if w.block {
		select {}
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestManager_StartStop(t *testing.T) {
	m := NewManager(time.Second, zap.NewNop())
	w := &loopWorker{BaseWorker: NewBaseWorker("loop", "group", zap.NewNop())}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, w.started.Load, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, w.IsStopped())
	assert.NoError(t, w.Stop(), "second stop is a no-op")
}

func TestManager_NoWorkers(t *testing.T) {
	m := NewManager(0, zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestManager_StopTimeout(t *testing.T) {
	m := NewManager(20*time.Millisecond, zap.NewNop())
	m.Register(&loopWorker{BaseWorker: NewBaseWorker("stuck", "group", zap.NewNop()), block: true})

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())
}
