package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingWarmer struct {
	calls int64
}

func (w *countingWarmer) Warm(_ context.Context, _ string) error {
	atomic.AddInt64(&w.calls, 1)
	return nil
}

type signalWarmer struct {
	ran chan string
}

func (w *signalWarmer) Warm(_ context.Context, city string) error {
	select {
	case w.ran <- city:
	default:
	}
	return nil
}

func TestSchedulerDisabledWhenIntervalZero(t *testing.T) {
	w := &countingWarmer{}
	s := New("Bacolod,PH", 0, w, zap.NewNop().Sugar())

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&w.calls))
}

func TestSchedulerRunsWarmJob(t *testing.T) {
	w := &signalWarmer{ran: make(chan string, 1)}
	s := New("Bacolod,PH", 10*time.Millisecond, w, zap.NewNop().Sugar())

	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case city := <-w.ran:
		assert.Equal(t, "Bacolod,PH", city)
	case <-time.After(2 * time.Second):
		t.Fatal("warm job did not run")
	}
}
