package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	calls   int64
	block   chan struct{}
	release chan struct{}
}

func (f *fakeProcessor) ProcessEligible(ctx context.Context) error {
	atomic.AddInt64(&f.calls, 1)
	if f.block != nil {
		f.block <- struct{}{}
		<-f.release
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestScheduler_RunsImmediatePassOnStart(t *testing.T) {
	proc := &fakeProcessor{}
	s := New(proc, time.Hour, time.Hour, NopMetrics{}, nopLogger{})

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&proc.calls) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_TriggerNow(t *testing.T) {
	proc := &fakeProcessor{}
	s := New(proc, time.Hour, time.Hour, NopMetrics{}, nopLogger{})

	s.Start(context.Background())
	defer s.Stop()

	// Дожидаемся стартового прохода, чтобы ручной запуск не конфликтовал с ним
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&proc.calls) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.TriggerNow(context.Background()))
	assert.EqualValues(t, 2, atomic.LoadInt64(&proc.calls))
}

func TestScheduler_TriggerNow_NotRunning(t *testing.T) {
	s := New(&fakeProcessor{}, time.Hour, time.Hour, NopMetrics{}, nopLogger{})

	err := s.TriggerNow(context.Background())
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestScheduler_TriggerNow_ConflictWhileInFlight(t *testing.T) {
	proc := &fakeProcessor{
		block:   make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(proc, time.Hour, time.Hour, NopMetrics{}, nopLogger{})

	s.Start(context.Background())

	// Стартовый проход повис внутри обработчика
	<-proc.block
	assert.True(t, s.InFlight())

	err := s.TriggerNow(context.Background())
	assert.ErrorIs(t, err, ErrPassInFlight)

	close(proc.release)
	s.Stop()
	assert.False(t, s.InFlight())
}

func TestScheduler_TaskStatus(t *testing.T) {
	s := New(&fakeProcessor{}, time.Hour, time.Hour, NopMetrics{}, nopLogger{})

	status := s.TaskStatus()
	assert.False(t, status[TaskProcessor])
	assert.False(t, status[TaskHealthCheck])

	s.Start(context.Background())
	status = s.TaskStatus()
	assert.True(t, status[TaskProcessor])
	assert.True(t, status[TaskHealthCheck])

	s.Stop()
	status = s.TaskStatus()
	assert.False(t, status[TaskProcessor])
}

func TestScheduler_StopWaitsForPass(t *testing.T) {
	proc := &fakeProcessor{
		block:   make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(proc, time.Hour, time.Hour, NopMetrics{}, nopLogger{})

	s.Start(context.Background())
	<-proc.block

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Stop returned while a pass was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(proc.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the pass finished")
	}
}
