package task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartRunsImmediately(t *testing.T) {
	var runs atomic.Int32
	task := NewTickerTaskFromFunc(0, func() error {
		runs.Add(1)
		return nil
	})

	task.Start()
	assert.Equal(t, int32(1), runs.Load())
	task.Stop()
}

func TestSkipInitialRun(t *testing.T) {
	var runs atomic.Int32
	task := NewTickerTaskWithOptions(Options{
		Interval:       0,
		Runner:         RunnerFunc(func() error { runs.Add(1); return nil }),
		SkipInitialRun: true,
	})

	task.Start()
	assert.Equal(t, int32(0), runs.Load())
	task.Stop()
}

func TestRecurringRuns(t *testing.T) {
	var runs atomic.Int32
	task := NewTickerTaskFromFunc(5*time.Millisecond, func() error {
		runs.Add(1)
		return nil
	})

	task.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
	task.Stop()
}

func TestStopIsIdempotent(t *testing.T) {
	task := NewTickerTaskFromFunc(time.Hour, func() error { return nil })
	task.Start()

	task.Stop()
	task.Stop()

	select {
	case <-task.Done():
	default:
		t.Error("Done channel should be closed after Stop")
	}
}
