package task

import (
	"sync"
	"time"
)

// Runner is the work a TickerTask repeats.
type Runner interface {
	Run() error
}

type TickerTask struct {
	interval       time.Duration
	runner         Runner
	skipInitialRun bool
	done           chan struct{}
	stopOnce       sync.Once
}

func NewTickerTask(interval time.Duration, runner Runner) *TickerTask {
	return NewTickerTaskWithOptions(Options{
		Interval: interval,
		Runner:   runner,
	})
}

type Options struct {
	Interval       time.Duration
	Runner         Runner
	SkipInitialRun bool
}

func NewTickerTaskWithOptions(opt Options) *TickerTask {
	return &TickerTask{
		interval:       opt.Interval,
		runner:         opt.Runner,
		skipInitialRun: opt.SkipInitialRun,
		done:           make(chan struct{}),
	}
}

// Start runs the task once on the calling goroutine, unless SkipInitialRun is set, and then
// every interval in the background. A non-positive interval disables the recurring runs.
func (t *TickerTask) Start() {
	if !t.skipInitialRun {
		t.runner.Run()
	}

	if t.interval > 0 {
		go t.runRecurring()
	}
}

// Stop ends the recurring runs. It may be called more than once.
func (t *TickerTask) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

// Done is closed once Stop has been called.
func (t *TickerTask) Done() <-chan struct{} {
	return t.done
}

func (t *TickerTask) runRecurring() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.runner.Run()
		case <-t.done:
			return
		}
	}
}
