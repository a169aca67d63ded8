package task

import "time"

// RunnerFunc adapts a plain function to Runner.
type RunnerFunc func() error

func (f RunnerFunc) Run() error {
	return f()
}

func NewTickerTaskFromFunc(interval time.Duration, run func() error) *TickerTask {
	return NewTickerTask(interval, RunnerFunc(run))
}
