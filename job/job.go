// Copyright (c) 2025 BVK Chaitanya

// Package job implements a cancelable background activity. A job wraps a
// long-running function whose cancellation is cooperative: the function is
// expected to watch its context.Context argument and return the context
// cause when it is canceled.
package job

import (
	"context"
	"errors"
	"sync"
)

type State string

const (
	RUNNING   State = "RUNNING"
	CANCELED  State = "CANCELED"
	COMPLETED State = "COMPLETED"
	FAILED    State = "FAILED"
)

type Func func(ctx context.Context) error

var errCancel = errors.New("ErrCancel")

type Job struct {
	cancel context.CancelCauseFunc

	wg sync.WaitGroup

	mu sync.Mutex

	status State

	err error
}

// Run starts the input function in a background goroutine. The function
// receives a context derived from the input context, so canceling the parent
// also stops the job.
func Run(ctx context.Context, f Func) *Job {
	jctx, jcancel := context.WithCancelCause(ctx)
	j := &Job{
		cancel: jcancel,
		status: RUNNING,
	}
	j.wg.Add(1)
	go j.goRun(jctx, f)
	return j
}

func (j *Job) goRun(ctx context.Context, f Func) {
	defer j.wg.Done()

	err := f(ctx)

	j.mu.Lock()
	defer j.mu.Unlock()

	j.err = err
	if j.status != RUNNING {
		// Cancel has already picked the final state.
		return
	}
	switch {
	case err == nil || errors.Is(err, context.Cause(ctx)):
		j.status = COMPLETED
	default:
		j.status = FAILED
	}
}

// Cancel requests cooperative cancellation and waits for the job function to
// return. Cancel on a finished job is a no-op.
func (j *Job) Cancel() {
	j.mu.Lock()
	if j.status == RUNNING {
		j.status = CANCELED
		j.cancel(errCancel)
	}
	j.mu.Unlock()

	j.wg.Wait()
}

// Wait blocks till the job function has returned.
func (j *Job) Wait() {
	j.wg.Wait()
}

func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Err returns the error returned by the job function, if it has returned.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

func IsFinal(s State) bool {
	return s != RUNNING
}
