// Copyright (c) 2025 BVK Chaitanya

package ctxutil

import (
	"context"
	"os"
	"sync"
)

// CloseGroup manages a group of background goroutines that are canceled and
// awaited together through the Close method. The zero value is ready for use.
type CloseGroup struct {
	closeCtx  context.Context
	causeFunc context.CancelCauseFunc

	wg sync.WaitGroup

	once sync.Once
}

func (cg *CloseGroup) init() {
	cg.closeCtx, cg.causeFunc = context.WithCancelCause(context.Background())
}

// Close cancels the group context and waits for all goroutines to finish.
func (cg *CloseGroup) Close() {
	cg.once.Do(cg.init)
	cg.causeFunc(os.ErrClosed)
	cg.wg.Wait()
}

// Context returns the context shared by all goroutines in the group.
func (cg *CloseGroup) Context() context.Context {
	cg.once.Do(cg.init)
	return cg.closeCtx
}

// Go runs the input function in a new goroutine belonging to the group.
func (cg *CloseGroup) Go(f func(ctx context.Context)) {
	cg.once.Do(cg.init)

	cg.wg.Add(1)
	go func() {
		f(cg.closeCtx)
		cg.wg.Done()
	}()
}
