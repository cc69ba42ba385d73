package common

import (
	"context"
	"fmt"
	"sync"
)

// Settled is the outcome of one task run by SettleAll.
type Settled[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task completed without error.
func (s Settled[T]) OK() bool {
	return s.Err == nil
}

// SettleAll runs fn once per index in [0, n) concurrently and waits for every
// call to finish. Results are positional: out[i] belongs to fn(ctx, i) no matter
// the completion order. A failing task never cancels its siblings, and a panic
// is recovered into that slot's error.
//
// limit caps how many tasks run at once; limit <= 0 starts all n immediately.
func SettleAll[T any](ctx context.Context, n int, limit int, fn func(ctx context.Context, i int) (T, error)) []Settled[T] {
	out := make([]Settled[T], n)
	if n == 0 {
		return out
	}

	var sem chan struct{}
	if limit > 0 && limit < n {
		sem = make(chan struct{}, limit)
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			defer func() {
				if rec := recover(); rec != nil {
					out[i] = Settled[T]{Err: fmt.Errorf("task %d panicked: %v", i, rec)}
				}
			}()

			v, err := fn(ctx, i)
			out[i] = Settled[T]{Value: v, Err: err}
		}(i)
	}
	wg.Wait()

	return out
}
