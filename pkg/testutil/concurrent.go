package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	dErrors "tenantdash/pkg/domain-errors"
	"tenantdash/pkg/platform/sentinel"
)

// ConcurrentResult counts outcomes of RunConcurrent by kind.
type ConcurrentResult struct {
	Successes   int32
	NotFounds   int32
	Forbidden   int32
	Unavailable int32
	Errors      int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.NotFounds + r.Forbidden + r.Unavailable + r.Errors
}

// RunConcurrent starts goroutines copies of fn, releases them together so
// they contend, and tallies the returned errors.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var (
		counts [5]atomic.Int32
		start  = make(chan struct{})
		wg     sync.WaitGroup
	)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			counts[classify(fn(i))].Add(1)
		}()
	}
	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes:   counts[0].Load(),
		NotFounds:   counts[1].Load(),
		Forbidden:   counts[2].Load(),
		Unavailable: counts[3].Load(),
		Errors:      counts[4].Load(),
	}
}

func classify(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, sentinel.ErrNotFound), dErrors.HasCode(err, dErrors.CodeNotFound):
		return 1
	case dErrors.HasCode(err, dErrors.CodeForbidden):
		return 2
	case errors.Is(err, sentinel.ErrUnavailable), dErrors.HasCode(err, dErrors.CodeUnavailable):
		return 3
	default:
		return 4
	}
}
