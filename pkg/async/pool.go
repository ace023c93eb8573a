package async

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Pool limits the number of concurrently running submitted functions.
type Pool struct {
	size int64
	sem  *semaphore.Weighted
}

// NewPool creates a pool that runs at most size functions at a time.
func NewPool(size int) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrPoolSize, size)
	}
	return &Pool{
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}, nil
}

// Size returns the maximum number of concurrently running functions.
func (p *Pool) Size() int {
	return int(p.size)
}

// Submit schedules fn on the pool. The returned future resolves with ctx.Err()
// if ctx is done before a slot becomes free.
func Submit[U any](ctx context.Context, p *Pool, fn func(context.Context) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		if err := ctx.Err(); err != nil {
			var zero U
			f.resolve(zero, err)
			return
		}
		if err := p.sem.Acquire(ctx, 1); err != nil {
			var zero U
			f.resolve(zero, err)
			return
		}
		defer p.sem.Release(1)

		f.resolve(fn(ctx))
	}()

	return f
}

// Do runs fn on the pool and waits for the result.
func Do[U any](ctx context.Context, p *Pool, fn func(context.Context) (U, error)) (U, error) {
	return Submit(ctx, p, fn).Await()
}
