// Package async runs functions in background goroutines and exposes their
// results as typed futures.
//
// Async starts an unbounded goroutine per call. Pool bounds how many
// submitted functions run at once, which keeps CPU-heavy work such as
// password hashing from starving the rest of the process:
//
//	pool := async.NewPool(runtime.GOMAXPROCS(0))
//	digest, err := async.Submit(ctx, pool, func(ctx context.Context) (string, error) {
//	    return hash(password)
//	}).Await()
//
// Waiting for a free slot honours ctx; once a function has started it runs to
// completion.
package async
