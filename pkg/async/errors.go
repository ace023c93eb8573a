package async

import "errors"

var (
	ErrTimeout   = errors.New("async: operation timed out waiting for future completion")
	ErrPoolSize  = errors.New("async: pool size must be positive")
	ErrNoFutures = errors.New("async: WaitAll called with empty futures slice")
)
