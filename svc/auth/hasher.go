package auth

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/lightsave/pkg/async"
)

// DefaultBcryptCost is the bcrypt work factor used unless overridden.
const DefaultBcryptCost = 10

// Hasher transforms passwords into digests and verifies attempts.
//
// Verify reports false for a wrong password and for a malformed digest. An
// error means the check could not run at all.
type Hasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, digest string) (bool, error)
}

// BcryptHasher hashes with bcrypt on a bounded worker pool.
type BcryptHasher struct {
	cost int
	pool *async.Pool
}

// HasherOption configures a BcryptHasher.
type HasherOption func(*hasherConfig)

type hasherConfig struct {
	cost    int
	workers int
	pool    *async.Pool
}

// WithCost sets the bcrypt work factor.
func WithCost(cost int) HasherOption {
	return func(c *hasherConfig) { c.cost = cost }
}

// WithWorkers sets how many hashes may run at once. Zero or less means
// GOMAXPROCS.
func WithWorkers(n int) HasherOption {
	return func(c *hasherConfig) { c.workers = n }
}

// WithPool shares an existing pool instead of creating one.
func WithPool(p *async.Pool) HasherOption {
	return func(c *hasherConfig) { c.pool = p }
}

// NewBcryptHasher creates a hasher. It fails for costs outside the range
// bcrypt accepts.
func NewBcryptHasher(opts ...HasherOption) (*BcryptHasher, error) {
	cfg := hasherConfig{cost: DefaultBcryptCost}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.cost < bcrypt.MinCost || cfg.cost > bcrypt.MaxCost {
		return nil, bcrypt.InvalidCostError(cfg.cost)
	}

	pool := cfg.pool
	if pool == nil {
		workers := cfg.workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		var err error
		if pool, err = async.NewPool(workers); err != nil {
			return nil, err
		}
	}

	return &BcryptHasher{cost: cfg.cost, pool: pool}, nil
}

// Cost returns the bcrypt work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	return async.Do(ctx, h.pool, func(context.Context) (string, error) {
		digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(digest), nil
	})
}

func (h *BcryptHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	return async.Do(ctx, h.pool, func(context.Context) (bool, error) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil, nil
	})
}
