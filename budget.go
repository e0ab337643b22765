// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// MemoryAcquirer is an interface for reserving memory before it is mapped.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

// Budget is a byte limit shared by several collectors. It is safe for
// concurrent use.
type Budget struct {
	limit int64
	sem   *semaphore.Weighted
	used  atomic.Int64
}

// NewBudget creates a budget of limit bytes.
func NewBudget(limit int64) *Budget {
	return &Budget{
		limit: limit,
		sem:   semaphore.NewWeighted(limit),
	}
}

// AcquireMemory reserves amount bytes without blocking.
// Returns ErrBudgetExceeded if the limit would be exceeded.
func (b *Budget) AcquireMemory(ctx context.Context, amount int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return nil
	}
	if !b.sem.TryAcquire(amount) {
		return fmt.Errorf("%w: want %d bytes, %d of %d in use",
			ErrBudgetExceeded, amount, b.used.Load(), b.limit)
	}
	b.used.Add(amount)
	return nil
}

// ReleaseMemory returns amount bytes to the budget.
func (b *Budget) ReleaseMemory(amount int64) {
	if amount <= 0 {
		return
	}
	b.used.Add(-amount)
	b.sem.Release(amount)
}

// Used returns the number of reserved bytes.
func (b *Budget) Used() int64 {
	return b.used.Load()
}

// Limit returns the budget size in bytes.
func (b *Budget) Limit() int64 {
	return b.limit
}
