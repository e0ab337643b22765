// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Collector is a conservative mark-and-sweep collector over one fixed arena.
//
// A Collector is not safe for concurrent use. Calling any of its methods from
// more than one goroutine at a time without external synchronization is
// undefined; see NewConcurrentHeap.
type Collector struct {
	cfg    config
	region *region
	table  *recordTable

	live        int // requested bytes of in-use records
	peak        int
	collections uint64
	closed      bool
}

// New creates a collector managing capacity bytes.
//
// There is no degraded mode: New panics if the configuration is invalid or
// the memory cannot be obtained.
func New(capacity int, opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(capacity); err != nil {
		panic(fmt.Errorf("scgc: invalid configuration: %w", err))
	}

	if cfg.acquirer != nil {
		if err := cfg.acquirer.AcquireMemory(context.Background(), int64(capacity)); err != nil {
			panic(fmt.Errorf("scgc: reserve %d bytes: %w", capacity, err))
		}
	}

	r, err := newRegion(capacity)
	if err != nil {
		if cfg.acquirer != nil {
			cfg.acquirer.ReleaseMemory(int64(capacity))
		}
		panic(err)
	}

	cfg.logger.Info("collector ready",
		"capacity", capacity,
		"base", fmt.Sprintf("%#x", uintptr(r.base)),
		"end", fmt.Sprintf("%#x", uintptr(r.end())),
	)

	return &Collector{
		cfg:    cfg,
		region: r,
		table:  newRecordTable(),
	}
}

// Allocate returns the address of a block of at least size bytes.
//
// Fresh bump space is used first, then the first reclaimed block that is large
// enough. If neither exists a full collection runs from roots and the
// reclaimed blocks are searched once more. ErrOutOfMemory is returned if that
// also fails. The roots are validated on every call, even when no collection
// turns out to be needed.
func (c *Collector) Allocate(roots Roots, size int) (Addr, error) {
	return c.AllocateContext(context.Background(), roots, size)
}

// AllocateContext is like Allocate. ctx only parents the trace span of a
// collection triggered by this call; the allocation is never cancelled.
func (c *Collector) AllocateContext(ctx context.Context, roots Roots, size int) (Addr, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	spans, err := rootSpans(roots)
	if err != nil {
		return 0, err
	}

	if a, ok := c.allocFresh(size); ok {
		c.cfg.logger.Debug("allocated from free space", "addr", a, "size", size)
		return a, nil
	}
	if a, ok := c.allocReclaimed(size); ok {
		c.cfg.logger.Debug("allocated from reclaimed block", "addr", a, "size", size)
		return a, nil
	}

	ctx, span := c.cfg.tracer.Start(ctx, "scgc.allocate",
		trace.WithAttributes(attribute.Int("scgc.size", size)))
	defer span.End()

	c.collect(ctx, spans)

	if a, ok := c.allocReclaimed(size); ok {
		c.cfg.logger.Debug("allocated from reclaimed block after collection", "addr", a, "size", size)
		return a, nil
	}

	err = fmt.Errorf("%w: %d bytes", ErrOutOfMemory, size)
	span.RecordError(err)
	span.SetStatus(codes.Error, "out of memory")
	c.cfg.logger.Warn("allocation failed after collection",
		"size", size,
		"records", c.table.len(),
		"free_records", c.table.free.GetCardinality(),
	)
	return 0, err
}

func (c *Collector) allocFresh(size int) (Addr, bool) {
	a, ok := c.region.alloc(size, c.table.bytes()+RecordSize)
	if !ok {
		return 0, false
	}
	c.table.append(a, size)
	c.grow(size)
	return a, true
}

func (c *Collector) allocReclaimed(size int) (Addr, bool) {
	i, ok := c.table.reuse(size)
	if !ok {
		return 0, false
	}
	c.grow(size)
	return c.table.records[i].Addr, true
}

func (c *Collector) grow(n int) {
	c.live += n
	if c.live > c.peak {
		c.peak = c.live
	}
}

// Collect runs a full mark-and-sweep pass starting from roots.
func (c *Collector) Collect(roots Roots) error {
	return c.CollectContext(context.Background(), roots)
}

// CollectContext is like Collect. ctx only parents the trace span; a
// collection always runs to completion once started.
func (c *Collector) CollectContext(ctx context.Context, roots Roots) error {
	if c.closed {
		return ErrClosed
	}
	spans, err := rootSpans(roots)
	if err != nil {
		return err
	}
	c.collect(ctx, spans)
	return nil
}

func rootSpans(roots Roots) ([][]byte, error) {
	if roots == nil {
		return nil, ErrRootsUnset
	}
	if s, ok := roots.(*Stack); ok && s == nil {
		return nil, ErrRootsUnset
	}
	return roots.RootSpans()
}

// Resolve returns the in-use record whose block contains a.
func (c *Collector) Resolve(a Addr) (Record, bool) {
	if c.closed || !c.region.contains(a) {
		return Record{}, false
	}
	i := c.table.find(a)
	if i < 0 || !c.table.records[i].InUse() {
		return Record{}, false
	}
	return c.table.records[i], true
}

// Bytes returns the block starting at a. Its length is the requested size
// and its capacity is the size of the block.
func (c *Collector) Bytes(a Addr) ([]byte, error) {
	r, ok := c.Resolve(a)
	if !ok {
		return nil, fmt.Errorf("%w: %#x", ErrNotAllocated, uintptr(a))
	}
	if r.Addr != a {
		return nil, fmt.Errorf("%w: %#x is inside the block at %#x", ErrNotAllocated, uintptr(a), uintptr(r.Addr))
	}
	return c.region.bytes(r.Addr, r.Requested, r.Size), nil
}

// StoreAddr writes v as a pointer-sized word at address at, which must lie
// within a single in-use block.
func (c *Collector) StoreAddr(at, v Addr) error {
	b, err := c.word(at)
	if err != nil {
		return err
	}
	storeWord(b, v)
	return nil
}

// LoadAddr reads the pointer-sized word at address at.
func (c *Collector) LoadAddr(at Addr) (Addr, error) {
	b, err := c.word(at)
	if err != nil {
		return 0, err
	}
	return loadWord(b), nil
}

func (c *Collector) word(at Addr) ([]byte, error) {
	r, ok := c.Resolve(at)
	if !ok {
		return nil, fmt.Errorf("%w: %#x", ErrNotAllocated, uintptr(at))
	}
	if at+Addr(WordSize) > r.End() {
		return nil, fmt.Errorf("%w: word at %#x crosses block end %#x", ErrOutOfBounds, uintptr(at), uintptr(r.End()))
	}
	return c.region.bytes(at, WordSize, WordSize), nil
}

// Records returns a copy of the record table in slot order.
func (c *Collector) Records() []Record {
	return c.table.snapshot()
}

// Base returns the first arena address.
func (c *Collector) Base() Addr {
	return c.region.base
}

// End returns one past the last arena address.
func (c *Collector) End() Addr {
	return c.region.base + Addr(c.Cap())
}

// Len returns the number of requested bytes currently held by in-use blocks.
func (c *Collector) Len() int {
	return c.live
}

// Cap returns the arena capacity in bytes.
func (c *Collector) Cap() int {
	return c.region.mapping.Size()
}

// Peak returns the highest value Len has reached.
func (c *Collector) Peak() int {
	return c.peak
}

// Close releases the arena. Every address handed out becomes invalid.
func (c *Collector) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.region.release()
	if c.cfg.acquirer != nil {
		c.cfg.acquirer.ReleaseMemory(int64(c.Cap()))
	}
	c.cfg.logger.Info("collector closed", "collections", c.collections)
	return err
}
