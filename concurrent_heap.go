// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"sync"
)

type concurrentHeap struct {
	mtx sync.Mutex
	h   Heap
}

// NewConcurrentHeap returns a heap that serializes every call to h, so it
// can be shared by several goroutines. A collection triggered by one
// goroutine only sees the roots passed by that goroutine, so callers must
// still pass roots covering everything they want kept.
func NewConcurrentHeap(h Heap) Heap {
	return &concurrentHeap{h: h}
}

// Allocate satisfies the Heap interface.
func (c *concurrentHeap) Allocate(roots Roots, size int) (Addr, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.h == nil {
		return 0, ErrClosed
	}
	return c.h.Allocate(roots, size)
}

// Collect satisfies the Heap interface.
func (c *concurrentHeap) Collect(roots Roots) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.h == nil {
		return ErrClosed
	}
	return c.h.Collect(roots)
}

// Bytes satisfies the Heap interface.
func (c *concurrentHeap) Bytes(a Addr) ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.h == nil {
		return nil, ErrClosed
	}
	return c.h.Bytes(a)
}

// Len returns the total number of bytes currently allocated in the heap.
func (c *concurrentHeap) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.h == nil {
		return 0
	}
	return c.h.Len()
}

// Cap returns the total capacity (maximum bytes) of the heap.
func (c *concurrentHeap) Cap() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.h == nil {
		return 0
	}
	return c.h.Cap()
}

// Peak returns the peak number of bytes that have been allocated in the heap.
func (c *concurrentHeap) Peak() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.h == nil {
		return 0
	}
	return c.h.Peak()
}
