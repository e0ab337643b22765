// SPDX-License-Identifier: Apache-2.0

package scgc

// Heap is an interface that describes a garbage-collected allocation arena.
type Heap interface {
	// Allocate allocates size bytes and returns the address of the block.
	// It may run a collection from roots first; any block not reachable from
	// roots must be assumed reclaimed afterwards.
	Allocate(roots Roots, size int) (Addr, error)

	// Collect reclaims every block not reachable from roots.
	Collect(roots Roots) error

	// Bytes returns the block starting at a.
	Bytes(a Addr) ([]byte, error)

	// Len returns the total number of bytes currently allocated in the heap.
	Len() int

	// Cap returns the total capacity (maximum bytes) of the heap.
	Cap() int

	// Peak returns the peak number of bytes that have been allocated in the heap.
	// Unlike Len it never goes down when blocks are reclaimed.
	Peak() int
}

var _ Heap = (*Collector)(nil)
