// SPDX-License-Identifier: Apache-2.0

package scgc

import "errors"

var (
	// ErrInvalidSize is returned when an allocation of zero or negative size is requested.
	ErrInvalidSize = errors.New("scgc: invalid allocation size")
	// ErrOutOfMemory is returned when neither bump space nor a reclaimed block
	// can satisfy a request, even after a full collection.
	ErrOutOfMemory = errors.New("scgc: out of memory")
	// ErrRootsUnset is returned when a collection would run without a root range.
	ErrRootsUnset = errors.New("scgc: root range not set")
	// ErrRootsInvalid is returned when the registered root range is reversed or
	// lies outside the memory it was registered against.
	ErrRootsInvalid = errors.New("scgc: invalid root range")
	// ErrClosed is returned when using a collector after Close.
	ErrClosed = errors.New("scgc: collector is closed")
	// ErrNotAllocated is returned when an address is not inside an in-use block.
	ErrNotAllocated = errors.New("scgc: address not allocated")
	// ErrOutOfBounds is returned when an access would cross the end of a block.
	ErrOutOfBounds = errors.New("scgc: access out of block bounds")
	// ErrBudgetExceeded is returned when a Budget cannot cover a reservation.
	ErrBudgetExceeded = errors.New("scgc: memory budget exceeded")
)
