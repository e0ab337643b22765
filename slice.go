// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"fmt"
	"math"
)

const growThreshold = 256

// AllocateSlice creates a slice of type T with a given length and capacity
// whose backing array is a block of h. It returns the slice together with
// the block address, which the caller must keep in its roots for as long as
// the slice is used.
//
// T must not contain Go pointers. If h is nil, or the slice needs no storage
// because cap is zero or T has zero size, it returns a slice using Go's
// built-in make function and a zero address.
func AllocateSlice[T any](h Heap, roots Roots, len, cap int) ([]T, Addr, error) {
	if h == nil {
		return make([]T, len, cap), 0, nil
	}
	if len < 0 || len > cap {
		return nil, 0, fmt.Errorf("%w: len %d, cap %d", ErrInvalidSize, len, cap)
	}
	elem := sizeOf[T]()
	if cap == 0 || elem == 0 {
		// Nothing to store, so no block and no address.
		return make([]T, len, cap), 0, nil
	}
	if cap > math.MaxInt/elem {
		return nil, 0, fmt.Errorf("%w: cap %d of %d-byte elements", ErrInvalidSize, cap, elem)
	}
	a, err := h.Allocate(roots, elem*cap)
	if err != nil {
		return nil, 0, err
	}
	b, err := h.Bytes(a)
	if err != nil {
		return nil, 0, err
	}
	return viewAs[T](b, cap)[:len], a, nil
}

// SliceAppend appends elements to a slice of type T, moving it to a larger
// block of h when its capacity runs out. The returned address is the block
// now backing the slice; the previous block is left for the collector.
// While the move happens s must still be reachable from roots.
func SliceAppend[T any](h Heap, roots Roots, s []T, addr Addr, data ...T) ([]T, Addr, error) {
	if h == nil {
		return append(s, data...), addr, nil
	}
	s, addr, err := growSlice(h, roots, s, addr, len(data))
	if err != nil {
		return nil, 0, err
	}
	s = append(s, data...)
	return s, addr, nil
}

func growSlice[T any](h Heap, roots Roots, s []T, addr Addr, dataLen int) ([]T, Addr, error) {
	newLen := len(s) + dataLen
	newCap := cap(s)

	if newCap > 0 {
		for newLen > newCap {
			if newCap < growThreshold {
				newCap *= 2
			} else {
				newCap += newCap / 4
			}
		}
	} else {
		newCap = dataLen
	}
	if newCap == cap(s) {
		return s, addr, nil
	}
	s2, a2, err := AllocateSlice[T](h, roots, len(s), newCap)
	if err != nil {
		return nil, 0, err
	}
	copy(s2, s)
	return s2, a2, nil
}
