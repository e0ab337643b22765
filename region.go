// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"fmt"

	"github.com/wundergraph/go-scgc/internal/mmap"
)

// region is the fixed arena. Blocks are carved from the low end by a bump
// cursor; the record table is charged against the high end.
type region struct {
	mapping *mmap.Mapping
	buf     []byte
	base    Addr
	offset  int // bump cursor relative to base
}

func newRegion(capacity int) (*region, error) {
	m, err := mmap.MapAnon(capacity)
	if err != nil {
		return nil, fmt.Errorf("scgc: reserve %d bytes: %w", capacity, err)
	}
	buf := m.Bytes()
	return &region{
		mapping: m,
		buf:     buf,
		base:    addrOf(buf),
	}, nil
}

// alloc bumps the cursor by size rounded up to a word, provided that the
// result still leaves tableBytes free at the high end.
func (r *region) alloc(size, tableBytes int) (Addr, bool) {
	avail := r.availableBytes(tableBytes)
	// Bound size before rounding so alignUp cannot overflow.
	if size > avail {
		return 0, false
	}
	step := alignUp(size)
	if step > avail {
		return 0, false
	}
	a := r.base + Addr(r.offset)
	r.offset += step
	return a, true
}

func (r *region) availableBytes(tableBytes int) int {
	return len(r.buf) - r.offset - tableBytes
}

// end is one past the last arena byte.
func (r *region) end() Addr {
	return r.base + Addr(len(r.buf))
}

// cursor is the next bump address.
func (r *region) cursor() Addr {
	return r.base + Addr(r.offset)
}

// contains reports whether a lies in [base, end].
func (r *region) contains(a Addr) bool {
	return r.base <= a && a <= r.end()
}

// bytes returns the n arena bytes starting at a with capacity limited to
// limit bytes. Callers must have validated the range.
func (r *region) bytes(a Addr, n, limit int) []byte {
	off := int(a - r.base)
	return r.buf[off : off+n : off+limit]
}

func (r *region) clear(a Addr, n int) {
	clear(r.bytes(a, n, n))
}

func (r *region) release() error {
	r.buf = nil
	r.offset = 0
	return r.mapping.Close()
}
