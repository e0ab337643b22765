// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"io"
)

// Buffer is an append-only bytes.Buffer-like struct whose storage is a block
// of a Heap. It implements io.Writer and io.WriterTo.
//
// The buffer keeps the address of its current block in one slot of a Stack,
// so the block survives collections as long as that slot lies inside the
// stack's registered root window. Growing allocates a bigger block, copies
// the contents and abandons the old block to the collector.
type Buffer struct {
	heap  Heap
	stack *Stack
	slot  int
	buf   []byte
	addr  Addr
}

// NewBuffer creates an empty Buffer that pins its storage in stack slot.
// It panics if stack is nil or slot is not one of its slots.
func NewBuffer(h Heap, stack *Stack, slot int) *Buffer {
	if stack == nil {
		panic("scgc: buffer needs a stack")
	}
	if slot < 0 || slot >= stack.Len() {
		panic("scgc: buffer slot out of range")
	}
	return &Buffer{
		heap:  h,
		stack: stack,
		slot:  slot,
	}
}

// Write implements io.Writer interface.
// It appends len(p) bytes from p to the buffer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := b.grow(len(p)); err != nil {
		return 0, err
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte appends a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	if err := b.grow(1); err != nil {
		return err
	}
	b.buf = append(b.buf, c)
	return nil
}

// WriteString appends a string to the buffer.
func (b *Buffer) WriteString(s string) (n int, err error) {
	if len(s) == 0 {
		return 0, nil
	}
	if err := b.grow(len(s)); err != nil {
		return 0, err
	}
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// WriteTo implements io.WriterTo. Written bytes are dropped from the front
// of the buffer.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	if len(b.buf) == 0 {
		return 0, nil
	}

	m, err := w.Write(b.buf)
	if m > 0 {
		n += int64(m)
		copy(b.buf, b.buf[m:])
		b.buf = b.buf[:len(b.buf)-m]
	}

	return n, err
}

// grow makes room for n more bytes without letting append reallocate on
// the Go heap.
func (b *Buffer) grow(n int) error {
	if len(b.buf)+n <= cap(b.buf) {
		return nil
	}
	buf, addr, err := growSlice[byte](b.heap, b.stack, b.buf, b.addr, n)
	if err != nil {
		return err
	}
	b.buf, b.addr = buf, addr
	b.stack.Store(b.slot, addr)
	return nil
}

// Bytes returns a slice of length b.Len() holding the buffer contents.
// The slice is valid for use only until the next buffer modification.
func (b *Buffer) Bytes() []byte {
	if len(b.buf) == 0 {
		return []byte{}
	}
	return b.buf
}

// String returns the contents of the buffer as a string.
func (b *Buffer) String() string {
	return string(b.buf)
}

// Addr returns the address of the block currently backing the buffer, or
// zero if nothing has been written yet.
func (b *Buffer) Addr() Addr {
	return b.addr
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the current block.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Reset empties the buffer but keeps its block.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// Truncate discards all but the first n bytes from the buffer.
// It panics if n is negative or greater than the length of the buffer.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.buf) {
		panic("scgc: truncation out of range")
	}
	b.buf = b.buf[:n]
}
