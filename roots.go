// SPDX-License-Identifier: Apache-2.0

package scgc

import "fmt"

// Roots is the memory a collection starts from. Every word found in the
// returned spans that points into a live block keeps that block alive.
//
// Roots are passed to every Allocate and Collect call instead of being stored
// on the Collector, so a root window can never be forgotten or go stale
// between calls.
type Roots interface {
	RootSpans() ([][]byte, error)
}

// Spans is a Roots made of arbitrary caller-owned byte slices.
type Spans [][]byte

// RootSpans satisfies the Roots interface.
func (s Spans) RootSpans() ([][]byte, error) {
	return s, nil
}

// Words returns a single-span Roots holding the given addresses.
func Words(addrs ...Addr) Spans {
	b := make([]byte, len(addrs)*WordSize)
	for i, a := range addrs {
		storeWord(b[i*WordSize:], a)
	}
	return Spans{b}
}

// Stack is a caller-owned shadow stack: a fixed array of word slots whose
// addresses are stable. The caller keeps block addresses in its slots and
// registers the window [begin, end) that a collection must scan, the same
// way a native program would register part of its call stack.
type Stack struct {
	mem      []byte
	begin    Addr
	end      Addr
	hasBegin bool
	hasEnd   bool
}

// NewStack creates a stack with the given number of word slots.
func NewStack(words int) *Stack {
	if words <= 0 {
		panic("scgc: stack needs at least one slot")
	}
	return &Stack{mem: make([]byte, words*WordSize)}
}

// Len returns the number of slots.
func (s *Stack) Len() int {
	return len(s.mem) / WordSize
}

// Slot returns the address of slot i.
func (s *Stack) Slot(i int) Addr {
	return addrOf(s.mem[i*WordSize : (i+1)*WordSize])
}

// Top returns the address one past the last slot.
func (s *Stack) Top() Addr {
	return addrOf(s.mem) + Addr(len(s.mem))
}

// Store writes v into slot i.
func (s *Stack) Store(i int, v Addr) {
	storeWord(s.mem[i*WordSize:(i+1)*WordSize], v)
}

// Load reads slot i.
func (s *Stack) Load(i int) Addr {
	return loadWord(s.mem[i*WordSize : (i+1)*WordSize])
}

// SetRootBegin sets the inclusive start of the scanned window. The most
// recent value wins.
func (s *Stack) SetRootBegin(a Addr) *Stack {
	s.begin, s.hasBegin = a, true
	return s
}

// SetRootEnd sets the exclusive end of the scanned window. The most recent
// value wins.
func (s *Stack) SetRootEnd(a Addr) *Stack {
	s.end, s.hasEnd = a, true
	return s
}

// RootSpans satisfies the Roots interface.
func (s *Stack) RootSpans() ([][]byte, error) {
	if !s.hasBegin || !s.hasEnd {
		return nil, ErrRootsUnset
	}
	lo := addrOf(s.mem)
	hi := s.Top()
	if s.begin > s.end || s.begin < lo || s.end > hi {
		return nil, fmt.Errorf("%w: [%#x, %#x) not within stack [%#x, %#x)",
			ErrRootsInvalid, uintptr(s.begin), uintptr(s.end), uintptr(lo), uintptr(hi))
	}
	return [][]byte{s.mem[s.begin-lo : s.end-lo]}, nil
}
