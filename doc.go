// SPDX-License-Identifier: Apache-2.0

// Package scgc implements a simple conservative mark-and-sweep garbage
// collector over a single fixed-capacity arena.
//
// The collector knows nothing about the types stored in its blocks. During a
// collection every pointer-sized word in the roots, and then in every block
// reached so far, is treated as a possible address; a word that falls inside
// an allocated block keeps that block alive. Blocks never move.
//
// Typical usage keeps block addresses in the slots of a Stack and passes it
// to every call:
//
//	c := scgc.New(1 << 20)
//	defer c.Close()
//
//	st := scgc.NewStack(2)
//	st.SetRootBegin(st.Slot(0)).SetRootEnd(st.Top())
//
//	a, err := c.Allocate(st, 64)
//	if err != nil { ... }
//	st.Store(0, a) // a now survives collections
//
// Allocation first bumps a cursor through untouched arena space, then reuses
// the first reclaimed block that is large enough, and finally runs one full
// collection before giving up with ErrOutOfMemory. Reclaimed blocks are
// neither split nor coalesced.
//
// Every allocation also costs RecordSize bytes of bookkeeping taken from the
// same arena. Record slots are reused but never removed, so a program that
// churns through many small blocks can exhaust the arena on bookkeeping alone.
//
// A Collector is single-threaded: it performs no locking and concurrent use
// is undefined. Wrap it with NewConcurrentHeap when it must be shared.
package scgc
