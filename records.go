// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Status is the collection state of a record.
type Status uint8

const (
	// Unknown records have not been reached yet in the current collection.
	Unknown Status = iota
	// Touched records were reached but their block has not been scanned yet.
	Touched
	// Referred records are live: freshly allocated or reached and scanned.
	Referred
	// Deallocated records were reclaimed and may back a later allocation.
	Deallocated
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Touched:
		return "touched"
	case Referred:
		return "referred"
	case Deallocated:
		return "deallocated"
	default:
		return "invalid"
	}
}

// Record describes one block of the arena.
//
// Addr and Size are fixed when the slot is created. Reusing a deallocated
// slot keeps both, so Size is the block's capacity; Requested holds the size
// asked for by the allocation currently occupying the slot.
type Record struct {
	Addr      Addr
	Size      int
	Requested int
	Status    Status
}

// End returns one past the last byte of the block.
func (r Record) End() Addr {
	return r.Addr + Addr(r.Size)
}

// Contains reports whether a lies inside the block.
func (r Record) Contains(a Addr) bool {
	return r.Addr <= a && a < r.End()
}

// InUse reports whether the record currently backs an allocation.
func (r Record) InUse() bool {
	return r.Status != Deallocated
}

// recordTable holds records in slot order. Slots are only ever appended, and
// every appended slot has a higher Addr than the one before it. Reuse never
// changes a slot's Addr, so the table stays sorted by address for its whole
// lifetime and find can binary search it.
type recordTable struct {
	records []Record
	free    *roaring.Bitmap // slot indices with Status == Deallocated
}

func newRecordTable() *recordTable {
	return &recordTable{free: roaring.New()}
}

func (t *recordTable) len() int {
	return len(t.records)
}

// bytes is the arena space charged for the table.
func (t *recordTable) bytes() int {
	return len(t.records) * RecordSize
}

func (t *recordTable) append(a Addr, size int) int {
	t.records = append(t.records, Record{
		Addr:      a,
		Size:      size,
		Requested: size,
		Status:    Referred,
	})
	return len(t.records) - 1
}

// reuse claims the first deallocated slot, in slot order, whose block can
// hold size bytes.
func (t *recordTable) reuse(size int) (int, bool) {
	it := t.free.Iterator()
	for it.HasNext() {
		i := it.Next()
		r := &t.records[i]
		if r.Size < size {
			continue
		}
		t.free.Remove(i)
		r.Status = Referred
		r.Requested = size
		return int(i), true
	}
	return 0, false
}

func (t *recordTable) release(i int) {
	t.records[i].Status = Deallocated
	t.free.Add(uint32(i))
}

// find returns the slot whose block contains a, regardless of status, or -1.
func (t *recordTable) find(a Addr) int {
	// First slot starting after a; the candidate is the one before it.
	i := sort.Search(len(t.records), func(i int) bool {
		return t.records[i].Addr > a
	})
	if i == 0 {
		return -1
	}
	if !t.records[i-1].Contains(a) {
		return -1
	}
	return i - 1
}

func (t *recordTable) snapshot() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}
