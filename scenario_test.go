// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A long-lived anchor block plus a cursor that always points at the newest
// block. Every older block becomes garbage as soon as the cursor moves on.
func TestAnchorAndCursorScenario(t *testing.T) {
	const (
		capacity  = 20480
		blockSize = 4096
		sentinel  = 42
	)

	for _, stride := range []Stride{StrideWord, StrideByte} {
		c := newCollector(t, capacity, WithScanStride(stride))

		st := NewStack(2)
		const anchorSlot, cursorSlot = 0, 1
		st.SetRootBegin(st.Slot(anchorSlot))

		// The root end is registered again before every allocation, the way
		// a native caller would mark its current stack depth.
		alloc := func() Addr {
			st.SetRootEnd(st.Top())
			a, err := c.Allocate(st, blockSize)
			require.NoError(t, err)
			return a
		}
		firstByte := func(a Addr) byte {
			b, err := c.Bytes(a)
			require.NoError(t, err)
			return b[0]
		}

		anchor := alloc()
		st.Store(anchorSlot, anchor)
		b, err := c.Bytes(anchor)
		require.NoError(t, err)
		b[0] = sentinel

		seen := make(map[Addr]bool)
		reused := false
		var prev Addr
		for i := 1; i < 100; i++ {
			a := alloc()
			require.NotEqual(t, anchor, a)
			if prev != 0 {
				require.NotEqual(t, prev, a)
				require.Equal(t, byte(i-1), firstByte(prev))
			}
			if seen[a] {
				reused = true
			}
			seen[a] = true

			b, err := c.Bytes(a)
			require.NoError(t, err)
			b[0] = byte(i)
			st.Store(cursorSlot, a)
			prev = a

			require.Equal(t, byte(sentinel), firstByte(anchor))
		}

		require.True(t, reused)
		require.Equal(t, byte(sentinel), firstByte(anchor))
		require.Equal(t, byte(99), firstByte(prev))

		s := c.Stats()
		require.NotZero(t, s.Collections)
		require.LessOrEqual(t, s.RecordCount, capacity/(blockSize+RecordSize))
	}
}
