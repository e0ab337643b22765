// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionAlloc(t *testing.T) {
	r, err := newRegion(256)
	require.NoError(t, err)
	defer r.release()

	require.Zero(t, uintptr(r.base)%uintptr(WordSize))
	require.Equal(t, r.base, r.cursor())
	require.Equal(t, r.base+256, r.end())

	a, ok := r.alloc(1, 0)
	require.True(t, ok)
	require.Equal(t, r.base, a)
	require.Equal(t, WordSize, r.offset)

	// Allocations stay word aligned.
	a, ok = r.alloc(3, 0)
	require.True(t, ok)
	require.Equal(t, r.base+Addr(WordSize), a)
	require.Zero(t, uintptr(r.cursor())%uintptr(WordSize))
}

func TestRegionLeavesRoomForTable(t *testing.T) {
	r, err := newRegion(128)
	require.NoError(t, err)
	defer r.release()

	require.Equal(t, 128-32, r.availableBytes(32))

	_, ok := r.alloc(97, 32)
	require.False(t, ok)
	require.Zero(t, r.offset)

	_, ok = r.alloc(96, 32)
	require.True(t, ok)
	require.Zero(t, r.availableBytes(32))
}

func TestRegionRejectsHugeSizes(t *testing.T) {
	r, err := newRegion(1024)
	require.NoError(t, err)
	defer r.release()

	for _, size := range []int{math.MaxInt, math.MaxInt - 3, math.MaxInt - WordSize + 2} {
		_, ok := r.alloc(size, 0)
		require.False(t, ok, "size %d", size)
		require.Zero(t, r.offset)
	}
}

func TestRegionContains(t *testing.T) {
	r, err := newRegion(64)
	require.NoError(t, err)
	defer r.release()

	require.False(t, r.contains(r.base-1))
	require.True(t, r.contains(r.base))
	require.True(t, r.contains(r.end()))
	require.False(t, r.contains(r.end()+1))
}

func TestRegionBytesAndClear(t *testing.T) {
	r, err := newRegion(64)
	require.NoError(t, err)
	defer r.release()

	a, ok := r.alloc(16, 0)
	require.True(t, ok)
	b := r.bytes(a, 10, 16)
	require.Len(t, b, 10)
	require.Equal(t, 16, cap(b))

	copy(b, "0123456789")
	require.Equal(t, byte('0'), r.buf[0])
	r.clear(a, 16)
	require.Equal(t, make([]byte, 10), b)
}
