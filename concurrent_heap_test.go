// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcurrentHeapConcurrentAccess(t *testing.T) {
	c := newCollector(t, 1024*1024)
	heap := NewConcurrentHeap(c)

	const numGoroutines = 10
	const allocationsPerGoroutine = 100

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[Addr]bool)
	)
	wg.Add(numGoroutines)

	// The arena is large enough that no collection runs, so every goroutine
	// can get away with an empty root set.
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < allocationsPerGoroutine; j++ {
				a, err := heap.Allocate(Spans{}, 10)
				require.NoError(t, err)

				mu.Lock()
				require.False(t, seen[a])
				seen[a] = true
				mu.Unlock()

				require.True(t, heap.Len() > 0)
				require.Equal(t, 1024*1024, heap.Cap())
			}
		}()
	}

	wg.Wait()

	expectedLen := numGoroutines * allocationsPerGoroutine * 10
	require.Equal(t, expectedLen, heap.Len())
	require.Equal(t, expectedLen, heap.Peak())
	require.Zero(t, c.Stats().Collections)
}

func TestConcurrentHeapCollect(t *testing.T) {
	c := newCollector(t, 1024)
	heap := NewConcurrentHeap(c)
	st := rootedStack(1)

	a, err := heap.Allocate(st, 64)
	require.NoError(t, err)
	st.Store(0, a)
	_, err = heap.Allocate(st, 64)
	require.NoError(t, err)

	require.NoError(t, heap.Collect(st))
	require.Equal(t, 64, heap.Len())
	require.Equal(t, 128, heap.Peak())

	b, err := heap.Bytes(a)
	require.NoError(t, err)
	require.Len(t, b, 64)
}

func TestConcurrentHeapWrappingNil(t *testing.T) {
	// Wrapping a nil heap should not panic.
	heap := NewConcurrentHeap(nil)

	_, err := heap.Allocate(Spans{}, 10)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, heap.Collect(Spans{}), ErrClosed)
	_, err = heap.Bytes(0)
	require.ErrorIs(t, err, ErrClosed)

	require.Equal(t, 0, heap.Len())
	require.Equal(t, 0, heap.Cap())
	require.Equal(t, 0, heap.Peak())
}
