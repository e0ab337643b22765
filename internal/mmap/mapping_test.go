// SPDX-License-Identifier: Apache-2.0

package mmap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()

	b := m.Bytes()
	require.Len(t, b, 4096)
	require.Equal(t, 4096, m.Size())

	// Fresh anonymous memory is zeroed and writable.
	for _, v := range b {
		require.Zero(t, v)
	}
	b[0], b[4095] = 1, 2
	require.Equal(t, byte(1), m.Bytes()[0])
	require.Equal(t, byte(2), m.Bytes()[4095])

	// Pointer-aligned base.
	require.Zero(t, uintptr(unsafe.Pointer(&b[0]))%unsafe.Sizeof(uintptr(0)))
}

func TestMapAnonOddSize(t *testing.T) {
	m, err := MapAnon(100)
	require.NoError(t, err)
	defer m.Close()
	require.Len(t, m.Bytes(), 100)
	require.Equal(t, 100, cap(m.Bytes()))
}

func TestMapAnonInvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	require.ErrorIs(t, err, ErrInvalidSize)
	_, err = MapAnon(-1)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestMappingCloseIdempotent(t *testing.T) {
	m, err := MapAnon(64)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	require.Nil(t, m.Bytes())
}
