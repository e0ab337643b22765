// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"encoding/binary"
	"unsafe"
)

// Addr is a raw byte address. Addresses handed out by a Collector are real
// addresses inside its arena, so storing one in a block or a root span is the
// same as storing a pointer to it.
type Addr uintptr

// WordSize is the size of a pointer-sized word on this platform.
const WordSize = int(unsafe.Sizeof(uintptr(0)))

// RecordSize is the arena space charged for every record slot: one word each
// for the block address, its size and its status.
const RecordSize = 3 * WordSize

// Everything below is the only place that turns memory into addresses or
// addresses into words. The rest of the package works on bounds-checked
// slices and Addr offsets.

// addrOf returns the address of b[0]. b must not be empty.
func addrOf(b []byte) Addr {
	return Addr(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
}

// loadWord reads a native-endian word from the start of b.
func loadWord(b []byte) Addr {
	if WordSize == 8 {
		return Addr(binary.NativeEndian.Uint64(b))
	}
	return Addr(binary.NativeEndian.Uint32(b))
}

// storeWord writes v as a native-endian word at the start of b.
func storeWord(b []byte, v Addr) {
	if WordSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(v))
		return
	}
	binary.NativeEndian.PutUint32(b, uint32(v))
}

func alignUp(n int) int {
	mask := WordSize - 1
	return (n + mask) &^ mask
}

// viewAs reinterprets b as n values of T. b must hold at least n*sizeof(T)
// bytes and start at an address aligned for T. T must not contain Go
// pointers: the Go runtime never scans arena memory.
func viewAs[T any](b []byte, n int) []T {
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

func sizeOf[T any]() int {
	var x T
	return int(unsafe.Sizeof(x))
}
