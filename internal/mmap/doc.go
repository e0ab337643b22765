// SPDX-License-Identifier: Apache-2.0

// Package mmap obtains fixed, read-write anonymous memory regions.
//
// On Unix the region comes from mmap(2) with MAP_ANON|MAP_PRIVATE, so it lives
// outside the Go heap and its address never changes until Close. Other
// platforms fall back to a Go-allocated slice, which the Go runtime does not
// move either.
package mmap
