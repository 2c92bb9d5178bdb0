// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package nmem

import "unsafe"

// The copy primitives move fixed-layout value sequences between native
// blocks and managed slices in a single byte-stride copy. T must not
// contain pointers to further allocations; composite values go through
// the conversion protocol instead.

// CopyOut bulk-copies len(dst) elements from the native block at src into
// dst. Used to read variable-length query results after a two-call
// size/fill sequence.
func CopyOut[T any](src unsafe.Pointer, dst []T) {
	if src == nil || len(dst) == 0 {
		return
	}
	copy(dst, unsafe.Slice((*T)(src), len(dst)))
}

// CopyIn bulk-copies src into the native buffer at dst, which the caller
// already sized to hold len(src) elements.
func CopyIn[T any](dst unsafe.Pointer, src []T) {
	if dst == nil || len(src) == 0 {
		return
	}
	copy(unsafe.Slice((*T)(dst), len(src)), src)
}

// AllocCopy allocates a block for len(src) elements and copies src into
// it. Empty slices map to nil, matching the (pointer, count) convention
// for empty native arrays. The caller releases the block with Heap.Free.
func AllocCopy[T any](h *Heap, src []T) unsafe.Pointer {
	if len(src) == 0 {
		return nil
	}
	p := h.Alloc(len(src) * int(unsafe.Sizeof(src[0])))
	CopyIn(p, src)
	return p
}
