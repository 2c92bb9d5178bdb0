// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package nmem

import "unsafe"

// MaxByteCount is the number of bytes EncodeNew allocates for s: the
// UTF-8 payload plus one terminator byte.
func MaxByteCount(s string) int {
	return len(s) + 1
}

// EncodeInto writes s as terminated UTF-8 into the buffer at dst, which
// holds at most max bytes. The payload is truncated if it does not fit,
// the terminator is always written. Returns the number of bytes written
// including the terminator, zero when dst is nil.
func EncodeInto(s string, dst unsafe.Pointer, max int) int {
	if dst == nil || max <= 0 {
		return 0
	}
	buf := unsafe.Slice((*byte)(dst), max)
	n := copy(buf[:max-1], s)
	buf[n] = 0
	return n + 1
}

// EncodeNew encodes s into a freshly allocated, exactly sized block and
// returns its pointer. The caller releases it with Heap.Free. The empty
// string is a valid one-byte encoding, not an absent value; callers that
// need an absent text field write a nil pointer instead of encoding.
func EncodeNew(h *Heap, s string) unsafe.Pointer {
	size := MaxByteCount(s)
	p := h.Alloc(size)
	EncodeInto(s, p, size)
	return p
}

// EncodeSlice encodes every string into its own terminated allocation and
// returns one block of pointer slots referring to them, the shape C calls
// char**. Returns nil for an empty slice. The whole shape must be released
// with Heap.FreeArray so the inner allocations are not leaked.
func EncodeSlice(h *Heap, strs []string) unsafe.Pointer {
	if len(strs) == 0 {
		return nil
	}
	blk := h.Alloc(len(strs) * PointerSize)
	ptrs := unsafe.Slice((*unsafe.Pointer)(blk), len(strs))
	for i, s := range strs {
		ptrs[i] = EncodeNew(h, s)
	}
	return blk
}

// Decode scans forward from p until a terminator byte and decodes the
// span as UTF-8. The scan is unbounded, the caller guarantees the data
// is terminated. A nil pointer decodes to the empty string.
func Decode(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// ToString interprets a fixed-size name field, as returned by property
// queries, cutting the string at the first terminator.
func ToString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
