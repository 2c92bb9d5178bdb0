// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package nmem implements the unmanaged memory primitives the native
// conversion layer is built on. It hands out stable, C-layout-addressable
// blocks that can be linked into driver-facing structures by raw pointer,
// keeps every live block reachable so an address never dangles while the
// native side might still read it, and releases blocks exactly once.
//
// Allocations of size zero map to a shared sentinel pointer, never to a
// real block. Freeing nil or the sentinel is a no-op, so callers can
// release optional fields unconditionally.
package nmem

import (
	"sync"
	"unsafe"
)

// PointerSize is the size of one raw pointer slot in array-of-pointer
// shaped blocks.
const PointerSize = int(unsafe.Sizeof(unsafe.Pointer(nil)))

// zeroBlock backs the sentinel pointer handed out for empty allocations.
// It is word sized so the sentinel satisfies any reasonable alignment.
var zeroBlock uint64

func zero() unsafe.Pointer {
	return unsafe.Pointer(&zeroBlock)
}

// NewHeap creates an empty heap with no tracker attached.
func NewHeap() *Heap {
	return &Heap{state: &heapState{blocks: make(map[uintptr]block)}}
}

// NewTrackedHeap creates a heap that reports every allocation and free
// to the given tracker. Tests attach a fresh Recorder here to observe
// leak and double-free behaviour without cross-test interference.
func NewTrackedHeap(t Tracker) *Heap {
	h := NewHeap()
	h.state.tracker = t
	return h
}

// Default is the process-wide heap used when no explicit heap is wired in.
var Default = NewHeap()

// Heap allocates and releases blocks of unmanaged-style memory. Blocks
// are aligned to 8 bytes and stay pinned in the heap's registry until
// freed, which is what makes their addresses safe to store inside other
// blocks. A Heap is safe for concurrent use by unrelated callers.
//
// A Heap value is a view: WithTag derives views that share the same
// storage but stamp tracker events with a correlation tag, so events
// from interleaved conversions can be told apart without a global lock.
type Heap struct {
	state *heapState
	tag   uint64
}

type heapState struct {
	mu      sync.Mutex
	blocks  map[uintptr]block
	tracker Tracker
}

type block struct {
	words []uint64
	size  int
}

// WithTag returns a view of the same heap whose tracker events carry tag.
func (h *Heap) WithTag(tag uint64) *Heap {
	return &Heap{state: h.state, tag: tag}
}

// Alloc returns a zeroed block of at least size bytes. A size of zero
// (or less) maps to the sentinel pointer and allocates nothing.
func (h *Heap) Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		return zero()
	}
	words := make([]uint64, (size+7)/8)
	ptr := unsafe.Pointer(unsafe.SliceData(words))
	s := h.state
	s.mu.Lock()
	s.blocks[uintptr(ptr)] = block{words: words, size: size}
	s.mu.Unlock()
	if s.tracker != nil {
		s.tracker.Allocated(h.tag, uintptr(ptr), size)
	}
	return ptr
}

// Free releases the block at p exactly once. Freeing nil or the zero-size
// sentinel is a no-op. Freeing the same block twice is a caller bug; the
// registry ignores the second call, but it is still reported to the
// tracker so a leak detector can flag it.
func (h *Heap) Free(p unsafe.Pointer) {
	if p == nil || p == zero() {
		return
	}
	addr := uintptr(p)
	s := h.state
	s.mu.Lock()
	delete(s.blocks, addr)
	s.mu.Unlock()
	if s.tracker != nil {
		s.tracker.Freed(h.tag, addr)
	}
}

// FreeArray releases an array-of-pointers shaped block: each of the count
// pointees first, then the array block itself. Used for shapes produced
// by EncodeSlice.
func (h *Heap) FreeArray(p unsafe.Pointer, count int) {
	if p == nil || p == zero() {
		return
	}
	for _, e := range unsafe.Slice((*unsafe.Pointer)(p), count) {
		h.Free(e)
	}
	h.Free(p)
}

// Realloc resizes the block at p, preserving content up to the smaller of
// the old and new sizes. It shrinks and grows in place while the backing
// block has room, otherwise relocates and frees the old block. Passing
// nil or the sentinel behaves like Alloc, a new size of zero like Free.
func (h *Heap) Realloc(p unsafe.Pointer, size int) unsafe.Pointer {
	if p == nil || p == zero() {
		return h.Alloc(size)
	}
	if size <= 0 {
		h.Free(p)
		return zero()
	}
	addr := uintptr(p)
	s := h.state
	s.mu.Lock()
	b, ok := s.blocks[addr]
	if ok && size <= len(b.words)*8 {
		b.size = size
		s.blocks[addr] = b
		s.mu.Unlock()
		return p
	}
	s.mu.Unlock()
	if !ok {
		return h.Alloc(size)
	}
	np := h.Alloc(size)
	n := b.size
	if size < n {
		n = size
	}
	copy(unsafe.Slice((*byte)(np), n), unsafe.Slice((*byte)(p), n))
	h.Free(p)
	return np
}

// Size reports the live size of the block at p, or zero when p is not a
// live allocation of this heap.
func (h *Heap) Size(p unsafe.Pointer) int {
	if p == nil || p == zero() {
		return 0
	}
	s := h.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks[uintptr(p)].size
}
