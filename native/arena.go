// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package native

import (
	"sync/atomic"
	"unsafe"

	"github.com/devblok/nvk/nmem"
)

var arenaSeq uint64

// NewArena creates an arena drawing from the given heap. Each arena gets
// a unique correlation tag, so the heap tracker can tell interleaved
// conversions apart without any shared locking on the hot path.
func NewArena(h *nmem.Heap) *Arena {
	id := atomic.AddUint64(&arenaSeq, 1)
	return &Arena{heap: h.WithTag(id), id: id}
}

// Arena owns the suballocation set of one conversion: every block
// allocated while converting one rich descriptor, including nested
// substructures, array elements, encoded text and chained extension
// records. It is owned exclusively by the call that created it and is
// not safe for concurrent use; independent conversions use independent
// arenas.
type Arena struct {
	heap     *nmem.Heap
	id       uint64
	entries  []entry
	released bool
}

// entry records one owned block. A count of minus one marks a plain
// block, anything else an array-of-pointers shape with that many
// pointees.
type entry struct {
	ptr   unsafe.Pointer
	count int
}

// ID returns the arena's correlation tag.
func (a *Arena) ID() uint64 {
	return a.id
}

// Alloc returns a zeroed owned block of the given size. Zero-size
// requests map to the heap's sentinel and are not tracked.
func (a *Arena) Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		return a.heap.Alloc(0)
	}
	p := a.heap.Alloc(size)
	a.entries = append(a.entries, entry{ptr: p, count: -1})
	return p
}

// CString encodes s into an owned terminated allocation.
func (a *Arena) CString(s string) unsafe.Pointer {
	p := nmem.EncodeNew(a.heap, s)
	a.entries = append(a.entries, entry{ptr: p, count: -1})
	return p
}

// CStrings encodes strs into an owned pointer-array shape, nil when strs
// is empty. The inner allocations are released together with the array
// block on Release.
func (a *Arena) CStrings(strs []string) unsafe.Pointer {
	p := nmem.EncodeSlice(a.heap, strs)
	if p == nil {
		return nil
	}
	a.entries = append(a.entries, entry{ptr: p, count: len(strs)})
	return p
}

// Release frees every owned block exactly once, in reverse allocation
// order. Calling Release again is a no-op, so it can sit in a defer on
// every exit path of a conversion, including native-call failures.
func (a *Arena) Release() {
	if a.released {
		return
	}
	a.released = true
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.count >= 0 {
			a.heap.FreeArray(e.ptr, e.count)
		} else {
			a.heap.Free(e.ptr)
		}
	}
	a.entries = nil
}

// Released reports whether the arena has been released.
func (a *Arena) Released() bool {
	return a.released
}

// New allocates one zeroed record of type T in the arena.
func New[T any](a *Arena) *T {
	var t T
	return (*T)(a.Alloc(int(unsafe.Sizeof(t))))
}

// Put allocates a record in the arena and copies v into it.
func Put[T any](a *Arena, v T) *T {
	p := New[T](a)
	*p = v
	return p
}

// Slice allocates one contiguous block for n records of type T and
// returns it as a slice for element-wise filling. Empty slices allocate
// nothing and return nil, matching the (pointer, count) convention.
func Slice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var t T
	p := a.Alloc(n * int(unsafe.Sizeof(t)))
	return unsafe.Slice((*T)(p), n)
}

// Copy allocates an owned block holding a flat copy of src, nil when src
// is empty.
func Copy[T any](a *Arena, src []T) unsafe.Pointer {
	if len(src) == 0 {
		return nil
	}
	p := a.Alloc(len(src) * int(unsafe.Sizeof(src[0])))
	nmem.CopyIn(p, src)
	return p
}

// SlicePointer returns the address of the first element of a slice
// produced by Slice, nil for an empty one.
func SlicePointer[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
