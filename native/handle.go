// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package native

import (
	"sync/atomic"
	"unsafe"
)

// DestroyFunc calls the native destroy entry point for a wrapped handle.
// It receives the opaque value and the same allocator-callbacks pointer
// that was supplied at creation; the driver interface requires that
// symmetry.
type DestroyFunc func(value uint64, allocator unsafe.Pointer)

// Wrap takes ownership of an opaque native value returned by a creation
// call. parent is a non-owning reference used only to document lifetime
// and route the destroy call; it is never destroyed through its child.
// allocator is the marshaled allocator-callbacks pointer used at
// creation (nil for the driver default) and owned, when non-nil, is the
// arena keeping that marshaled block alive until after destruction.
func Wrap(value uint64, parent *Handle, allocator unsafe.Pointer, owned *Arena, destroy DestroyFunc) *Handle {
	return &Handle{
		value:     value,
		parent:    parent,
		allocator: allocator,
		owned:     owned,
		destroy:   destroy,
	}
}

// Handle wraps a driver-side resource identifier together with its
// disposal metadata. Its lifecycle is Created, then Disposed, terminal.
type Handle struct {
	value     uint64
	parent    *Handle
	allocator unsafe.Pointer
	owned     *Arena
	destroy   DestroyFunc
	disposed  uint32
}

// Value returns the opaque native value. Reading it after Dispose is a
// caller bug.
func (h *Handle) Value() uint64 {
	return h.value
}

// Parent returns the logical parent resource, nil for root objects.
func (h *Handle) Parent() *Handle {
	return h.parent
}

// Allocator returns the allocator-callbacks pointer the resource was
// created with, nil for the driver default.
func (h *Handle) Allocator() unsafe.Pointer {
	return h.allocator
}

// Disposed reports whether Dispose has run.
func (h *Handle) Disposed() bool {
	return h == nil || atomic.LoadUint32(&h.disposed) != 0
}

// Dispose calls the native destroy function exactly once, with the same
// allocator reference used at creation, then releases the marshaled
// allocator block. Further calls, including concurrent ones, are silent
// no-ops; callers with overlapping ownership expectations may all call
// Dispose defensively.
func (h *Handle) Dispose() {
	if h == nil {
		return
	}
	if !atomic.CompareAndSwapUint32(&h.disposed, 0, 1) {
		return
	}
	if h.destroy != nil {
		h.destroy(h.value, h.allocator)
	}
	if h.owned != nil {
		h.owned.Release()
	}
}
