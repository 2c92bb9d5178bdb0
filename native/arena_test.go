// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package native_test

import (
	"testing"
	"unsafe"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/nvk/native"
	"github.com/devblok/nvk/nmem"
)

func TestArenaReleasesEverythingOnce(t *testing.T) {
	c := qt.New(t)
	rec := nmem.NewRecorder()
	heap := nmem.NewTrackedHeap(rec)

	a := native.NewArena(heap)
	a.Alloc(64)
	a.CString("VK_KHR_surface")
	a.CStrings([]string{"one", "two", "three"})
	native.New[uint64](a)
	native.Copy(a, []uint32{1, 2, 3, 4})

	c.Assert(rec.Outstanding() > 0, qt.IsTrue)

	a.Release()
	c.Assert(rec.Outstanding(), qt.Equals, 0)
	c.Assert(rec.Allocs(), qt.Equals, rec.Frees())
	c.Assert(rec.DoubleFrees(), qt.HasLen, 0)

	// Releasing again must not free anything twice.
	a.Release()
	c.Assert(rec.DoubleFrees(), qt.HasLen, 0)
	c.Assert(a.Released(), qt.IsTrue)
}

func TestArenaZeroSizeAllocations(t *testing.T) {
	c := qt.New(t)
	rec := nmem.NewRecorder()
	heap := nmem.NewTrackedHeap(rec)

	a := native.NewArena(heap)
	p := a.Alloc(0)
	c.Assert(p == nil, qt.IsFalse)
	c.Assert(native.Slice[uint32](a, 0), qt.IsNil)
	c.Assert(native.Copy(a, []float32{}) == nil, qt.IsTrue)
	c.Assert(a.CStrings(nil) == nil, qt.IsTrue)

	a.Release()
	c.Assert(rec.Allocs(), qt.Equals, 0)
	c.Assert(rec.Frees(), qt.Equals, 0)
}

func TestArenaSliceFill(t *testing.T) {
	c := qt.New(t)
	heap := nmem.NewHeap()
	a := native.NewArena(heap)
	defer a.Release()

	s := native.Slice[uint32](a, 5)
	c.Assert(s, qt.HasLen, 5)
	for i := range s {
		s[i] = uint32(i * i)
	}

	out := make([]uint32, 5)
	nmem.CopyOut(native.SlicePointer(s), out)
	c.Assert(out, qt.DeepEquals, []uint32{0, 1, 4, 9, 16})
}

func TestArenaPut(t *testing.T) {
	c := qt.New(t)
	heap := nmem.NewHeap()
	a := native.NewArena(heap)
	defer a.Release()

	p := native.Put(a, uint64(0xdeadbeef))
	c.Assert(*p, qt.Equals, uint64(0xdeadbeef))
	c.Assert(uintptr(unsafe.Pointer(p))%8, qt.Equals, uintptr(0))
}

func TestArenaCorrelationTags(t *testing.T) {
	c := qt.New(t)
	heap := nmem.NewHeap()

	a := native.NewArena(heap)
	b := native.NewArena(heap)
	c.Assert(a.ID() == b.ID(), qt.IsFalse)
}

func TestConcurrentArenas(t *testing.T) {
	rec := nmem.NewRecorder()
	heap := nmem.NewTrackedHeap(rec)

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				a := native.NewArena(heap)
				a.CString("concurrent")
				a.Alloc(32)
				a.Release()
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}

	if rec.Outstanding() != 0 {
		t.Fatalf("outstanding allocations: %d", rec.Outstanding())
	}
	if len(rec.DoubleFrees()) != 0 {
		t.Fatalf("double frees: %v", rec.DoubleFrees())
	}
}

func BenchmarkArenaConvertCycle(b *testing.B) {
	heap := nmem.NewHeap()
	names := []string{"VK_KHR_surface", "VK_KHR_swapchain"}
	for idx := 0; idx < b.N; idx++ {
		a := native.NewArena(heap)
		a.CStrings(names)
		native.New[[64]byte](a)
		a.Release()
	}
}
