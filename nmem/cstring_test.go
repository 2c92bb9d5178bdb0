// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package nmem_test

import (
	"testing"
	"unsafe"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/nvk/nmem"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := qt.New(t)
	heap := nmem.NewHeap()

	for _, s := range []string{
		"",
		"a",
		"VK_LAYER_KHRONOS_validation",
		"žąsys skrenda aukštai",
		"☃ multi-byte ☃",
	} {
		p := nmem.EncodeNew(heap, s)
		c.Assert(nmem.Decode(p), qt.Equals, s)
		heap.Free(p)
	}
}

func TestEncodeSingleExtensionName(t *testing.T) {
	c := qt.New(t)
	rec := nmem.NewRecorder()
	heap := nmem.NewTrackedHeap(rec)

	p := nmem.EncodeNew(heap, "VK_KHR_surface")
	c.Assert(heap.Size(p), qt.Equals, 15) // 14 characters plus terminator
	c.Assert(*(*byte)(unsafe.Add(p, 14)), qt.Equals, byte(0))
	c.Assert(nmem.Decode(p), qt.Equals, "VK_KHR_surface")

	heap.Free(p)
	c.Assert(rec.Outstanding(), qt.Equals, 0)
}

func TestEncodeIntoTruncates(t *testing.T) {
	c := qt.New(t)
	heap := nmem.NewHeap()

	p := heap.Alloc(8)
	defer heap.Free(p)

	n := nmem.EncodeInto("much too long for this buffer", p, 8)
	c.Assert(n, qt.Equals, 8)
	c.Assert(nmem.Decode(p), qt.Equals, "much to")
}

func TestEncodeIntoNilIsNoOp(t *testing.T) {
	if n := nmem.EncodeInto("anything", nil, 64); n != 0 {
		t.Fatalf("wrote %d bytes through a nil destination", n)
	}
}

func TestEncodeSliceShape(t *testing.T) {
	c := qt.New(t)
	rec := nmem.NewRecorder()
	heap := nmem.NewTrackedHeap(rec)

	names := []string{"VK_KHR_surface", "VK_KHR_swapchain", "VK_EXT_debug_utils"}
	blk := nmem.EncodeSlice(heap, names)
	c.Assert(rec.Outstanding(), qt.Equals, 4) // pointer block plus three strings

	ptrs := unsafe.Slice((*unsafe.Pointer)(blk), len(names))
	for i, want := range names {
		c.Assert(nmem.Decode(ptrs[i]), qt.Equals, want)
	}

	heap.FreeArray(blk, len(names))
	c.Assert(rec.Outstanding(), qt.Equals, 0)
	c.Assert(rec.DoubleFrees(), qt.HasLen, 0)
}

func TestEncodeSliceEmpty(t *testing.T) {
	heap := nmem.NewHeap()
	if p := nmem.EncodeSlice(heap, nil); p != nil {
		t.Fatal("empty slice should not allocate a pointer block")
	}
}

func TestDecodeNil(t *testing.T) {
	if s := nmem.Decode(nil); s != "" {
		t.Fatalf("nil pointer decoded to %q", s)
	}
}

func TestToStringFixedField(t *testing.T) {
	c := qt.New(t)
	var name [256]byte
	copy(name[:], "VK_KHR_swapchain")
	c.Assert(nmem.ToString(name[:]), qt.Equals, "VK_KHR_swapchain")

	full := []byte{'a', 'b', 'c'}
	c.Assert(nmem.ToString(full), qt.Equals, "abc")
}

func BenchmarkEncodeNew(b *testing.B) {
	heap := nmem.NewHeap()
	for idx := 0; idx < b.N; idx++ {
		heap.Free(nmem.EncodeNew(heap, "VK_LAYER_KHRONOS_validation"))
	}
}
