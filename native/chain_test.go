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

// featureRecord stands in for a chainable extension record: chain header
// first, payload after.
type featureRecord struct {
	sType   uint32
	next    unsafe.Pointer
	enabled uint32
}

type featureDescriptor struct {
	sType   uint32
	enabled bool
}

func (d featureDescriptor) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[featureRecord](a)
	if d.enabled {
		out.enabled = 1
	}
	out.sType = d.sType
	return unsafe.Pointer(out)
}

func TestChainOrderAndTermination(t *testing.T) {
	c := qt.New(t)
	rec := nmem.NewRecorder()
	heap := nmem.NewTrackedHeap(rec)
	a := native.NewArena(heap)

	head := native.Chain(a, []native.Converter{
		featureDescriptor{sType: 1001, enabled: true},
		featureDescriptor{sType: 1002},
	})
	c.Assert(head == nil, qt.IsFalse)

	first := (*featureRecord)(head)
	c.Assert(first.sType, qt.Equals, uint32(1001))
	c.Assert(first.enabled, qt.Equals, uint32(1))
	c.Assert(first.next == nil, qt.IsFalse)

	second := (*featureRecord)(first.next)
	c.Assert(second.sType, qt.Equals, uint32(1002))
	c.Assert(second.enabled, qt.Equals, uint32(0))
	c.Assert(second.next == nil, qt.IsTrue)

	// Both chained records plus nothing else, all gone after release.
	c.Assert(rec.Outstanding(), qt.Equals, 2)
	a.Release()
	c.Assert(rec.Outstanding(), qt.Equals, 0)
	c.Assert(rec.DoubleFrees(), qt.HasLen, 0)
}

func TestChainEmpty(t *testing.T) {
	heap := nmem.NewHeap()
	a := native.NewArena(heap)
	defer a.Release()

	if head := native.Chain(a, nil); head != nil {
		t.Fatal("empty extension list must terminate immediately")
	}
}

func TestChainHeaderLayout(t *testing.T) {
	c := qt.New(t)
	// The chain builder pokes records through ChainHeader; the header
	// fields must land on the record's first two fields.
	c.Assert(unsafe.Offsetof(featureRecord{}.next), qt.Equals, unsafe.Offsetof(native.ChainHeader{}.Next))
	c.Assert(unsafe.Sizeof(native.ChainHeader{}), qt.Equals, unsafe.Offsetof(featureRecord{}.enabled))
}
