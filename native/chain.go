// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package native

import "unsafe"

// ChainHeader is the layout every chainable native record starts with: a
// structural type tag followed by the forward pointer to the next record
// in the extension chain. Records linked by Chain must begin with
// exactly these two fields.
type ChainHeader struct {
	SType uint32
	Next  unsafe.Pointer
}

// Chain converts each extension descriptor and links the resulting
// records into a forward chain, returning its head (nil for an empty
// list). Declaration order is preserved; the driver reads later chained
// records as later declarations and some features are order sensitive.
// The records are owned by the arena like any other suballocation.
//
// Chains are flat: a record must not appear twice in one chain, and the
// builder does not detect cycles. Only single-level forward chains are
// supported.
func Chain(a *Arena, exts []Converter) unsafe.Pointer {
	var head, tail unsafe.Pointer
	for _, ext := range exts {
		p := ext.NativeConvert(a)
		(*ChainHeader)(p).Next = nil
		if head == nil {
			head = p
		} else {
			(*ChainHeader)(tail).Next = p
		}
		tail = p
	}
	return head
}
