// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package native implements the conversion discipline between rich,
// garbage-collected descriptor values and the flat, ABI-exact records a
// driver reads. Every conversion runs inside an Arena that owns all
// blocks suballocated for it, so one Release call returns exactly what
// the conversion took, on every exit path. Opaque driver handles that
// outlive their creation call are wrapped in a Handle with an idempotent
// Dispose.
package native

import "unsafe"

// Converter is implemented by every rich descriptor type. NativeConvert
// writes the descriptor into a freshly arena-allocated native record and
// returns its address. All suballocations for optional substructures,
// arrays and text fields are taken from the same arena, which makes the
// allocate and release shapes symmetric by construction: there is no
// per-type free walk to keep in sync.
//
// NativeConvert performs no native calls and has no failure mode of its
// own; failures surface from the native call the record is handed to.
type Converter interface {
	NativeConvert(a *Arena) unsafe.Pointer
}
