// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

//go:build nmemtrace

package nmem

import (
	"fmt"
	"os"
)

// Built with the nmemtrace tag, the default heap streams every
// allocation and free to stderr for an external leak detector to pair
// up. Regular builds compile none of this; the default heap then has no
// tracker and the event hooks cost nothing.
func init() {
	Default.state.tracker = traceTracker{}
}

type traceTracker struct{}

func (traceTracker) Allocated(tag uint64, addr uintptr, size int) {
	fmt.Fprintf(os.Stderr, "nmem: allocated tag=%d addr=%#x size=%d\n", tag, addr, size)
}

func (traceTracker) Freed(tag uint64, addr uintptr) {
	fmt.Fprintf(os.Stderr, "nmem: freed tag=%d addr=%#x\n", tag, addr)
}
