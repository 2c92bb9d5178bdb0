// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package nmem

import "sync"

// Tracker observes heap traffic. Implementations must be safe for
// concurrent calls; the tag distinguishes events of interleaved
// conversions. The tracker sees what callers did, not what the registry
// accepted, so a second free of the same address is visible to it.
type Tracker interface {
	Allocated(tag uint64, addr uintptr, size int)
	Freed(tag uint64, addr uintptr)
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{live: make(map[uintptr]int)}
}

// Recorder is a Tracker that pairs allocations with frees. It is the
// leak detector the tests hook onto a fresh heap: after a conversion and
// its release, Outstanding must be zero and DoubleFrees empty.
type Recorder struct {
	mu     sync.Mutex
	live   map[uintptr]int
	allocs int
	frees  int
	double []uintptr
}

// Allocated implements Tracker.
func (r *Recorder) Allocated(tag uint64, addr uintptr, size int) {
	r.mu.Lock()
	r.allocs++
	r.live[addr] = size
	r.mu.Unlock()
}

// Freed implements Tracker.
func (r *Recorder) Freed(tag uint64, addr uintptr) {
	r.mu.Lock()
	if _, ok := r.live[addr]; !ok {
		r.double = append(r.double, addr)
	}
	delete(r.live, addr)
	r.frees++
	r.mu.Unlock()
}

// Outstanding returns the number of allocations not yet freed.
func (r *Recorder) Outstanding() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Allocs returns the total number of allocation events seen.
func (r *Recorder) Allocs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allocs
}

// Frees returns the total number of free events seen.
func (r *Recorder) Frees() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frees
}

// DoubleFrees returns the addresses that were freed without a live
// allocation, in the order the bad frees happened.
func (r *Recorder) DoubleFrees() []uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uintptr, len(r.double))
	copy(out, r.double)
	return out
}
