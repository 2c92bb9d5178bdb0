// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/devblok/nvk/native"
)

// AllocateMemory allocates device memory for buffers and images.
func (dev *Device) AllocateMemory(info MemoryAllocateInfo, alloc *AllocationCallbacks) (*DeviceMemory, error) {
	a := native.NewArena(heap)
	defer a.Release()

	device := DeviceHandle(dev.handle.Value())
	pAlloc, owned := marshalAllocator(alloc)
	var value DeviceMemoryHandle
	if err := Error(driver.AllocateMemory(device, info.NativeConvert(a), pAlloc, &value)); err != nil {
		if owned != nil {
			owned.Release()
		}
		return nil, fmt.Errorf("vk.AllocateMemory(): %s", err)
	}

	h := native.Wrap(uint64(value), dev.handle, pAlloc, owned, func(v uint64, pa unsafe.Pointer) {
		driver.FreeMemory(device, DeviceMemoryHandle(v), pa)
	})
	return &DeviceMemory{handle: h}, nil
}

// DeviceMemory wraps one device memory allocation.
type DeviceMemory struct {
	handle *native.Handle
}

// Handle returns the wrapper around the native memory value.
func (m *DeviceMemory) Handle() *native.Handle {
	return m.handle
}

// Release frees the device memory. Safe to call more than once.
func (m *DeviceMemory) Release() {
	if m == nil {
		return
	}
	m.handle.Dispose()
}
