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

// CreateBuffer creates a buffer resource on the device.
func (dev *Device) CreateBuffer(info BufferCreateInfo, alloc *AllocationCallbacks) (*Buffer, error) {
	a := native.NewArena(heap)
	defer a.Release()

	device := DeviceHandle(dev.handle.Value())
	pAlloc, owned := marshalAllocator(alloc)
	var value BufferHandle
	if err := Error(driver.CreateBuffer(device, info.NativeConvert(a), pAlloc, &value)); err != nil {
		if owned != nil {
			owned.Release()
		}
		return nil, fmt.Errorf("vk.CreateBuffer(): %s", err)
	}

	h := native.Wrap(uint64(value), dev.handle, pAlloc, owned, func(v uint64, pa unsafe.Pointer) {
		driver.DestroyBuffer(device, BufferHandle(v), pa)
	})
	return &Buffer{handle: h}, nil
}

// Buffer wraps a created buffer resource.
type Buffer struct {
	handle *native.Handle
}

// Handle returns the wrapper around the native buffer value.
func (b *Buffer) Handle() *native.Handle {
	return b.handle
}

// Release destroys the buffer. Safe to call more than once.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	b.handle.Dispose()
}
