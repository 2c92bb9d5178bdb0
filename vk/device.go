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

// CreateDevice creates a logical device on the physical device. The
// marshaled create info, including the contiguous queue info array and
// the optional feature record, is released before returning on every
// path.
func (d PhysicalDevice) CreateDevice(info DeviceCreateInfo, alloc *AllocationCallbacks) (*Device, error) {
	a := native.NewArena(heap)
	defer a.Release()

	pAlloc, owned := marshalAllocator(alloc)
	var value DeviceHandle
	if err := Error(driver.CreateDevice(d.value, info.NativeConvert(a), pAlloc, &value)); err != nil {
		if owned != nil {
			owned.Release()
		}
		return nil, fmt.Errorf("vk.CreateDevice(): %s", err)
	}

	var parent *native.Handle
	if d.instance != nil {
		parent = d.instance.Handle()
	}
	h := native.Wrap(uint64(value), parent, pAlloc, owned, func(v uint64, pa unsafe.Pointer) {
		driver.DestroyDevice(DeviceHandle(v), pa)
	})
	return &Device{handle: h}, nil
}

// Device wraps a created logical device. Resources created from it keep
// a non-owning reference to it for destroy-call routing; destroying a
// device never destroys them.
type Device struct {
	handle *native.Handle
}

// Handle returns the wrapper around the native device value.
func (dev *Device) Handle() *native.Handle {
	return dev.handle
}

// Destroy destroys the device. Safe to call more than once.
func (dev *Device) Destroy() {
	if dev == nil {
		return
	}
	dev.handle.Dispose()
}
