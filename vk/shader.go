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

// CreateShaderModule creates a shader module from compiled code words.
func (dev *Device) CreateShaderModule(info ShaderModuleCreateInfo, alloc *AllocationCallbacks) (*ShaderModule, error) {
	a := native.NewArena(heap)
	defer a.Release()

	device := DeviceHandle(dev.handle.Value())
	pAlloc, owned := marshalAllocator(alloc)
	var value ShaderModuleHandle
	if err := Error(driver.CreateShaderModule(device, info.NativeConvert(a), pAlloc, &value)); err != nil {
		if owned != nil {
			owned.Release()
		}
		return nil, fmt.Errorf("vk.CreateShaderModule(): %s", err)
	}

	h := native.Wrap(uint64(value), dev.handle, pAlloc, owned, func(v uint64, pa unsafe.Pointer) {
		driver.DestroyShaderModule(device, ShaderModuleHandle(v), pa)
	})
	return &ShaderModule{handle: h}, nil
}

// ShaderModule wraps a created shader module.
type ShaderModule struct {
	handle *native.Handle
}

// Handle returns the wrapper around the native shader module value.
func (m *ShaderModule) Handle() *native.Handle {
	return m.handle
}

// Release destroys the shader module. Safe to call more than once.
func (m *ShaderModule) Release() {
	if m == nil {
		return
	}
	m.handle.Dispose()
}
