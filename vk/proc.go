// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import (
	"errors"
	"unsafe"

	"github.com/devblok/nvk/nmem"
)

// package errors
var (
	ErrDriverIncomplete = errors.New("driver dispatch table is missing entry points")
)

// Opaque driver handles. Dispatchable handles are pointer sized,
// non-dispatchable ones are 64-bit on every platform.
type (
	InstanceHandle       uintptr
	PhysicalDeviceHandle uintptr
	DeviceHandle         uintptr
	BufferHandle         uint64
	ShaderModuleHandle   uint64
	DeviceMemoryHandle   uint64
)

// Procs is the driver dispatch table. Each field binds one native entry
// point of the same name and exact parameter layout; create-info and
// allocator parameters arrive as pointers to fully marshaled native
// records. The binding's only obligation at this boundary is that those
// records are ABI-exact and that a resource's destroy call receives the
// same allocator pointer as its create call.
//
// How the table is populated is a loader concern outside this module; a
// test driver registers plain Go closures here.
type Procs struct {
	CreateInstance           func(createInfo, allocator unsafe.Pointer, instance *InstanceHandle) Result
	DestroyInstance          func(instance InstanceHandle, allocator unsafe.Pointer)
	EnumeratePhysicalDevices func(instance InstanceHandle, count *uint32, devices unsafe.Pointer) Result

	EnumerateDeviceExtensionProperties func(device PhysicalDeviceHandle, layerName unsafe.Pointer, count *uint32, properties unsafe.Pointer) Result
	EnumerateDeviceLayerProperties     func(device PhysicalDeviceHandle, count *uint32, properties unsafe.Pointer) Result
	GetPhysicalDeviceFeatures          func(device PhysicalDeviceHandle, features unsafe.Pointer)

	CreateDevice  func(physicalDevice PhysicalDeviceHandle, createInfo, allocator unsafe.Pointer, device *DeviceHandle) Result
	DestroyDevice func(device DeviceHandle, allocator unsafe.Pointer)

	CreateBuffer  func(device DeviceHandle, createInfo, allocator unsafe.Pointer, buffer *BufferHandle) Result
	DestroyBuffer func(device DeviceHandle, buffer BufferHandle, allocator unsafe.Pointer)

	CreateShaderModule  func(device DeviceHandle, createInfo, allocator unsafe.Pointer, shaderModule *ShaderModuleHandle) Result
	DestroyShaderModule func(device DeviceHandle, shaderModule ShaderModuleHandle, allocator unsafe.Pointer)

	AllocateMemory func(device DeviceHandle, allocateInfo, allocator unsafe.Pointer, memory *DeviceMemoryHandle) Result
	FreeMemory     func(device DeviceHandle, memory DeviceMemoryHandle, allocator unsafe.Pointer)
}

var driver Procs

// RegisterDriver installs the dispatch table all calls go through. The
// table must be complete; a partial driver is rejected so missing entry
// points surface at setup instead of as nil calls mid-frame.
func RegisterDriver(p Procs) error {
	if p.CreateInstance == nil || p.DestroyInstance == nil ||
		p.EnumeratePhysicalDevices == nil ||
		p.EnumerateDeviceExtensionProperties == nil ||
		p.EnumerateDeviceLayerProperties == nil ||
		p.GetPhysicalDeviceFeatures == nil ||
		p.CreateDevice == nil || p.DestroyDevice == nil ||
		p.CreateBuffer == nil || p.DestroyBuffer == nil ||
		p.CreateShaderModule == nil || p.DestroyShaderModule == nil ||
		p.AllocateMemory == nil || p.FreeMemory == nil {
		return ErrDriverIncomplete
	}
	driver = p
	return nil
}

// heap backs every marshaling arena of this package.
var heap = nmem.Default

// SetHeap redirects marshaling to the given heap. Tests install a
// tracked heap here to observe the allocation discipline.
func SetHeap(h *nmem.Heap) {
	heap = h
}
