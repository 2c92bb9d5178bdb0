// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"sync/atomic"
	"unsafe"

	"github.com/devblok/nvk/nmem"
	"github.com/devblok/nvk/vk"
)

func extensionRecord(name string, version uint32) vk.ExtensionProperties {
	var p vk.ExtensionProperties
	copy(p.ExtensionName[:], name)
	p.SpecVersion = version
	return p
}

func layerRecord(name, description string) vk.LayerProperties {
	var p vk.LayerProperties
	copy(p.LayerName[:], name)
	copy(p.Description[:], description)
	return p
}

// nullDriver is an in-process dispatch table that accepts everything
// and hands out fresh handles. It serves one fabricated physical device
// so the whole creation path can be soaked without a real loader.
func nullDriver() vk.Procs {
	var next uint64

	handle := func() uint64 {
		return atomic.AddUint64(&next, 1)
	}

	physicalDevices := []vk.PhysicalDeviceHandle{vk.PhysicalDeviceHandle(handle())}
	extensions := []vk.ExtensionProperties{
		extensionRecord(vk.KHRSwapchainExtensionName, 70),
		extensionRecord(vk.KHRTimelineSemaphoreExtensionName, 2),
	}
	layers := []vk.LayerProperties{
		layerRecord(vk.KhronosValidationLayerName, "Khronos validation layer"),
	}

	return vk.Procs{
		CreateInstance: func(createInfo, allocator unsafe.Pointer, instance *vk.InstanceHandle) vk.Result {
			*instance = vk.InstanceHandle(handle())
			return vk.Success
		},
		DestroyInstance: func(instance vk.InstanceHandle, allocator unsafe.Pointer) {},
		EnumeratePhysicalDevices: func(instance vk.InstanceHandle, count *uint32, devices unsafe.Pointer) vk.Result {
			if devices == nil {
				*count = uint32(len(physicalDevices))
				return vk.Success
			}
			nmem.CopyIn(devices, physicalDevices[:*count])
			return vk.Success
		},
		EnumerateDeviceExtensionProperties: func(device vk.PhysicalDeviceHandle, layerName unsafe.Pointer, count *uint32, properties unsafe.Pointer) vk.Result {
			if properties == nil {
				*count = uint32(len(extensions))
				return vk.Success
			}
			nmem.CopyIn(properties, extensions[:*count])
			return vk.Success
		},
		EnumerateDeviceLayerProperties: func(device vk.PhysicalDeviceHandle, count *uint32, properties unsafe.Pointer) vk.Result {
			if properties == nil {
				*count = uint32(len(layers))
				return vk.Success
			}
			nmem.CopyIn(properties, layers[:*count])
			return vk.Success
		},
		GetPhysicalDeviceFeatures: func(device vk.PhysicalDeviceHandle, features unsafe.Pointer) {
			*(*vk.PhysicalDeviceFeatures)(features) = vk.PhysicalDeviceFeatures{
				GeometryShader:    1,
				SamplerAnisotropy: 1,
			}
		},
		CreateDevice: func(physicalDevice vk.PhysicalDeviceHandle, createInfo, allocator unsafe.Pointer, device *vk.DeviceHandle) vk.Result {
			*device = vk.DeviceHandle(handle())
			return vk.Success
		},
		DestroyDevice: func(device vk.DeviceHandle, allocator unsafe.Pointer) {},
		CreateBuffer: func(device vk.DeviceHandle, createInfo, allocator unsafe.Pointer, buffer *vk.BufferHandle) vk.Result {
			*buffer = vk.BufferHandle(handle())
			return vk.Success
		},
		DestroyBuffer: func(device vk.DeviceHandle, buffer vk.BufferHandle, allocator unsafe.Pointer) {},
		CreateShaderModule: func(device vk.DeviceHandle, createInfo, allocator unsafe.Pointer, shaderModule *vk.ShaderModuleHandle) vk.Result {
			*shaderModule = vk.ShaderModuleHandle(handle())
			return vk.Success
		},
		DestroyShaderModule: func(device vk.DeviceHandle, shaderModule vk.ShaderModuleHandle, allocator unsafe.Pointer) {},
		AllocateMemory: func(device vk.DeviceHandle, allocateInfo, allocator unsafe.Pointer, memory *vk.DeviceMemoryHandle) vk.Result {
			*memory = vk.DeviceMemoryHandle(handle())
			return vk.Success
		},
		FreeMemory: func(device vk.DeviceHandle, memory vk.DeviceMemoryHandle, allocator unsafe.Pointer) {},
	}
}
