// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import "unsafe"

// The raw record types mirror the driver ABI field for field, in order.
// Scalars are copied in, optional substructures become raw pointers and
// variable-length arrays become (pointer, count) pairs. Every chainable
// record opens with the structural tag and the forward chain pointer, in
// the layout native.ChainHeader describes.

type rawApplicationInfo struct {
	sType              StructureType
	next               unsafe.Pointer
	applicationName    unsafe.Pointer
	applicationVersion uint32
	engineName         unsafe.Pointer
	engineVersion      uint32
	apiVersion         uint32
}

type rawInstanceCreateInfo struct {
	sType                 StructureType
	next                  unsafe.Pointer
	flags                 InstanceCreateFlags
	applicationInfo       *rawApplicationInfo
	enabledLayerCount     uint32
	enabledLayerNames     unsafe.Pointer
	enabledExtensionCount uint32
	enabledExtensionNames unsafe.Pointer
}

type rawDeviceQueueCreateInfo struct {
	sType            StructureType
	next             unsafe.Pointer
	flags            DeviceQueueCreateFlags
	queueFamilyIndex uint32
	queueCount       uint32
	queuePriorities  unsafe.Pointer
}

type rawDeviceCreateInfo struct {
	sType                 StructureType
	next                  unsafe.Pointer
	flags                 DeviceCreateFlags
	queueCreateInfoCount  uint32
	queueCreateInfos      unsafe.Pointer
	enabledLayerCount     uint32
	enabledLayerNames     unsafe.Pointer
	enabledExtensionCount uint32
	enabledExtensionNames unsafe.Pointer
	enabledFeatures       *PhysicalDeviceFeatures
}

type rawBufferCreateInfo struct {
	sType                 StructureType
	next                  unsafe.Pointer
	flags                 BufferCreateFlags
	size                  DeviceSize
	usage                 BufferUsageFlags
	sharingMode           SharingMode
	queueFamilyIndexCount uint32
	queueFamilyIndices    unsafe.Pointer
}

type rawShaderModuleCreateInfo struct {
	sType    StructureType
	next     unsafe.Pointer
	flags    ShaderModuleCreateFlags
	codeSize uintptr
	code     unsafe.Pointer
}

type rawMemoryAllocateInfo struct {
	sType           StructureType
	next            unsafe.Pointer
	allocationSize  DeviceSize
	memoryTypeIndex uint32
}

type rawAllocationCallbacks struct {
	userData              unsafe.Pointer
	pfnAllocation         unsafe.Pointer
	pfnReallocation       unsafe.Pointer
	pfnFree               unsafe.Pointer
	pfnInternalAllocation unsafe.Pointer
	pfnInternalFree       unsafe.Pointer
}

type rawValidationFeaturesEXT struct {
	sType         StructureType
	next          unsafe.Pointer
	enabledCount  uint32
	enabled       unsafe.Pointer
	disabledCount uint32
	disabled      unsafe.Pointer
}

type rawPhysicalDeviceTimelineSemaphoreFeatures struct {
	sType             StructureType
	next              unsafe.Pointer
	timelineSemaphore Bool32
}
