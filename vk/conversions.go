// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import (
	"unsafe"

	"github.com/devblok/nvk/native"
)

// Each conversion allocates its record and every suballocation from the
// one arena of the surrounding call. Absent optional fields stay nil,
// empty arrays marshal as (nil, 0). The structural tag and the chain
// pointer are written last.

// NativeConvert implements native.Converter.
func (info *ApplicationInfo) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawApplicationInfo](a)
	if info.ApplicationName != "" {
		out.applicationName = a.CString(info.ApplicationName)
	}
	out.applicationVersion = info.ApplicationVersion
	if info.EngineName != "" {
		out.engineName = a.CString(info.EngineName)
	}
	out.engineVersion = info.EngineVersion
	out.apiVersion = info.APIVersion
	out.sType = StructureTypeApplicationInfo
	out.next = native.Chain(a, info.Next)
	return unsafe.Pointer(out)
}

// NativeConvert implements native.Converter.
func (info *InstanceCreateInfo) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawInstanceCreateInfo](a)
	out.flags = info.Flags
	if info.ApplicationInfo != nil {
		out.applicationInfo = (*rawApplicationInfo)(info.ApplicationInfo.NativeConvert(a))
	}
	out.enabledLayerCount = uint32(len(info.EnabledLayerNames))
	out.enabledLayerNames = a.CStrings(info.EnabledLayerNames)
	out.enabledExtensionCount = uint32(len(info.EnabledExtensionNames))
	out.enabledExtensionNames = a.CStrings(info.EnabledExtensionNames)
	out.sType = StructureTypeInstanceCreateInfo
	out.next = native.Chain(a, info.Next)
	return unsafe.Pointer(out)
}

// fill converts into a caller-supplied record slot, used when queue
// infos are marshaled as one contiguous array.
func (info *DeviceQueueCreateInfo) fill(a *native.Arena, out *rawDeviceQueueCreateInfo) {
	out.flags = info.Flags
	out.queueFamilyIndex = info.QueueFamilyIndex
	out.queueCount = uint32(len(info.QueuePriorities))
	out.queuePriorities = native.Copy(a, info.QueuePriorities)
	out.sType = StructureTypeDeviceQueueCreateInfo
	out.next = native.Chain(a, info.Next)
}

// NativeConvert implements native.Converter.
func (info *DeviceQueueCreateInfo) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawDeviceQueueCreateInfo](a)
	info.fill(a, out)
	return unsafe.Pointer(out)
}

// NativeConvert implements native.Converter.
func (info *DeviceCreateInfo) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawDeviceCreateInfo](a)
	out.flags = info.Flags
	queueInfos := native.Slice[rawDeviceQueueCreateInfo](a, len(info.QueueCreateInfos))
	for i := range info.QueueCreateInfos {
		info.QueueCreateInfos[i].fill(a, &queueInfos[i])
	}
	out.queueCreateInfoCount = uint32(len(queueInfos))
	out.queueCreateInfos = native.SlicePointer(queueInfos)
	out.enabledLayerCount = uint32(len(info.EnabledLayerNames))
	out.enabledLayerNames = a.CStrings(info.EnabledLayerNames)
	out.enabledExtensionCount = uint32(len(info.EnabledExtensionNames))
	out.enabledExtensionNames = a.CStrings(info.EnabledExtensionNames)
	if info.EnabledFeatures != nil {
		out.enabledFeatures = native.Put(a, *info.EnabledFeatures)
	}
	out.sType = StructureTypeDeviceCreateInfo
	out.next = native.Chain(a, info.Next)
	return unsafe.Pointer(out)
}

// NativeConvert implements native.Converter.
func (info *BufferCreateInfo) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawBufferCreateInfo](a)
	out.flags = info.Flags
	out.size = info.Size
	out.usage = info.Usage
	out.sharingMode = info.SharingMode
	out.queueFamilyIndexCount = uint32(len(info.QueueFamilyIndices))
	out.queueFamilyIndices = native.Copy(a, info.QueueFamilyIndices)
	out.sType = StructureTypeBufferCreateInfo
	out.next = native.Chain(a, info.Next)
	return unsafe.Pointer(out)
}

// NativeConvert implements native.Converter.
func (info *ShaderModuleCreateInfo) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawShaderModuleCreateInfo](a)
	out.flags = info.Flags
	out.codeSize = uintptr(len(info.Code)) * 4
	out.code = native.Copy(a, info.Code)
	out.sType = StructureTypeShaderModuleCreateInfo
	out.next = native.Chain(a, info.Next)
	return unsafe.Pointer(out)
}

// NativeConvert implements native.Converter.
func (info *MemoryAllocateInfo) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawMemoryAllocateInfo](a)
	out.allocationSize = info.AllocationSize
	out.memoryTypeIndex = info.MemoryTypeIndex
	out.sType = StructureTypeMemoryAllocateInfo
	out.next = native.Chain(a, info.Next)
	return unsafe.Pointer(out)
}

// NativeConvert implements native.Converter.
func (cb *AllocationCallbacks) NativeConvert(a *native.Arena) unsafe.Pointer {
	return unsafe.Pointer(native.Put(a, rawAllocationCallbacks{
		userData:              cb.UserData,
		pfnAllocation:         cb.PfnAllocation,
		pfnReallocation:       cb.PfnReallocation,
		pfnFree:               cb.PfnFree,
		pfnInternalAllocation: cb.PfnInternalAllocation,
		pfnInternalFree:       cb.PfnInternalFree,
	}))
}

// NativeConvert implements native.Converter.
func (f *ValidationFeaturesEXT) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawValidationFeaturesEXT](a)
	out.enabledCount = uint32(len(f.Enabled))
	out.enabled = native.Copy(a, f.Enabled)
	out.disabledCount = uint32(len(f.Disabled))
	out.disabled = native.Copy(a, f.Disabled)
	out.sType = StructureTypeValidationFeaturesEXT
	return unsafe.Pointer(out)
}

// NativeConvert implements native.Converter.
func (f *PhysicalDeviceTimelineSemaphoreFeatures) NativeConvert(a *native.Arena) unsafe.Pointer {
	out := native.New[rawPhysicalDeviceTimelineSemaphoreFeatures](a)
	out.timelineSemaphore = f.TimelineSemaphore
	out.sType = StructureTypePhysicalDeviceTimelineSemaphoreFeatures
	return unsafe.Pointer(out)
}
