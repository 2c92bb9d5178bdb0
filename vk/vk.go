// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vk is a hand-written binding layer over a Vulkan-style driver
// interface. Rich, garbage-collected create-info descriptors are
// marshaled into ABI-exact records through the native conversion
// protocol, handed to the registered driver dispatch table, and every
// suballocation made for a call is released when the call returns,
// success or not. Created resources come back wrapped with an
// idempotent Destroy.
//
// Names are plain Go strings everywhere; the marshaler appends the
// terminator, callers never embed one.
package vk

// Version packs a Vulkan-style version triple.
func Version(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}

// VersionMajor extracts the major number of a packed version.
func VersionMajor(version uint32) uint32 {
	return version >> 22
}

// VersionMinor extracts the minor number of a packed version.
func VersionMinor(version uint32) uint32 {
	return (version >> 12) & 0x3ff
}

// VersionPatch extracts the patch number of a packed version.
func VersionPatch(version uint32) uint32 {
	return version & 0xfff
}

// APIVersion10 is the baseline interface version.
const APIVersion10 = uint32(1 << 22)

// Well-known extension and layer names.
const (
	KHRSurfaceExtensionName            = "VK_KHR_surface"
	KHRSwapchainExtensionName          = "VK_KHR_swapchain"
	KHRTimelineSemaphoreExtensionName  = "VK_KHR_timeline_semaphore"
	EXTDebugUtilsExtensionName         = "VK_EXT_debug_utils"
	EXTValidationFeaturesExtensionName = "VK_EXT_validation_features"
	KhronosValidationLayerName         = "VK_LAYER_KHRONOS_validation"
)
