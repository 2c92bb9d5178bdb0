// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/devblok/nvk/native"
	"github.com/devblok/nvk/nmem"
)

// DefaultApplicationInfo is a usable baseline application description.
var DefaultApplicationInfo = &ApplicationInfo{
	ApplicationName:    "nvk",
	ApplicationVersion: Version(1, 0, 0),
	EngineName:         "nvk",
	EngineVersion:      Version(1, 0, 0),
	APIVersion:         APIVersion10,
}

// marshalAllocator marshals caller-supplied allocator callbacks into an
// arena that outlives the creation call: the block must stay valid until
// the resource is destroyed with it. Returns nils for the driver-default
// allocator.
func marshalAllocator(alloc *AllocationCallbacks) (unsafe.Pointer, *native.Arena) {
	if alloc == nil {
		return nil, nil
	}
	owned := native.NewArena(heap)
	return alloc.NativeConvert(owned), owned
}

// CreateInstance marshals info, calls the native creation entry point
// and wraps the resulting handle. The marshaled create info is released
// before returning, whatever the call's outcome.
func CreateInstance(info InstanceCreateInfo, alloc *AllocationCallbacks) (*Instance, error) {
	a := native.NewArena(heap)
	defer a.Release()

	pAlloc, owned := marshalAllocator(alloc)
	var value InstanceHandle
	if err := Error(driver.CreateInstance(info.NativeConvert(a), pAlloc, &value)); err != nil {
		if owned != nil {
			owned.Release()
		}
		return nil, fmt.Errorf("vk.CreateInstance(): %s", err)
	}

	h := native.Wrap(uint64(value), nil, pAlloc, owned, func(v uint64, pa unsafe.Pointer) {
		driver.DestroyInstance(InstanceHandle(v), pa)
	})
	return &Instance{handle: h}, nil
}

// Instance wraps a created driver instance.
type Instance struct {
	handle *native.Handle
}

// Handle returns the wrapper around the native instance value.
func (i *Instance) Handle() *native.Handle {
	return i.handle
}

// Destroy destroys the instance. Safe to call more than once.
func (i *Instance) Destroy() {
	if i == nil {
		return
	}
	i.handle.Dispose()
}

// PhysicalDevices enumerates the physical devices of this instance with
// the usual two-call size query.
func (i *Instance) PhysicalDevices() ([]PhysicalDevice, error) {
	instance := InstanceHandle(i.handle.Value())

	var count uint32
	if err := Error(driver.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumeratePhysicalDevices(): %s", err)
	}
	if count == 0 {
		return nil, nil
	}

	a := native.NewArena(heap)
	defer a.Release()

	buf := native.Slice[PhysicalDeviceHandle](a, int(count))
	if err := Error(driver.EnumeratePhysicalDevices(instance, &count, native.SlicePointer(buf))); err != nil {
		return nil, fmt.Errorf("vk.EnumeratePhysicalDevices(): %s", err)
	}

	handles := make([]PhysicalDeviceHandle, count)
	nmem.CopyOut(native.SlicePointer(buf), handles)

	devices := make([]PhysicalDevice, count)
	for idx, h := range handles {
		devices[idx] = PhysicalDevice{instance: i, value: h}
	}
	return devices, nil
}

// PhysicalDevicesInfo gathers the info of every physical device, for
// reporting tools that dump it whole.
func (i *Instance) PhysicalDevicesInfo() []PhysicalDeviceInfo {
	devices, err := i.PhysicalDevices()
	if err != nil {
		return nil
	}
	info := make([]PhysicalDeviceInfo, 0, len(devices))
	for _, d := range devices {
		info = append(info, d.Info())
	}
	return info
}
