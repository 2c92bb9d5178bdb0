// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import (
	"unsafe"

	"github.com/devblok/nvk/native"
	"github.com/devblok/nvk/nmem"
)

// PhysicalDevice identifies one physical rendering device of an
// instance. It is not a created resource and has nothing to destroy.
type PhysicalDevice struct {
	instance *Instance
	value    PhysicalDeviceHandle
}

// Handle returns the opaque physical device value.
func (d PhysicalDevice) Handle() PhysicalDeviceHandle {
	return d.value
}

// PhysicalDeviceInfo describes available properties of a rendering
// device. Invalid is set when any of the queries failed.
type PhysicalDeviceInfo struct {
	Invalid    bool
	Extensions []string
	Layers     []string
	Features   PhysicalDeviceFeatures
}

// Info gathers extension, layer and feature info for the device. Each
// list uses the two-call size query and a flat copy of the returned
// property records.
func (d PhysicalDevice) Info() PhysicalDeviceInfo {
	var info PhysicalDeviceInfo

	ext, err := d.ExtensionProperties()
	if err != nil {
		info.Invalid = true
	}
	for _, p := range ext {
		info.Extensions = append(info.Extensions, nmem.ToString(p.ExtensionName[:]))
	}

	layers, err := d.LayerProperties()
	if err != nil {
		info.Invalid = true
	}
	for _, p := range layers {
		info.Layers = append(info.Layers, nmem.ToString(p.LayerName[:]))
	}

	driver.GetPhysicalDeviceFeatures(d.value, unsafe.Pointer(&info.Features))
	return info
}

// ExtensionProperties returns the device's extension property records.
func (d PhysicalDevice) ExtensionProperties() ([]ExtensionProperties, error) {
	var count uint32
	if err := Error(driver.EnumerateDeviceExtensionProperties(d.value, nil, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	a := native.NewArena(heap)
	defer a.Release()

	buf := native.Slice[ExtensionProperties](a, int(count))
	if err := Error(driver.EnumerateDeviceExtensionProperties(d.value, nil, &count, native.SlicePointer(buf))); err != nil {
		return nil, err
	}

	out := make([]ExtensionProperties, count)
	nmem.CopyOut(native.SlicePointer(buf), out)
	return out, nil
}

// LayerProperties returns the device's layer property records.
func (d PhysicalDevice) LayerProperties() ([]LayerProperties, error) {
	var count uint32
	if err := Error(driver.EnumerateDeviceLayerProperties(d.value, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	a := native.NewArena(heap)
	defer a.Release()

	buf := native.Slice[LayerProperties](a, int(count))
	if err := Error(driver.EnumerateDeviceLayerProperties(d.value, &count, native.SlicePointer(buf))); err != nil {
		return nil, err
	}

	out := make([]LayerProperties, count)
	nmem.CopyOut(native.SlicePointer(buf), out)
	return out, nil
}
