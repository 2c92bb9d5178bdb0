// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import (
	"testing"
	"unsafe"

	"github.com/devblok/nvk/native"
	"github.com/devblok/nvk/nmem"
)

// testDriver is an in-process driver that decodes every record it is
// handed, so tests can assert on exactly what crossed the boundary.
type testDriver struct {
	failWith Result

	physicalDevices  []PhysicalDeviceHandle
	deviceExtensions []ExtensionProperties
	deviceLayers     []LayerProperties
	features         PhysicalDeviceFeatures

	nextHandle uint64

	lastInstance capturedInstance
	lastDevice   capturedDevice
	lastBuffer   capturedBuffer
	lastShader   capturedShader
	lastMemory   capturedMemory

	destroyedInstances int
	destroyedDevices   int
	destroyedBuffers   []BufferHandle
	destroyedShaders   []ShaderModuleHandle
	freedMemory        []DeviceMemoryHandle

	createAllocator  unsafe.Pointer
	destroyAllocator unsafe.Pointer
}

type capturedInstance struct {
	sType              StructureType
	flags              InstanceCreateFlags
	hasAppInfo         bool
	applicationName    string
	engineName         string
	apiVersion         uint32
	layers             []string
	extensions         []string
	layersNil          bool
	extensionsNil      bool
	chain              []StructureType
	validationEnabled  []ValidationFeatureEnableEXT
	validationDisabled []ValidationFeatureDisableEXT
	timelineSemaphore  Bool32
}

type capturedDevice struct {
	queueFamilies   []uint32
	queuePriorities [][]float32
	extensions      []string
	hasFeatures     bool
	features        PhysicalDeviceFeatures
}

type capturedBuffer struct {
	size            DeviceSize
	usage           BufferUsageFlags
	sharingMode     SharingMode
	queueIndices    []uint32
	queueIndicesNil bool
}

type capturedShader struct {
	codeSize uintptr
	words    []uint32
}

type capturedMemory struct {
	allocationSize  DeviceSize
	memoryTypeIndex uint32
}

func newTestDriver() *testDriver {
	return &testDriver{nextHandle: 0x1000}
}

// setupDriver wires a fresh tracked heap and test driver into the
// package for one test.
func setupDriver(t *testing.T) (*testDriver, *nmem.Recorder) {
	t.Helper()
	rec := nmem.NewRecorder()
	SetHeap(nmem.NewTrackedHeap(rec))
	t.Cleanup(func() { SetHeap(nmem.Default) })

	d := newTestDriver()
	if err := RegisterDriver(d.procs()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { driver = Procs{} })
	return d, rec
}

func (d *testDriver) handle() uint64 {
	d.nextHandle++
	return d.nextHandle
}

func decodeStrings(p unsafe.Pointer, count uint32) []string {
	if p == nil {
		return nil
	}
	out := make([]string, count)
	for i, sp := range unsafe.Slice((*unsafe.Pointer)(p), count) {
		out[i] = nmem.Decode(sp)
	}
	return out
}

func (d *testDriver) decodeChain(c *capturedInstance, next unsafe.Pointer) {
	for p := next; p != nil; p = (*native.ChainHeader)(p).Next {
		st := StructureType((*native.ChainHeader)(p).SType)
		c.chain = append(c.chain, st)
		switch st {
		case StructureTypeValidationFeaturesEXT:
			v := (*rawValidationFeaturesEXT)(p)
			if v.enabled != nil {
				c.validationEnabled = append([]ValidationFeatureEnableEXT(nil),
					unsafe.Slice((*ValidationFeatureEnableEXT)(v.enabled), v.enabledCount)...)
			}
			if v.disabled != nil {
				c.validationDisabled = append([]ValidationFeatureDisableEXT(nil),
					unsafe.Slice((*ValidationFeatureDisableEXT)(v.disabled), v.disabledCount)...)
			}
		case StructureTypePhysicalDeviceTimelineSemaphoreFeatures:
			c.timelineSemaphore = (*rawPhysicalDeviceTimelineSemaphoreFeatures)(p).timelineSemaphore
		}
	}
}

func (d *testDriver) procs() Procs {
	return Procs{
		CreateInstance: func(createInfo, allocator unsafe.Pointer, instance *InstanceHandle) Result {
			if d.failWith != Success {
				return d.failWith
			}
			raw := (*rawInstanceCreateInfo)(createInfo)
			got := capturedInstance{
				sType:         raw.sType,
				flags:         raw.flags,
				hasAppInfo:    raw.applicationInfo != nil,
				layers:        decodeStrings(raw.enabledLayerNames, raw.enabledLayerCount),
				extensions:    decodeStrings(raw.enabledExtensionNames, raw.enabledExtensionCount),
				layersNil:     raw.enabledLayerNames == nil,
				extensionsNil: raw.enabledExtensionNames == nil,
			}
			if raw.applicationInfo != nil {
				got.applicationName = nmem.Decode(raw.applicationInfo.applicationName)
				got.engineName = nmem.Decode(raw.applicationInfo.engineName)
				got.apiVersion = raw.applicationInfo.apiVersion
			}
			d.decodeChain(&got, raw.next)
			d.lastInstance = got
			d.createAllocator = allocator
			*instance = InstanceHandle(d.handle())
			return Success
		},
		DestroyInstance: func(instance InstanceHandle, allocator unsafe.Pointer) {
			d.destroyedInstances++
			d.destroyAllocator = allocator
		},
		EnumeratePhysicalDevices: func(instance InstanceHandle, count *uint32, devices unsafe.Pointer) Result {
			if devices == nil {
				*count = uint32(len(d.physicalDevices))
				return Success
			}
			nmem.CopyIn(devices, d.physicalDevices[:*count])
			return Success
		},
		EnumerateDeviceExtensionProperties: func(device PhysicalDeviceHandle, layerName unsafe.Pointer, count *uint32, properties unsafe.Pointer) Result {
			if properties == nil {
				*count = uint32(len(d.deviceExtensions))
				return Success
			}
			nmem.CopyIn(properties, d.deviceExtensions[:*count])
			return Success
		},
		EnumerateDeviceLayerProperties: func(device PhysicalDeviceHandle, count *uint32, properties unsafe.Pointer) Result {
			if properties == nil {
				*count = uint32(len(d.deviceLayers))
				return Success
			}
			nmem.CopyIn(properties, d.deviceLayers[:*count])
			return Success
		},
		GetPhysicalDeviceFeatures: func(device PhysicalDeviceHandle, features unsafe.Pointer) {
			*(*PhysicalDeviceFeatures)(features) = d.features
		},
		CreateDevice: func(physicalDevice PhysicalDeviceHandle, createInfo, allocator unsafe.Pointer, device *DeviceHandle) Result {
			if d.failWith != Success {
				return d.failWith
			}
			raw := (*rawDeviceCreateInfo)(createInfo)
			got := capturedDevice{
				extensions:  decodeStrings(raw.enabledExtensionNames, raw.enabledExtensionCount),
				hasFeatures: raw.enabledFeatures != nil,
			}
			if raw.enabledFeatures != nil {
				got.features = *raw.enabledFeatures
			}
			if raw.queueCreateInfos != nil {
				for _, q := range unsafe.Slice((*rawDeviceQueueCreateInfo)(raw.queueCreateInfos), raw.queueCreateInfoCount) {
					got.queueFamilies = append(got.queueFamilies, q.queueFamilyIndex)
					var prios []float32
					if q.queuePriorities != nil {
						prios = append(prios, unsafe.Slice((*float32)(q.queuePriorities), q.queueCount)...)
					}
					got.queuePriorities = append(got.queuePriorities, prios)
				}
			}
			d.lastDevice = got
			d.createAllocator = allocator
			*device = DeviceHandle(d.handle())
			return Success
		},
		DestroyDevice: func(device DeviceHandle, allocator unsafe.Pointer) {
			d.destroyedDevices++
			d.destroyAllocator = allocator
		},
		CreateBuffer: func(device DeviceHandle, createInfo, allocator unsafe.Pointer, buffer *BufferHandle) Result {
			if d.failWith != Success {
				return d.failWith
			}
			raw := (*rawBufferCreateInfo)(createInfo)
			got := capturedBuffer{
				size:            raw.size,
				usage:           raw.usage,
				sharingMode:     raw.sharingMode,
				queueIndicesNil: raw.queueFamilyIndices == nil,
			}
			if raw.queueFamilyIndices != nil {
				got.queueIndices = append(got.queueIndices,
					unsafe.Slice((*uint32)(raw.queueFamilyIndices), raw.queueFamilyIndexCount)...)
			}
			d.lastBuffer = got
			*buffer = BufferHandle(d.handle())
			return Success
		},
		DestroyBuffer: func(device DeviceHandle, buffer BufferHandle, allocator unsafe.Pointer) {
			d.destroyedBuffers = append(d.destroyedBuffers, buffer)
		},
		CreateShaderModule: func(device DeviceHandle, createInfo, allocator unsafe.Pointer, shaderModule *ShaderModuleHandle) Result {
			if d.failWith != Success {
				return d.failWith
			}
			raw := (*rawShaderModuleCreateInfo)(createInfo)
			got := capturedShader{codeSize: raw.codeSize}
			if raw.code != nil {
				got.words = append(got.words, unsafe.Slice((*uint32)(raw.code), raw.codeSize/4)...)
			}
			d.lastShader = got
			*shaderModule = ShaderModuleHandle(d.handle())
			return Success
		},
		DestroyShaderModule: func(device DeviceHandle, shaderModule ShaderModuleHandle, allocator unsafe.Pointer) {
			d.destroyedShaders = append(d.destroyedShaders, shaderModule)
		},
		AllocateMemory: func(device DeviceHandle, allocateInfo, allocator unsafe.Pointer, memory *DeviceMemoryHandle) Result {
			if d.failWith != Success {
				return d.failWith
			}
			raw := (*rawMemoryAllocateInfo)(allocateInfo)
			d.lastMemory = capturedMemory{
				allocationSize:  raw.allocationSize,
				memoryTypeIndex: raw.memoryTypeIndex,
			}
			*memory = DeviceMemoryHandle(d.handle())
			return Success
		},
		FreeMemory: func(device DeviceHandle, memory DeviceMemoryHandle, allocator unsafe.Pointer) {
			d.freedMemory = append(d.freedMemory, memory)
		},
	}
}
