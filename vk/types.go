// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vk

import (
	"unsafe"

	"github.com/devblok/nvk/native"
)

// StructureType tags every chainable native record with its layout.
type StructureType uint32

// Structure type tags for the records this binding marshals.
const (
	StructureTypeApplicationInfo        StructureType = 0
	StructureTypeInstanceCreateInfo     StructureType = 1
	StructureTypeDeviceQueueCreateInfo  StructureType = 2
	StructureTypeDeviceCreateInfo       StructureType = 3
	StructureTypeMemoryAllocateInfo     StructureType = 5
	StructureTypeBufferCreateInfo       StructureType = 12
	StructureTypeShaderModuleCreateInfo StructureType = 16

	StructureTypePhysicalDeviceTimelineSemaphoreFeatures StructureType = 1000207004
	StructureTypeValidationFeaturesEXT                   StructureType = 1000247000
)

// Bool32 is the four-byte boolean of the native interface.
type Bool32 uint32

// DeviceSize expresses byte sizes and offsets of device resources.
type DeviceSize uint64

// Flag types of the marshaled records.
type (
	InstanceCreateFlags     uint32
	DeviceCreateFlags       uint32
	DeviceQueueCreateFlags  uint32
	BufferCreateFlags       uint32
	BufferUsageFlags        uint32
	ShaderModuleCreateFlags uint32
)

// Buffer usage bits.
const (
	BufferUsageTransferSrcBit   BufferUsageFlags = 1 << 0
	BufferUsageTransferDstBit   BufferUsageFlags = 1 << 1
	BufferUsageUniformBufferBit BufferUsageFlags = 1 << 4
	BufferUsageStorageBufferBit BufferUsageFlags = 1 << 5
	BufferUsageIndexBufferBit   BufferUsageFlags = 1 << 6
	BufferUsageVertexBufferBit  BufferUsageFlags = 1 << 7
)

// SharingMode selects how a resource is shared between queue families.
type SharingMode uint32

// Sharing modes.
const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

// ValidationFeatureEnableEXT selects an optional validation feature.
type ValidationFeatureEnableEXT uint32

// Validation features that can be enabled.
const (
	ValidationFeatureEnableGpuAssisted               ValidationFeatureEnableEXT = 0
	ValidationFeatureEnableGpuAssistedReserveSlot    ValidationFeatureEnableEXT = 1
	ValidationFeatureEnableBestPractices             ValidationFeatureEnableEXT = 2
	ValidationFeatureEnableDebugPrintf               ValidationFeatureEnableEXT = 3
	ValidationFeatureEnableSynchronizationValidation ValidationFeatureEnableEXT = 4
)

// ValidationFeatureDisableEXT selects a validation feature to turn off.
type ValidationFeatureDisableEXT uint32

// Validation features that can be disabled.
const (
	ValidationFeatureDisableAll             ValidationFeatureDisableEXT = 0
	ValidationFeatureDisableShaders         ValidationFeatureDisableEXT = 1
	ValidationFeatureDisableThreadSafety    ValidationFeatureDisableEXT = 2
	ValidationFeatureDisableAPIParameters   ValidationFeatureDisableEXT = 3
	ValidationFeatureDisableObjectLifetimes ValidationFeatureDisableEXT = 4
	ValidationFeatureDisableCoreChecks      ValidationFeatureDisableEXT = 5
	ValidationFeatureDisableUniqueHandles   ValidationFeatureDisableEXT = 6
)

// ApplicationInfo names the application and the interface version it
// targets. All fields are optional; empty names marshal as absent.
type ApplicationInfo struct {
	Next               []native.Converter
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo describes the instance to create.
type InstanceCreateInfo struct {
	Next                  []native.Converter
	Flags                 InstanceCreateFlags
	ApplicationInfo       *ApplicationInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

// DeviceQueueCreateInfo requests queues of one family; one priority per
// requested queue.
type DeviceQueueCreateInfo struct {
	Next             []native.Converter
	Flags            DeviceQueueCreateFlags
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

// DeviceCreateInfo describes the logical device to create.
type DeviceCreateInfo struct {
	Next                  []native.Converter
	Flags                 DeviceCreateFlags
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
	EnabledFeatures       *PhysicalDeviceFeatures
}

// BufferCreateInfo describes a buffer resource. QueueFamilyIndices is
// only read in concurrent sharing mode.
type BufferCreateInfo struct {
	Next               []native.Converter
	Flags              BufferCreateFlags
	Size               DeviceSize
	Usage              BufferUsageFlags
	SharingMode        SharingMode
	QueueFamilyIndices []uint32
}

// ShaderModuleCreateInfo carries compiled shader code as 32-bit words.
type ShaderModuleCreateInfo struct {
	Next  []native.Converter
	Flags ShaderModuleCreateFlags
	Code  []uint32
}

// MemoryAllocateInfo describes one device memory allocation.
type MemoryAllocateInfo struct {
	Next            []native.Converter
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

// AllocationCallbacks is the caller-supplied set of native function
// pointers the driver calls back into instead of its own allocator. The
// binding treats it as an opaque record: it marshals and releases it,
// and otherwise only guarantees that a resource is destroyed with the
// same callbacks it was created with.
type AllocationCallbacks struct {
	UserData              unsafe.Pointer
	PfnAllocation         unsafe.Pointer
	PfnReallocation       unsafe.Pointer
	PfnFree               unsafe.Pointer
	PfnInternalAllocation unsafe.Pointer
	PfnInternalFree       unsafe.Pointer
}

// ValidationFeaturesEXT is a chainable extension record selecting
// validation features to enable or disable.
type ValidationFeaturesEXT struct {
	Enabled  []ValidationFeatureEnableEXT
	Disabled []ValidationFeatureDisableEXT
}

// PhysicalDeviceTimelineSemaphoreFeatures is a chainable extension
// record advertising or requesting timeline semaphore support.
type PhysicalDeviceTimelineSemaphoreFeatures struct {
	TimelineSemaphore Bool32
}

// PhysicalDeviceFeatures is the flat fine-grained feature toggle record.
// It contains no pointers, so it marshals as one bulk copy.
type PhysicalDeviceFeatures struct {
	RobustBufferAccess                      Bool32
	FullDrawIndexUint32                     Bool32
	ImageCubeArray                          Bool32
	IndependentBlend                        Bool32
	GeometryShader                          Bool32
	TessellationShader                      Bool32
	SampleRateShading                       Bool32
	DualSrcBlend                            Bool32
	LogicOp                                 Bool32
	MultiDrawIndirect                       Bool32
	DrawIndirectFirstInstance               Bool32
	DepthClamp                              Bool32
	DepthBiasClamp                          Bool32
	FillModeNonSolid                        Bool32
	DepthBounds                             Bool32
	WideLines                               Bool32
	LargePoints                             Bool32
	AlphaToOne                              Bool32
	MultiViewport                           Bool32
	SamplerAnisotropy                       Bool32
	TextureCompressionETC2                  Bool32
	TextureCompressionASTCLdr               Bool32
	TextureCompressionBC                    Bool32
	OcclusionQueryPrecise                   Bool32
	PipelineStatisticsQuery                 Bool32
	VertexPipelineStoresAndAtomics          Bool32
	FragmentStoresAndAtomics                Bool32
	ShaderTessellationAndGeometryPointSize  Bool32
	ShaderImageGatherExtended               Bool32
	ShaderStorageImageExtendedFormats       Bool32
	ShaderStorageImageMultisample           Bool32
	ShaderStorageImageReadWithoutFormat     Bool32
	ShaderStorageImageWriteWithoutFormat    Bool32
	ShaderUniformBufferArrayDynamicIndexing Bool32
	ShaderSampledImageArrayDynamicIndexing  Bool32
	ShaderStorageBufferArrayDynamicIndexing Bool32
	ShaderStorageImageArrayDynamicIndexing  Bool32
	ShaderClipDistance                      Bool32
	ShaderCullDistance                      Bool32
	ShaderFloat64                           Bool32
	ShaderInt64                             Bool32
	ShaderInt16                             Bool32
	ShaderResourceResidency                 Bool32
	ShaderResourceMinLod                    Bool32
	SparseBinding                           Bool32
	SparseResidencyBuffer                   Bool32
	SparseResidencyImage2D                  Bool32
	SparseResidencyImage3D                  Bool32
	SparseResidency2Samples                 Bool32
	SparseResidency4Samples                 Bool32
	SparseResidency8Samples                 Bool32
	SparseResidency16Samples                Bool32
	SparseResidencyAliased                  Bool32
	VariableMultisampleRate                 Bool32
	InheritedQueries                        Bool32
}

// Format identifies the memory layout of image and vertex data.
type Format uint32

// Formats used by vertex attribute setups.
const (
	FormatUndefined          Format = 0
	FormatR32Sfloat          Format = 100
	FormatR32g32Sfloat       Format = 103
	FormatR32g32b32Sfloat    Format = 106
	FormatR32g32b32a32Sfloat Format = 109
)

// VertexInputRate selects per-vertex or per-instance attribute
// addressing.
type VertexInputRate uint32

// Vertex input rates.
const (
	VertexInputRateVertex   VertexInputRate = 0
	VertexInputRateInstance VertexInputRate = 1
)

// VertexInputBindingDescription describes one vertex buffer binding.
type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate VertexInputRate
}

// VertexInputAttributeDescription locates one attribute inside a
// binding.
type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}

// MaxNameSize is the size of the fixed name fields in property records.
const MaxNameSize = 256

// MaxDescriptionSize is the size of fixed description fields.
const MaxDescriptionSize = 256

// ExtensionProperties is the flat record a property query fills; read
// with the flat copy primitives after a two-call size query.
type ExtensionProperties struct {
	ExtensionName [MaxNameSize]byte
	SpecVersion   uint32
}

// LayerProperties is the flat per-layer query record.
type LayerProperties struct {
	LayerName             [MaxNameSize]byte
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           [MaxDescriptionSize]byte
}
