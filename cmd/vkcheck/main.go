// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// vkcheck soaks the whole marshaling path against an in-process null
// driver and fails loudly if a single native block leaks. It is the
// long-running companion to the package tests, meant for overnight
// runs with NVK_ITERATIONS cranked up.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packd"
	"github.com/gobuffalo/packr"
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/nvk/model"
	"github.com/devblok/nvk/native"
	"github.com/devblok/nvk/nmem"
	"github.com/devblok/nvk/utility/spack"
	"github.com/devblok/nvk/vk"
)

var (
	errVertexMismatch = errors.New("staged vertices do not match the source")
	errDeviceInfo     = errors.New("physical device info query failed")
)

// StaticResources holds the bundled test fixtures.
var StaticResources packr.Box

func init() {
	StaticResources = packr.NewBox("./resources")
}

func main() {
	if envy.Get("NVK_VERBOSE", "") != "" {
		log.SetLevel(log.DebugLevel)
	}
	iterations, err := strconv.Atoi(envy.Get("NVK_ITERATIONS", "64"))
	if err != nil {
		log.Fatal(err)
	}

	rec := nmem.NewRecorder()
	heap := nmem.NewTrackedHeap(rec)
	vk.SetHeap(heap)

	if err := vk.RegisterDriver(nullDriver()); err != nil {
		log.Fatal(err)
	}

	archive, err := packShaders(StaticResources)
	if err != nil {
		log.Fatal(err)
	}
	words, err := archive.Words("triangle.vert.spv")
	if err != nil {
		log.Fatal(err)
	}

	object, err := model.ImportColladaObject(StaticResources.Bytes("cube.dae"))
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("imported model with %d vertices", len(object.Vertices()))

	if err := checkStaging(heap, object.Vertices()); err != nil {
		log.Fatal(err)
	}
	if rec.Outstanding() != 0 {
		log.Fatalf("staging check leaked %d blocks", rec.Outstanding())
	}

	for i := 0; i < iterations; i++ {
		if err := runOnce(words, object); err != nil {
			log.Fatalf("iteration %d: %s", i, err)
		}
		if n := rec.Outstanding(); n != 0 {
			log.Fatalf("iteration %d leaked %d blocks", i, n)
		}
	}
	if doubles := rec.DoubleFrees(); len(doubles) != 0 {
		log.Fatalf("observed %d double frees", len(doubles))
	}
	log.Infof("soak finished: %d iterations, %d allocations, %d frees",
		iterations, rec.Allocs(), rec.Frees())
}

// packShaders bundles every compiled shader fixture into an in-memory
// archive and reopens it, so the soak exercises the same read path the
// renderer would.
func packShaders(resources packd.Walker) (*spack.Archive, error) {
	builder := spack.NewBuilder(spack.Header{Engine: "koru", Version: 1})
	err := resources.Walk(func(path string, f packd.File) error {
		if !strings.HasSuffix(path, ".spv") {
			return nil
		}
		stage := spack.StageVertex
		if strings.Contains(path, ".frag.") {
			stage = spack.StageFragment
		}
		return builder.Add(path, spack.KindShader, stage, []byte(f.String()))
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := builder.WriteTo(&buf); err != nil {
		return nil, err
	}
	return spack.Open(bytes.NewReader(buf.Bytes()))
}

// checkStaging round-trips the model vertices through a native block,
// the way a staging buffer upload lays them out.
func checkStaging(heap *nmem.Heap, vertices []model.Vertex) error {
	p := nmem.AllocCopy(heap, vertices)
	defer heap.Free(p)

	out := make([]model.Vertex, len(vertices))
	nmem.CopyOut(p, out)
	for i := range out {
		if out[i] != vertices[i] {
			return errVertexMismatch
		}
	}
	log.Debugf("staged %d vertices through %d bytes", len(vertices), heap.Size(p))
	return nil
}

// runOnce walks one full create/enumerate/destroy cycle.
func runOnce(words []uint32, object model.Object) error {
	instance, err := vk.CreateInstance(vk.InstanceCreateInfo{
		ApplicationInfo: vk.DefaultApplicationInfo,
		EnabledLayerNames: []string{
			vk.KhronosValidationLayerName,
		},
		EnabledExtensionNames: []string{
			vk.KHRSurfaceExtensionName,
		},
		Next: []native.Converter{
			&vk.ValidationFeaturesEXT{
				Enabled: []vk.ValidationFeatureEnableEXT{vk.ValidationFeatureEnableBestPractices},
			},
		},
	}, nil)
	if err != nil {
		return err
	}
	defer instance.Destroy()

	physical, err := instance.PhysicalDevices()
	if err != nil {
		return err
	}

	for _, info := range instance.PhysicalDevicesInfo() {
		if info.Invalid {
			return errDeviceInfo
		}
		if dump, err := json.Marshal(info); err == nil {
			log.Debugf("device: %s", dump)
		}
	}

	device, err := physical[0].CreateDevice(vk.DeviceCreateInfo{
		QueueCreateInfos: []vk.DeviceQueueCreateInfo{
			{QueueFamilyIndex: 0, QueuePriorities: []float32{1.0}},
		},
		EnabledExtensionNames: []string{vk.KHRSwapchainExtensionName},
		EnabledFeatures:       &vk.PhysicalDeviceFeatures{SamplerAnisotropy: 1},
	}, nil)
	if err != nil {
		return err
	}
	defer device.Destroy()

	buffer, err := device.CreateBuffer(vk.BufferCreateInfo{
		Size:  vk.DeviceSize(len(object.Vertices())) * vk.DeviceSize(model.VertexBindingDescriptions()[0].Stride),
		Usage: vk.BufferUsageVertexBufferBit | vk.BufferUsageTransferDstBit,
	}, nil)
	if err != nil {
		return err
	}
	defer buffer.Release()

	shader, err := device.CreateShaderModule(vk.ShaderModuleCreateInfo{Code: words}, nil)
	if err != nil {
		return err
	}
	defer shader.Release()

	memory, err := device.AllocateMemory(vk.MemoryAllocateInfo{
		AllocationSize:  1 << 20,
		MemoryTypeIndex: 0,
	}, nil)
	if err != nil {
		return err
	}
	defer memory.Release()

	return nil
}
