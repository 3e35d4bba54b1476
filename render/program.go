// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/transform"
	"github.com/gogpu/transform/shader"
)

// Program is a composed transform shader uploaded to a GPU device as a
// shader module. The module is built from the fragment's source at creation
// time; rebuild the Program after mutating the underlying chain to pick up
// new parameters on the GPU.
type Program struct {
	device hal.Device
	module hal.ShaderModule
	label  string
	source string
}

// NewProgram assembles the fragment's composed WGSL source and creates a
// shader module for it on the provider's device. The provider must expose
// HAL access via HalDevice() any returning a hal.Device.
func NewProgram(provider DeviceHandle, label string, f shader.Fragment) (*Program, error) {
	device, err := halDevice(provider)
	if err != nil {
		return nil, err
	}
	return newProgram(device, label, f)
}

// NewProgramOn creates the program directly on a HAL device.
func NewProgramOn(device hal.Device, label string, f shader.Fragment) (*Program, error) {
	return newProgram(device, label, f)
}

func newProgram(device hal.Device, label string, f shader.Fragment) (*Program, error) {
	src := shader.Source(f)
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w", label, err)
	}
	transform.Logger().Debug("created transform shader module", "label", label, "entry", f.Name())
	return &Program{device: device, module: module, label: label, source: src}, nil
}

// Module returns the HAL shader module.
func (p *Program) Module() hal.ShaderModule { return p.module }

// Label returns the debug label the program was created with.
func (p *Program) Label() string { return p.label }

// Source returns the WGSL source the module was built from.
func (p *Program) Source() string { return p.source }

// Destroy releases the shader module. The Program must not be used after.
func (p *Program) Destroy() {
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// halDevice extracts a HAL device from a provider. The provider should
// implement HalDevice() any returning hal.Device (gpucontext.HalProvider
// convention).
func halDevice(provider any) (hal.Device, error) {
	hp, ok := provider.(interface {
		HalDevice() any
	})
	if !ok {
		return nil, fmt.Errorf("render: provider %T has no HAL access", provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: provider HalDevice is not hal.Device")
	}
	return device, nil
}

// GPU owns a self-created HAL instance, device and queue for hosts that do
// not supply one (tools, standalone examples, tests).
type GPU struct {
	instance hal.Instance
	Device   hal.Device
	Queue    hal.Queue
}

// Open creates a HAL instance on the Vulkan backend and opens the first
// suitable adapter, preferring discrete and integrated GPUs.
func Open() (*GPU, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	transform.Logger().Info("GPU device opened", "adapter", selected.Info.Name)
	return &GPU{instance: instance, Device: openDev.Device, Queue: openDev.Queue}, nil
}

// Close destroys the device and instance.
func (g *GPU) Close() {
	if g.Device != nil {
		g.Device.Destroy()
		g.Device = nil
		g.Queue = nil
	}
	if g.instance != nil {
		g.instance.Destroy()
		g.instance = nil
	}
}
