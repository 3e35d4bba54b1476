//go:build !nogpu

package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileSPIRV compiles the fragment's composed WGSL source to a SPIR-V
// uint32 slice suitable for backends that do not accept WGSL directly.
func CompileSPIRV(f Fragment) ([]uint32, error) {
	src := Source(f)
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %q: %w", f.Name(), err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// CreateModule creates a HAL shader module from the fragment's composed
// WGSL source. The label is used for debugging only.
func CreateModule(device hal.Device, label string, f Fragment) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			WGSL: Source(f),
		},
	})
}

// CreateModuleSPIRV compiles the fragment through naga and creates a HAL
// shader module from the resulting SPIR-V code.
func CreateModuleSPIRV(device hal.Device, label string, f Fragment) (hal.ShaderModule, error) {
	code, err := CompileSPIRV(f)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
}
