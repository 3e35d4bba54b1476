// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render uploads composed transform shaders to GPU devices.
//
// It bridges the transform and shader packages to the gogpu stack: a host
// application hands over its device through DeviceHandle (the
// gpucontext.DeviceProvider interface) and NewProgram turns any composed
// shader fragment into a HAL shader module on that device. Hosts without a
// device can use Open to create one on the Vulkan backend.
//
// The package performs no rendering itself and decides nothing about when a
// chain is re-evaluated; it only moves composed shader source onto the GPU.
package render
