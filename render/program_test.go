// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"testing"

	"github.com/gogpu/transform/shader"
)

func TestNewProgramRejectsProviderWithoutHAL(t *testing.T) {
	chain := shader.NewFunctionChain("test_chain", nil)
	if _, err := NewProgram(NullDeviceHandle{}, "test", chain); err == nil {
		t.Fatalf("NewProgram with NullDeviceHandle succeeded, want error")
	}
}

type fakeHalProvider struct {
	NullDeviceHandle
}

// HalDevice returns a non-device value to exercise the type check.
func (fakeHalProvider) HalDevice() any { return "not a device" }

func TestNewProgramRejectsBadHalDevice(t *testing.T) {
	chain := shader.NewFunctionChain("test_chain", nil)
	if _, err := NewProgram(fakeHalProvider{}, "test", chain); err == nil {
		t.Fatalf("NewProgram with non-device HAL value succeeded, want error")
	}
}
