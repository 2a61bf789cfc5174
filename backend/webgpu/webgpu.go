// Copyright 2025 The S4 Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated tensor
// operations.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via D3D12)
//   - macOS (via Metal)
//   - Linux (via Vulkan)
//
// WGSL, the WebGPU shading language, has no complex number type, so this
// backend rejects complex tensors. Wrap it with the compat package to route
// complex contractions through the CPU transparently:
//
//	import (
//	    "github.com/Sequel-Institute/s4/backend/cpu"
//	    "github.com/Sequel-Institute/s4/backend/webgpu"
//	    "github.com/Sequel-Institute/s4/compat"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    backend := compat.New(gpu, cpu.New())
//	    x := tensor.Randn[complex64](tensor.Shape{64, 64}, backend)
//	}
package webgpu

import (
	internalwebgpu "github.com/Sequel-Institute/s4/internal/backend/webgpu"
	"github.com/Sequel-Institute/s4/tensor"
)

// Backend represents the WebGPU backend implementation for GPU-accelerated
// tensor operations.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend ready
// for tensor operations. Call Release() when done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// This function attempts to initialize a WebGPU adapter to verify that a
// compatible GPU and drivers are present. It's useful for graceful fallback
// to the CPU backend when no GPU is available.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    backend = compat.New(gpu, cpu.New())
//	} else {
//	    backend = cpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
