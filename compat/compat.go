// Copyright 2025 The S4 Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compat provides the device-capability dispatch layer.
//
// Accelerator backends do not implement the full operator set for every
// dtype: WebGPU has no complex number support, so complex-valued
// contractions cannot run there. This package wraps an accelerator backend
// and transparently reroutes exactly those calls through a capable fallback
// device, relocating the operands, computing on the fallback, and
// relocating the result back. Everything else delegates untouched.
//
// Example:
//
//	import (
//	    "github.com/Sequel-Institute/s4/backend/cpu"
//	    "github.com/Sequel-Institute/s4/backend/webgpu"
//	    "github.com/Sequel-Institute/s4/compat"
//	    "github.com/Sequel-Institute/s4/tensor"
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
//
//	    // Real-valued calls run on the GPU; complex-valued calls are
//	    // rerouted through the CPU and come back on the GPU device.
//	    x := tensor.Randn[complex64](tensor.Shape{64, 64}, backend)
//	    y := x.MatMul(x)
//	}
package compat

import (
	internalcompat "github.com/Sequel-Institute/s4/internal/compat"
	"github.com/Sequel-Institute/s4/tensor"
)

// Backend decorates a native (accelerator) backend with complex-number
// fallback dispatch. The four contraction primitives (Einsum, MatMul,
// BatchMatMul and MM) are guarded; all other operations delegate directly
// to the native backend.
type Backend = internalcompat.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New wraps native with fallback dispatch through the given capable
// backend. The fallback backend must support the full operator set for
// complex dtypes (in practice: the CPU backend).
func New(native, fallback tensor.Backend) *Backend {
	return internalcompat.New(native, fallback)
}

// SupportsComplex reports whether a device can execute complex-valued
// linear-algebra primitives natively.
func SupportsComplex(d tensor.Device) bool {
	return internalcompat.SupportsComplex(d)
}
