// Copyright 2025 The S4 Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the S4 kernel
// library.
//
// # Overview
//
// Tensors are the fundamental data structure in S4. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Complex dtypes (complex64, complex128) alongside real ones
//   - Device abstraction (CPU, WebGPU)
//
// # Basic Usage
//
//	import (
//	    "github.com/Sequel-Institute/s4/backend/cpu"
//	    "github.com/Sequel-Institute/s4/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[complex64](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[complex64](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    result := x.MatMul(y.Transpose())
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType
// constraint:
//   - float32, float64 (floating-point)
//   - complex64, complex128 (complex floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers)
//   - bool (boolean masks)
//
// # Device Support
//
// Tensors can reside on different devices:
//   - CPU: Pure Go implementation, full dtype coverage
//   - WebGPU: Zero-CGO GPU acceleration, real dtypes only
//
// Not every device supports every dtype. WGSL has no complex number type,
// so the WebGPU backend rejects complex tensors. The compat package wraps a
// restricted backend and transparently routes complex contractions through
// the CPU.
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend)     // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)      // (3, 4)
//	c := a.Add(b)                                                // (3, 4)
//
// # Einstein Summation
//
// Contract evaluates an explicit einsum expression over one or more
// tensors:
//
//	// Batched matrix product.
//	c := tensor.Contract("bij,bjk->bik", a, b)
//
//	// S4 convolution kernel: contract coefficients against a Vandermonde
//	// matrix.
//	k := tensor.Contract("n,n,nl->l", cT, bT, vT)
//
// The expression must name its output ("->" is required) and labels are
// single ASCII letters.
//
// # Memory Management
//
// Tensors use copy-on-write buffers. The underlying data is
// reference-counted and freed when no longer needed.
package tensor
