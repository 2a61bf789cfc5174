// Copyright 2025 The S4 Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Full dtype coverage, complex64 and complex128 included
//   - Complex matrix kernels backed by gonum's pure-Go BLAS
//   - NumPy-compatible broadcasting
//   - Multi-core batch dispatch
//
// # Basic Usage
//
//	import (
//	    "github.com/Sequel-Institute/s4/backend/cpu"
//	    "github.com/Sequel-Institute/s4/tensor"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros[complex64](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[complex64](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// # Role
//
// The CPU backend is the capable fallback device. Restricted accelerator
// backends (see backend/webgpu) refuse complex dtypes; the compat package
// relocates their complex operands here, computes, and moves the result
// back.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation is
// isolated and does not share mutable state.
package cpu
