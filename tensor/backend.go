// Copyright 2025 The S4 Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/Sequel-Institute/s4/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: the capable fallback device, full operator set for every
//     dtype including complex
//   - backend/webgpu: cross-platform GPU compute via WebGPU, real-valued
//     dtypes only
//
// Decorator backends for additional functionality:
//   - compat: wraps an accelerator backend and reroutes complex
//     contractions through a capable fallback
//
// Example:
//
//	import (
//	    "github.com/Sequel-Institute/s4/backend/cpu"
//	    "github.com/Sequel-Institute/s4/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
//
// Shape or dtype precondition violations panic; backends never return
// errors from compute methods.
type Backend interface {
	// Element-wise binary operations.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Matrix operations.
	MatMul(a, b *RawTensor) *RawTensor      // Generalized matrix product with batch broadcasting.
	BatchMatMul(a, b *RawTensor) *RawTensor // Batched matrix multiplication for 3D/4D tensors.
	MM(a, b *RawTensor) *RawTensor          // Strict 2D matrix product.

	// Contraction operations.
	Einsum(spec string, operands ...*RawTensor) *RawTensor // Einstein summation, e.g. "ij,jk->ik".

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor // Reshape tensor.
	Transpose(t *RawTensor, axes ...int) *RawTensor  // Transpose dimensions.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "WebGPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
