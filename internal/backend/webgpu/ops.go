package webgpu

import (
	"fmt"

	"github.com/Sequel-Institute/s4/internal/tensor"
)

// ensureReal rejects complex operands. WGSL has no complex number type, so
// this restriction is inherent to the device, not an implementation gap.
// Use the compat package to fall back to CPU for complex contractions.
func ensureReal(op string, operands ...*tensor.RawTensor) {
	for _, t := range operands {
		if t.DType().IsComplex() {
			panic(fmt.Sprintf("webgpu: %s: complex tensors are not supported on WebGPU", op))
		}
	}
}

// Add performs element-wise addition on GPU.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	ensureReal("add", a, other)
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction on GPU.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	ensureReal("sub", a, other)
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication on GPU.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	ensureReal("mul", a, other)
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// Div performs element-wise division on GPU.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	ensureReal("div", a, other)
	result, err := b.runBinaryOp(a, other, "div", divShader)
	if err != nil {
		panic("webgpu: Div: " + err.Error())
	}
	return result
}

// MM performs a strict 2D matrix product on GPU.
func (b *Backend) MM(a, other *tensor.RawTensor) *tensor.RawTensor {
	ensureReal("mm", a, other)
	result, err := b.runMatMul(a, other)
	if err != nil {
		panic("webgpu: MM: " + err.Error())
	}
	return result
}

// MatMul performs a generalized matrix product on GPU. 2D operands multiply
// directly; higher-rank operands require equal batch dimensions (broadcasted
// batch dimensions are not supported on this backend).
func (b *Backend) MatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	ensureReal("matmul", a, other)
	if len(a.Shape()) == 2 && len(other.Shape()) == 2 {
		result, err := b.runMatMul(a, other)
		if err != nil {
			panic("webgpu: MatMul: " + err.Error())
		}
		return result
	}
	return b.BatchMatMul(a, other)
}

// BatchMatMul performs batched matrix multiplication on GPU for 3D/4D
// tensors with equal batch dimensions. Each batch slice runs through the
// 2D matmul pipeline.
func (b *Backend) BatchMatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	ensureReal("batchmatmul", a, other)

	aShape, bShape := a.Shape(), other.Shape()
	ndim := len(aShape)
	if ndim < 3 || len(bShape) != ndim {
		panic(fmt.Sprintf("webgpu: batchmatmul: inputs must have equal rank >= 3, got %v and %v", aShape, bShape))
	}
	for i := 0; i < ndim-2; i++ {
		if aShape[i] != bShape[i] {
			panic(fmt.Sprintf("webgpu: batchmatmul: batch dimension mismatch at dim %d: %d vs %d", i, aShape[i], bShape[i]))
		}
	}

	m, k := aShape[ndim-2], aShape[ndim-1]
	kAlt, n := bShape[ndim-2], bShape[ndim-1]
	if k != kAlt {
		panic(fmt.Sprintf("webgpu: batchmatmul: inner dimension mismatch: %d vs %d", k, kAlt))
	}

	batch := 1
	for i := 0; i < ndim-2; i++ {
		batch *= aShape[i]
	}

	outShape := append(aShape[:ndim-2].Clone(), m, n)
	result, err := tensor.NewRaw(outShape, a.DType(), tensor.WebGPU)
	if err != nil {
		panic("webgpu: batchmatmul: " + err.Error())
	}

	elemSize := a.DType().Size()
	for bi := 0; bi < batch; bi++ {
		sliceA := matrixSlice(a, bi*m*k, m, k, elemSize)
		sliceB := matrixSlice(other, bi*k*n, k, n, elemSize)
		sliceC, err := b.runMatMul(sliceA, sliceB)
		if err != nil {
			panic("webgpu: BatchMatMul: " + err.Error())
		}
		copy(result.Data()[bi*m*n*elemSize:], sliceC.Data()[:m*n*elemSize])
	}
	return result
}

// matrixSlice copies one batch slice into a standalone 2D tensor.
func matrixSlice(t *tensor.RawTensor, off, rows, cols, elemSize int) *tensor.RawTensor {
	m, err := tensor.NewRaw(tensor.Shape{rows, cols}, t.DType(), tensor.WebGPU)
	if err != nil {
		panic("webgpu: " + err.Error())
	}
	copy(m.Data(), t.Data()[off*elemSize:(off+rows*cols)*elemSize])
	return m
}

// Einsum performs an Einstein-summation contraction. General contractions
// are computed on the host against the staged tensor data.
// TODO: lower the common two-operand patterns ("ij,jk->ik", "bij,bjk->bik")
// onto the matmul pipeline.
func (b *Backend) Einsum(spec string, operands ...*tensor.RawTensor) *tensor.RawTensor {
	ensureReal("einsum", operands...)
	result, err := tensor.Einsum(spec, operands...)
	if err != nil {
		panic("webgpu: Einsum: " + err.Error())
	}
	return result
}

// Reshape returns a tensor with a new shape. Metadata-only on staged data.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.Reshape(t, newShape)
	if err != nil {
		panic("webgpu: Reshape: " + err.Error())
	}
	return result
}

// Transpose permutes the tensor's dimensions on staged data.
func (b *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	result, err := tensor.TransposeAxes(t, axes...)
	if err != nil {
		panic("webgpu: Transpose: " + err.Error())
	}
	return result
}
