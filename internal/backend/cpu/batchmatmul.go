package cpu

import (
	"fmt"

	"github.com/Sequel-Institute/s4/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication.
// Supports 3D and 4D tensors with equal batch dimensions.
//
// For 3D: [B, M, K] @ [B, K, N] -> [B, M, N]
// For 4D: [B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
//
// The last two dimensions are treated as matrix dimensions.
// All leading dimensions must match exactly (no broadcasting); use MatMul
// for broadcasted batch dimensions.
func (cpu *Backend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()
	ndim := len(aShape)

	if ndim < 3 {
		panic(fmt.Sprintf("cpu: batchmatmul: inputs must be at least 3D, got %dD", ndim))
	}
	if len(bShape) != ndim {
		panic(fmt.Sprintf("cpu: batchmatmul: dimension mismatch, got %dD and %dD", ndim, len(bShape)))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu: batchmatmul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	for i := 0; i < ndim-2; i++ {
		if aShape[i] != bShape[i] {
			panic(fmt.Sprintf("cpu: batchmatmul: batch dimension mismatch at dim %d: %d vs %d", i, aShape[i], bShape[i]))
		}
	}

	m := aShape[ndim-2]
	k := aShape[ndim-1]
	kAlt := bShape[ndim-2]
	n := bShape[ndim-1]
	if k != kAlt {
		panic(fmt.Sprintf("cpu: batchmatmul: inner dimension mismatch: %d vs %d", k, kAlt))
	}

	batchShape := aShape[:ndim-2].Clone()
	outShape := append(batchShape.Clone(), m, n)
	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: batchmatmul: failed to create result tensor: %v", err))
	}

	// Batch dims are equal on both sides, so the broadcasted dispatch
	// degenerates to a straight per-slice loop.
	cpu.dispatchBatched(result, a, b, batchShape, batchShape, batchShape, m, k, n)
	return result
}
