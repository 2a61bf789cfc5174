package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/blas/cblas64"

	"github.com/Sequel-Institute/s4/internal/parallel"
	"github.com/Sequel-Institute/s4/internal/tensor"
)

// MM performs a strict 2D matrix product: (M, K) @ (K, N) -> (M, N).
// Real dtypes use naive typed loops; complex dtypes go through gonum's
// pure-Go BLAS GEMM.
func (cpu *Backend) MM(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("cpu: mm: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu: mm: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("cpu: mm: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: mm: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	case tensor.Int32:
		matmulKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), m, k, n)
	case tensor.Int64:
		matmulKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), m, k, n)
	case tensor.Complex64:
		gemmComplex64(result.AsComplex64(), a.AsComplex64(), b.AsComplex64(), m, k, n)
	case tensor.Complex128:
		gemmComplex128(result.AsComplex128(), a.AsComplex128(), b.AsComplex128(), m, k, n)
	default:
		panic(fmt.Sprintf("cpu: mm: unsupported dtype %s", a.DType()))
	}
	return result
}

// MatMul performs a generalized matrix product. 2D operands multiply
// directly; higher-rank operands are treated as batches of matrices, with
// NumPy-style broadcasting over the leading batch dimensions.
func (cpu *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) < 2 || len(bShape) < 2 {
		panic(fmt.Sprintf("cpu: matmul: operands must be at least 2D, got %dD and %dD", len(aShape), len(bShape)))
	}
	if len(aShape) == 2 && len(bShape) == 2 {
		return cpu.MM(a, b)
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu: matmul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	m, k := aShape[len(aShape)-2], aShape[len(aShape)-1]
	kAlt, n := bShape[len(bShape)-2], bShape[len(bShape)-1]
	if k != kAlt {
		panic(fmt.Sprintf("cpu: matmul: inner dimension mismatch: %d vs %d", k, kAlt))
	}

	aBatch := aShape[:len(aShape)-2]
	bBatch := bShape[:len(bShape)-2]
	batchShape, err := tensor.BroadcastBatchShapes(aShape, bShape)
	if err != nil {
		panic(fmt.Sprintf("cpu: matmul: %v", err))
	}

	outShape := append(batchShape.Clone(), m, n)
	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: matmul: failed to create result tensor: %v", err))
	}

	cpu.dispatchBatched(result, a, b, batchShape, aBatch, bBatch, m, k, n)
	return result
}

// dispatchBatched runs the per-dtype batched GEMM over broadcasted batches.
func (cpu *Backend) dispatchBatched(result, a, b *tensor.RawTensor, batchShape, aBatch, bBatch tensor.Shape, m, k, n int) {
	// One iteration is an entire GEMM, so the element-count chunk
	// threshold does not apply here.
	par := cpu.par
	par.MinChunkSize = 1

	switch a.DType() {
	case tensor.Float32:
		batchedGemm(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), batchShape, aBatch, bBatch, m, k, n, matmulKernel[float32], par)
	case tensor.Float64:
		batchedGemm(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), batchShape, aBatch, bBatch, m, k, n, matmulKernel[float64], par)
	case tensor.Int32:
		batchedGemm(result.AsInt32(), a.AsInt32(), b.AsInt32(), batchShape, aBatch, bBatch, m, k, n, matmulKernel[int32], par)
	case tensor.Int64:
		batchedGemm(result.AsInt64(), a.AsInt64(), b.AsInt64(), batchShape, aBatch, bBatch, m, k, n, matmulKernel[int64], par)
	case tensor.Complex64:
		batchedGemm(result.AsComplex64(), a.AsComplex64(), b.AsComplex64(), batchShape, aBatch, bBatch, m, k, n, gemmComplex64, par)
	case tensor.Complex128:
		batchedGemm(result.AsComplex128(), a.AsComplex128(), b.AsComplex128(), batchShape, aBatch, bBatch, m, k, n, gemmComplex128, par)
	default:
		panic(fmt.Sprintf("cpu: matmul: unsupported dtype %s", a.DType()))
	}
}

// batchedGemm applies a 2D GEMM kernel to every broadcasted batch slice.
// Batch slices write to disjoint output regions, so they run in parallel.
func batchedGemm[T number](cData, aData, bData []T, batchShape, aBatch, bBatch tensor.Shape, m, k, n int,
	kernel func(c, a, b []T, m, k, n int), par parallel.Config,
) {
	batchCount := batchShape.NumElements()
	parallel.For(batchCount, func(bi int) {
		aOff := broadcastOffset(bi, batchShape, aBatch) * m * k
		bOff := broadcastOffset(bi, batchShape, bBatch) * k * n
		cOff := bi * m * n
		kernel(cData[cOff:cOff+m*n], aData[aOff:aOff+m*k], bData[bOff:bOff+k*n], m, k, n)
	}, par)
}

// matmulKernel performs naive matrix multiplication:
// C[i,j] = sum_k A[i,k] * B[k,j].
func matmulKernel[T number](c, a, b []T, m, k, n int) {
	for i := range c {
		c[i] = 0
	}

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// gemmComplex64 computes C = A @ B through gonum's complex64 BLAS.
func gemmComplex64(c, a, b []complex64, m, k, n int) {
	cblas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		cblas64.General{Rows: m, Cols: k, Stride: k, Data: a},
		cblas64.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		cblas64.General{Rows: m, Cols: n, Stride: n, Data: c})
}

// gemmComplex128 computes C = A @ B through gonum's complex128 BLAS.
func gemmComplex128(c, a, b []complex128, m, k, n int) {
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1,
		cblas128.General{Rows: m, Cols: k, Stride: k, Data: a},
		cblas128.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		cblas128.General{Rows: m, Cols: n, Stride: n, Data: c})
}
