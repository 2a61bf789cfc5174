package ssm

import (
	"fmt"

	"github.com/Sequel-Institute/s4/internal/tensor"
)

// KrylovKernel computes the length-L Krylov sequence
//
//	k[l] = cᵀ · Aˡ · b        for l in [0, length)
//
// by iterated matrix products: each step's state feeds the next one, so the
// chain is strictly order-dependent. a must be [N, N], b must be [N, 1] and
// c must be [1, N], all of one dtype. The result is a 1D tensor of length L
// on b's device.
func KrylovKernel(bk tensor.Backend, a, b, c *tensor.RawTensor, length int) *tensor.RawTensor {
	aShape, bShape, cShape := a.Shape(), b.Shape(), c.Shape()
	if len(aShape) != 2 || aShape[0] != aShape[1] {
		panic(fmt.Sprintf("ssm: krylov: state matrix must be square, got %v", aShape))
	}
	n := aShape[0]
	if len(bShape) != 2 || bShape[0] != n || bShape[1] != 1 {
		panic(fmt.Sprintf("ssm: krylov: input vector must be [%d, 1], got %v", n, bShape))
	}
	if len(cShape) != 2 || cShape[0] != 1 || cShape[1] != n {
		panic(fmt.Sprintf("ssm: krylov: output vector must be [1, %d], got %v", n, cShape))
	}
	if length <= 0 {
		panic(fmt.Sprintf("ssm: krylov: length must be positive, got %d", length))
	}

	result, err := tensor.NewRaw(tensor.Shape{length}, a.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("ssm: krylov: %v", err))
	}

	state := b
	for l := 0; l < length; l++ {
		if l > 0 {
			state = bk.MatMul(a, state)
		}
		writeElement(result, l, bk.MM(c, state))
	}
	return result
}

// writeElement copies the single value of a [1, 1] tensor into out[idx].
func writeElement(out *tensor.RawTensor, idx int, scalar *tensor.RawTensor) {
	switch out.DType() {
	case tensor.Float32:
		out.AsFloat32()[idx] = scalar.AsFloat32()[0]
	case tensor.Float64:
		out.AsFloat64()[idx] = scalar.AsFloat64()[0]
	case tensor.Complex64:
		out.AsComplex64()[idx] = scalar.AsComplex64()[0]
	case tensor.Complex128:
		out.AsComplex128()[idx] = scalar.AsComplex128()[0]
	default:
		panic(fmt.Sprintf("ssm: krylov: unsupported dtype %s", out.DType()))
	}
}
