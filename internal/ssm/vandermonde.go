// Package ssm implements structured state-space kernel computations: the
// Vandermonde-style parameter construction and the convolution kernels built
// from it. All contractions go through the supplied backend, so running on an
// accelerator with complex parameters works transparently when the backend is
// wrapped with compat dispatch.
package ssm

import (
	"fmt"

	"github.com/Sequel-Institute/s4/internal/tensor"
)

// number is the constraint for dtypes the kernel builders operate on.
type number interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Vandermonde builds the node-power matrix V[n, l] = nodes[n]^l for
// l in [0, length). nodes must be a 1D float or complex tensor; the result
// is created on the nodes' device.
func Vandermonde(nodes *tensor.RawTensor, length int) *tensor.RawTensor {
	if len(nodes.Shape()) != 1 {
		panic(fmt.Sprintf("ssm: vandermonde: nodes must be 1D, got shape %v", nodes.Shape()))
	}
	if length <= 0 {
		panic(fmt.Sprintf("ssm: vandermonde: length must be positive, got %d", length))
	}

	n := nodes.Shape()[0]
	result, err := tensor.NewRaw(tensor.Shape{n, length}, nodes.DType(), nodes.Device())
	if err != nil {
		panic(fmt.Sprintf("ssm: vandermonde: %v", err))
	}

	switch nodes.DType() {
	case tensor.Float32:
		vandermondeKernel(result.AsFloat32(), nodes.AsFloat32(), length)
	case tensor.Float64:
		vandermondeKernel(result.AsFloat64(), nodes.AsFloat64(), length)
	case tensor.Complex64:
		vandermondeKernel(result.AsComplex64(), nodes.AsComplex64(), length)
	case tensor.Complex128:
		vandermondeKernel(result.AsComplex128(), nodes.AsComplex128(), length)
	default:
		panic(fmt.Sprintf("ssm: vandermonde: unsupported dtype %s", nodes.DType()))
	}
	return result
}

// vandermondeKernel fills one geometric row per node.
func vandermondeKernel[T number](out, nodes []T, length int) {
	for i, z := range nodes {
		acc := T(1)
		for l := 0; l < length; l++ {
			out[i*length+l] = acc
			acc *= z
		}
	}
}

// ConvKernel computes the length-L state-space convolution kernel
//
//	K[l] = Σ_n c[n] · b[n] · nodes[n]^l
//
// as a single three-operand contraction over the Vandermonde matrix.
// c, b and nodes must be 1D tensors of equal length and one dtype.
func ConvKernel(bk tensor.Backend, c, b, nodes *tensor.RawTensor, length int) *tensor.RawTensor {
	v := Vandermonde(nodes, length)
	return bk.Einsum("n,n,nl->l", c, b, v)
}
