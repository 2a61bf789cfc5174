package cpu

import (
	"fmt"

	"github.com/Sequel-Institute/s4/internal/parallel"
	"github.com/Sequel-Institute/s4/internal/tensor"
)

// number is the constraint for dtypes with arithmetic kernels.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~complex64 | ~complex128
}

type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

func (op binOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	case opDiv:
		return "div"
	default:
		return "unknown"
	}
}

// Add performs element-wise addition with broadcasting.
func (cpu *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opAdd, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opSub, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opMul, a, b)
}

// Div performs element-wise division with broadcasting.
func (cpu *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opDiv, a, b)
}

func (cpu *Backend) binary(op binOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("cpu: %s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu: %s: %v", op, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: %s: %v", op, err))
	}

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), outShape, a.Shape(), b.Shape(), opFunc[float32](op), cpu.par)
	case tensor.Float64:
		binaryKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), outShape, a.Shape(), b.Shape(), opFunc[float64](op), cpu.par)
	case tensor.Int32:
		binaryKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), outShape, a.Shape(), b.Shape(), opFunc[int32](op), cpu.par)
	case tensor.Int64:
		binaryKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), outShape, a.Shape(), b.Shape(), opFunc[int64](op), cpu.par)
	case tensor.Complex64:
		binaryKernel(result.AsComplex64(), a.AsComplex64(), b.AsComplex64(), outShape, a.Shape(), b.Shape(), opFunc[complex64](op), cpu.par)
	case tensor.Complex128:
		binaryKernel(result.AsComplex128(), a.AsComplex128(), b.AsComplex128(), outShape, a.Shape(), b.Shape(), opFunc[complex128](op), cpu.par)
	default:
		panic(fmt.Sprintf("cpu: %s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

func opFunc[T number](op binOp) func(T, T) T {
	switch op {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	case opDiv:
		return func(x, y T) T { return x / y }
	default:
		panic("unknown binary op")
	}
}

func binaryKernel[T number](out, a, b []T, outShape, aShape, bShape tensor.Shape, f func(T, T) T, par parallel.Config) {
	if outShape.Equal(aShape) && outShape.Equal(bShape) {
		parallel.For(len(out), func(i int) {
			out[i] = f(a[i], b[i])
		}, par)
		return
	}
	parallel.For(len(out), func(i int) {
		out[i] = f(a[broadcastOffset(i, outShape, aShape)], b[broadcastOffset(i, outShape, bShape)])
	}, par)
}
