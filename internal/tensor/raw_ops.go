// Shared shape-manipulation primitives on RawTensor. Backends delegate here
// so CPU, accelerator and test backends agree on the semantics.
package tensor

import "fmt"

// Reshape returns a tensor with the same data and a new shape.
// The element count must be preserved.
func Reshape(x *RawTensor, newShape Shape) (*RawTensor, error) {
	if err := newShape.Validate(); err != nil {
		return nil, fmt.Errorf("reshape: invalid shape: %w", err)
	}
	if x.NumElements() != newShape.NumElements() {
		return nil, fmt.Errorf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			x.Shape(), x.NumElements(), newShape, newShape.NumElements())
	}

	result, err := NewRaw(newShape, x.DType(), x.Device())
	if err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	copy(result.Data(), x.Data()[:x.ByteSize()])
	return result, nil
}

// TransposeAxes permutes the tensor's dimensions. With no axes given, the
// dimension order is reversed (the usual matrix transpose for 2D).
func TransposeAxes(x *RawTensor, axes ...int) (*RawTensor, error) {
	rank := len(x.Shape())
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		return nil, fmt.Errorf("transpose: got %d axes for rank-%d tensor", len(axes), rank)
	}

	seen := make([]bool, rank)
	newShape := make(Shape, rank)
	for i, a := range axes {
		if a < 0 || a >= rank || seen[a] {
			return nil, fmt.Errorf("transpose: invalid axes permutation %v", axes)
		}
		seen[a] = true
		newShape[i] = x.Shape()[a]
	}

	result, err := NewRaw(newShape, x.DType(), x.Device())
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	switch x.DType() {
	case Float32:
		transposeData(x.AsFloat32(), result.AsFloat32(), x.Shape(), newShape, axes)
	case Float64:
		transposeData(x.AsFloat64(), result.AsFloat64(), x.Shape(), newShape, axes)
	case Int32:
		transposeData(x.AsInt32(), result.AsInt32(), x.Shape(), newShape, axes)
	case Int64:
		transposeData(x.AsInt64(), result.AsInt64(), x.Shape(), newShape, axes)
	case Complex64:
		transposeData(x.AsComplex64(), result.AsComplex64(), x.Shape(), newShape, axes)
	case Complex128:
		transposeData(x.AsComplex128(), result.AsComplex128(), x.Shape(), newShape, axes)
	default:
		return nil, fmt.Errorf("transpose: unsupported dtype %s", x.DType())
	}
	return result, nil
}

// transposeData walks the output in row-major order and maps every
// coordinate back through the axes permutation.
func transposeData[T any](in, out []T, oldShape, newShape Shape, axes []int) {
	oldStrides := oldShape.ComputeStrides()
	newStrides := newShape.ComputeStrides()

	for i := range out {
		remaining := i
		oldOff := 0
		for d := 0; d < len(newShape); d++ {
			coord := remaining / newStrides[d]
			remaining %= newStrides[d]
			oldOff += coord * oldStrides[axes[d]]
		}
		out[i] = in[oldOff]
	}
}
