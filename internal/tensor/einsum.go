package tensor

import (
	"fmt"
	"strings"
)

// numeric is the constraint for dtypes that participate in arithmetic kernels.
type numeric interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~complex64 | ~complex128
}

// einsumPlan is the fully resolved contraction: one entry per distinct index
// label, with the label's extent and its stride contribution to each operand
// and to the output. Repeated labels within one term (e.g. the trace "ii->")
// accumulate their strides.
type einsumPlan struct {
	sizes     []int   // extent per label
	outShape  Shape   // shape of the result
	outStride []int   // per label, contribution to the output offset
	inStride  [][]int // per operand, per label, contribution to the operand offset
}

// Einsum computes an Einstein-summation contraction over the operands.
//
// The spec uses the usual notation with an explicit arrow, e.g. "ij,jk->ik",
// "n,nl->l" or "bij,bjk->bik". Index labels are single ASCII letters.
// Ellipsis is not supported. Labels absent from the output are summed over.
//
// All operands must share one dtype; the result is created on the first
// operand's device.
func Einsum(spec string, operands ...*RawTensor) (*RawTensor, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("einsum: no operands provided")
	}

	dtype := operands[0].DType()
	for i, op := range operands[1:] {
		if op.DType() != dtype {
			return nil, fmt.Errorf("einsum: dtype mismatch: operand 0 is %s, operand %d is %s",
				dtype, i+1, op.DType())
		}
	}

	plan, err := parseEinsum(spec, operands)
	if err != nil {
		return nil, err
	}

	result, err := NewRaw(plan.outShape, dtype, operands[0].Device())
	if err != nil {
		return nil, fmt.Errorf("einsum: %w", err)
	}

	switch dtype {
	case Float32:
		einsumKernel(result.AsFloat32(), asSlices(operands, (*RawTensor).AsFloat32), plan)
	case Float64:
		einsumKernel(result.AsFloat64(), asSlices(operands, (*RawTensor).AsFloat64), plan)
	case Int32:
		einsumKernel(result.AsInt32(), asSlices(operands, (*RawTensor).AsInt32), plan)
	case Int64:
		einsumKernel(result.AsInt64(), asSlices(operands, (*RawTensor).AsInt64), plan)
	case Complex64:
		einsumKernel(result.AsComplex64(), asSlices(operands, (*RawTensor).AsComplex64), plan)
	case Complex128:
		einsumKernel(result.AsComplex128(), asSlices(operands, (*RawTensor).AsComplex128), plan)
	default:
		return nil, fmt.Errorf("einsum: unsupported dtype %s", dtype)
	}
	return result, nil
}

// asSlices collects the typed data view of every operand.
func asSlices[T any](operands []*RawTensor, view func(*RawTensor) []T) [][]T {
	out := make([][]T, len(operands))
	for i, op := range operands {
		out[i] = view(op)
	}
	return out
}

// parseEinsum validates the spec against the operands and resolves labels
// into the stride table the kernel iterates over.
func parseEinsum(spec string, operands []*RawTensor) (*einsumPlan, error) {
	lhs, rhs, ok := strings.Cut(spec, "->")
	if !ok {
		return nil, fmt.Errorf("einsum: spec %q has no '->' output part", spec)
	}

	terms := strings.Split(lhs, ",")
	if len(terms) != len(operands) {
		return nil, fmt.Errorf("einsum: spec %q names %d operands, got %d", spec, len(terms), len(operands))
	}

	labelID := map[rune]int{}
	var sizes []int

	idOf := func(r rune) (int, error) {
		if !isEinsumLabel(r) {
			return 0, fmt.Errorf("einsum: invalid index label %q in spec %q", r, spec)
		}
		if id, exists := labelID[r]; exists {
			return id, nil
		}
		id := len(sizes)
		labelID[r] = id
		sizes = append(sizes, -1)
		return id, nil
	}

	// Resolve input terms against operand shapes.
	inLabels := make([][]int, len(operands))
	for i, term := range terms {
		labels := []rune(term)
		shape := operands[i].Shape()
		if len(labels) != len(shape) {
			return nil, fmt.Errorf("einsum: term %q expects rank %d, operand %d has shape %v",
				term, len(labels), i, shape)
		}
		inLabels[i] = make([]int, len(labels))
		for axis, r := range labels {
			id, err := idOf(r)
			if err != nil {
				return nil, err
			}
			if sizes[id] == -1 {
				sizes[id] = shape[axis]
			} else if sizes[id] != shape[axis] {
				return nil, fmt.Errorf("einsum: size mismatch for label %q: %d vs %d",
					r, sizes[id], shape[axis])
			}
			inLabels[i][axis] = id
		}
	}

	// Resolve the output term.
	seen := map[rune]bool{}
	outLabels := make([]int, 0, len(rhs))
	outShape := make(Shape, 0, len(rhs))
	for _, r := range rhs {
		if seen[r] {
			return nil, fmt.Errorf("einsum: repeated output label %q in spec %q", r, spec)
		}
		seen[r] = true
		id, exists := labelID[r]
		if !exists {
			return nil, fmt.Errorf("einsum: output label %q does not appear in any input term", r)
		}
		outLabels = append(outLabels, id)
		outShape = append(outShape, sizes[id])
	}

	plan := &einsumPlan{
		sizes:     sizes,
		outShape:  outShape,
		outStride: make([]int, len(sizes)),
		inStride:  make([][]int, len(operands)),
	}

	outStrides := outShape.ComputeStrides()
	for axis, id := range outLabels {
		plan.outStride[id] += outStrides[axis]
	}
	for i, labels := range inLabels {
		plan.inStride[i] = make([]int, len(sizes))
		strides := operands[i].Shape().ComputeStrides()
		for axis, id := range labels {
			plan.inStride[i][id] += strides[axis]
		}
	}
	return plan, nil
}

func isEinsumLabel(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// einsumKernel runs the naive sum-of-products contraction: one odometer over
// every label, accumulating into the output offset determined by the output
// labels. Summed labels simply have zero output stride.
func einsumKernel[T numeric](out []T, inputs [][]T, plan *einsumPlan) {
	counters := make([]int, len(plan.sizes))
	for {
		outOff := 0
		for l, c := range counters {
			outOff += c * plan.outStride[l]
		}

		prod := T(1)
		for i, data := range inputs {
			off := 0
			for l, c := range counters {
				off += c * plan.inStride[i][l]
			}
			prod *= data[off]
		}
		out[outOff] += prod

		// Odometer increment over all labels, most-minor last.
		l := len(counters) - 1
		for ; l >= 0; l-- {
			counters[l]++
			if counters[l] < plan.sizes[l] {
				break
			}
			counters[l] = 0
		}
		if l < 0 {
			return
		}
	}
}
