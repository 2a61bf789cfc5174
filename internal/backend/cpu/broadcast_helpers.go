package cpu

import "github.com/Sequel-Institute/s4/internal/tensor"

// broadcastOffset maps a flat index into the broadcasted output shape back to
// a flat index into a (possibly smaller) source shape, pinning broadcast
// dimensions to coordinate 0.
func broadcastOffset(flatIdx int, outShape, srcShape tensor.Shape) int {
	if outShape.Equal(srcShape) {
		return flatIdx
	}

	srcStrides := srcShape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	offset := 0
	remaining := flatIdx

	for i := 0; i < len(outShape); i++ {
		coord := remaining / outStrides[i]
		remaining %= outStrides[i]

		srcDim := i - (len(outShape) - len(srcShape))
		if srcDim < 0 || srcShape[srcDim] == 1 {
			continue
		}
		offset += coord * srcStrides[srcDim]
	}
	return offset
}
