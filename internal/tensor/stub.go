package tensor

import (
	"fmt"
	"sync"
)

// Verify that StubBackend implements Backend.
var _ Backend = (*StubBackend)(nil)

// StubBackend is a simple backend for testing. It implements the operator set
// naively for correctness verification, reports a configurable device, and
// records every operation invoked on it.
//
// Like the real accelerator it stands in for, it refuses complex dtypes:
// any primitive invoked with a complex operand panics. This makes it a probe
// for dispatch decisions: a complex operand reaching the stub means the
// fallback path was not taken.
type StubBackend struct {
	device Device

	mu    sync.Mutex
	calls []string
}

// NewStubBackend creates a StubBackend posing as the given device.
func NewStubBackend(device Device) *StubBackend {
	return &StubBackend{device: device}
}

// Name returns the backend name.
func (m *StubBackend) Name() string {
	return "stub(" + m.device.String() + ")"
}

// Device returns the device type this stub poses as.
func (m *StubBackend) Device() Device {
	return m.device
}

// Calls returns the names of all operations invoked so far.
func (m *StubBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ResetCalls clears the recorded operations.
func (m *StubBackend) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = m.calls[:0]
}

func (m *StubBackend) record(op string, operands ...*RawTensor) {
	for _, t := range operands {
		if t.DType().IsComplex() {
			panic(fmt.Sprintf("stub: %s does not support %s on %s", op, t.DType(), m.device))
		}
	}
	m.mu.Lock()
	m.calls = append(m.calls, op)
	m.mu.Unlock()
}

// Add performs element-wise addition with broadcasting.
func (m *StubBackend) Add(a, b *RawTensor) *RawTensor {
	m.record("Add", a, b)
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *StubBackend) Sub(a, b *RawTensor) *RawTensor {
	m.record("Sub", a, b)
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *StubBackend) Mul(a, b *RawTensor) *RawTensor {
	m.record("Mul", a, b)
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *StubBackend) Div(a, b *RawTensor) *RawTensor {
	m.record("Div", a, b)
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// elementWise performs element-wise operations with broadcasting,
// staged through float64 for generic processing.
func (m *StubBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.device)
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, outShape.NumElements())

	for i := range resultData {
		aIdx := broadcastOffset(i, outShape, a.Shape())
		bIdx := broadcastOffset(i, outShape, b.Shape())
		resultData[i] = op(aData[aIdx], bData[bIdx])
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// MM performs a strict 2D matrix product.
func (m *StubBackend) MM(a, b *RawTensor) *RawTensor {
	m.record("MM", a, b)
	return m.matmul2D(a, b)
}

// MatMul performs matrix multiplication. The stub supports 2D operands and
// 3D operands with equal batch dimensions.
func (m *StubBackend) MatMul(a, b *RawTensor) *RawTensor {
	m.record("MatMul", a, b)
	if len(a.Shape()) == 2 && len(b.Shape()) == 2 {
		return m.matmul2D(a, b)
	}
	return m.batchMatmul(a, b)
}

// BatchMatMul performs batched matrix multiplication for 3D tensors.
func (m *StubBackend) BatchMatMul(a, b *RawTensor) *RawTensor {
	m.record("BatchMatMul", a, b)
	return m.batchMatmul(a, b)
}

// Einsum performs an Einstein-summation contraction.
func (m *StubBackend) Einsum(spec string, operands ...*RawTensor) *RawTensor {
	m.record("Einsum", operands...)
	result, err := Einsum(spec, operands...)
	if err != nil {
		panic(fmt.Sprintf("stub: einsum: %v", err))
	}
	result.device = m.device
	return result
}

// Reshape returns a tensor with a new shape.
func (m *StubBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	m.record("Reshape", t)
	result, err := Reshape(t, newShape)
	if err != nil {
		panic(fmt.Sprintf("stub: %v", err))
	}
	result.device = m.device
	return result
}

// Transpose permutes the tensor's dimensions.
func (m *StubBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	m.record("Transpose", t)
	result, err := TransposeAxes(t, axes...)
	if err != nil {
		panic(fmt.Sprintf("stub: %v", err))
	}
	result.device = m.device
	return result
}

func (m *StubBackend) matmul2D(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("stub: mm requires 2D tensors, got %v and %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("stub: incompatible shapes for mm: %v @ %v", aShape, bShape))
	}

	rows, inner, cols := aShape[0], aShape[1], bShape[1]
	result, err := NewRaw(Shape{rows, cols}, a.DType(), m.device)
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	out := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum := 0.0
			for k := 0; k < inner; k++ {
				sum += aData[i*inner+k] * bData[k*cols+j]
			}
			out[i*cols+j] = sum
		}
	}
	m.fromFloat64Slice(out, result)
	return result
}

func (m *StubBackend) batchMatmul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 3 || len(bShape) != 3 {
		panic(fmt.Sprintf("stub: batch matmul requires 3D tensors, got %v and %v", aShape, bShape))
	}
	if aShape[0] != bShape[0] {
		panic(fmt.Sprintf("stub: batch size mismatch: %d vs %d", aShape[0], bShape[0]))
	}
	if aShape[2] != bShape[1] {
		panic(fmt.Sprintf("stub: incompatible shapes for batch matmul: %v @ %v", aShape, bShape))
	}

	batch, rows, inner, cols := aShape[0], aShape[1], aShape[2], bShape[2]
	result, err := NewRaw(Shape{batch, rows, cols}, a.DType(), m.device)
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	out := make([]float64, batch*rows*cols)
	for n := 0; n < batch; n++ {
		aOff := n * rows * inner
		bOff := n * inner * cols
		cOff := n * rows * cols
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				sum := 0.0
				for k := 0; k < inner; k++ {
					sum += aData[aOff+i*inner+k] * bData[bOff+k*cols+j]
				}
				out[cOff+i*cols+j] = sum
			}
		}
	}
	m.fromFloat64Slice(out, result)
	return result
}

// toFloat64Slice stages any real dtype as []float64 for generic math.
func (m *StubBackend) toFloat64Slice(t *RawTensor) []float64 {
	n := t.NumElements()
	out := make([]float64, n)
	switch t.DType() {
	case Float32:
		for i, v := range t.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, t.AsFloat64())
	case Int32:
		for i, v := range t.AsInt32() {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range t.AsInt64() {
			out[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("stub: unsupported dtype %s", t.DType()))
	}
	return out
}

// fromFloat64Slice writes staged float64 values back in the result's dtype.
func (m *StubBackend) fromFloat64Slice(data []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		out := t.AsFloat32()
		for i, v := range data {
			out[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	case Int32:
		out := t.AsInt32()
		for i, v := range data {
			out[i] = int32(v)
		}
	case Int64:
		out := t.AsInt64()
		for i, v := range data {
			out[i] = int64(v)
		}
	default:
		panic(fmt.Sprintf("stub: unsupported dtype %s", t.DType()))
	}
}
