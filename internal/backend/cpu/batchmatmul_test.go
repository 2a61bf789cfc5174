package cpu

import (
	"math/cmplx"
	"testing"

	"github.com/Sequel-Institute/s4/internal/tensor"
)

func TestBatchMatMul_3D(t *testing.T) {
	backend := New()

	// [2, 2, 2] @ [2, 2, 2], batch 0 is identity, batch 1 doubles.
	a, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float32, tensor.CPU)
	aData := a.AsFloat32()
	for i := range aData {
		aData[i] = float32(i + 1)
	}
	b, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float32, tensor.CPU)
	bData := b.AsFloat32()
	bData[0], bData[3] = 1, 1
	bData[4], bData[7] = 2, 2

	result := backend.BatchMatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("shape = %v, want [2 2 2]", result.Shape())
	}
	want := []float32{1, 2, 3, 4, 10, 12, 14, 16}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestBatchMatMul_4D(t *testing.T) {
	backend := New()

	// [2, 3, 4, 5] @ [2, 3, 5, 6] -> [2, 3, 4, 6]
	a, _ := tensor.NewRaw(tensor.Shape{2, 3, 4, 5}, tensor.Float64, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{2, 3, 5, 6}, tensor.Float64, tensor.CPU)
	aData, bData := a.AsFloat64(), b.AsFloat64()
	for i := range aData {
		aData[i] = float64(i%7) + 1
	}
	for i := range bData {
		bData[i] = float64(i%5) + 1
	}

	result := backend.BatchMatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 3, 4, 6}) {
		t.Fatalf("shape = %v, want [2 3 4 6]", result.Shape())
	}

	// Spot-check the last batch slice against a direct reference.
	batch := 5 // flat index of batch (1, 2)
	got := result.AsFloat64()
	for i := 0; i < 4; i++ {
		for j := 0; j < 6; j++ {
			var want float64
			for k := 0; k < 5; k++ {
				want += aData[batch*20+i*5+k] * bData[batch*30+k*6+j]
			}
			if got[batch*24+i*6+j] != want {
				t.Errorf("result[b=%d,%d,%d] = %v, want %v", batch, i, j, got[batch*24+i*6+j], want)
			}
		}
	}
}

func TestBatchMatMul_Complex(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Complex128, tensor.CPU)
	aData := a.AsComplex128()
	for i := range aData {
		aData[i] = complex(float64(i), 1)
	}
	// Per-batch identity.
	eye, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Complex128, tensor.CPU)
	eyeData := eye.AsComplex128()
	eyeData[0], eyeData[3] = 1, 1
	eyeData[4], eyeData[7] = 1, 1

	result := backend.BatchMatMul(a, eye)

	for i, v := range result.AsComplex128() {
		if cmplx.Abs(v-aData[i]) > 1e-12 {
			t.Errorf("result[%d] = %v, want %v", i, v, aData[i])
		}
	}
}

func TestBatchMatMul_RejectsBroadcast(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float32, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{1, 2, 2}, tensor.Float32, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic: BatchMatMul requires equal batch dimensions")
		}
	}()
	backend.BatchMatMul(a, b)
}

func TestBatchMatMul_Rejects2D(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float32, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float32, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for 2D operands")
		}
	}()
	backend.BatchMatMul(a, b)
}
