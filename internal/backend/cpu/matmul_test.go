package cpu

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/Sequel-Institute/s4/internal/tensor"
)

func TestMM_Float32(t *testing.T) {
	backend := New()

	// [[1 2] [3 4]] @ [[5 6] [7 8]] = [[19 22] [43 50]]
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	result := backend.MM(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", result.Shape())
	}
	want := []float32{19, 22, 43, 50}
	for i, v := range result.AsFloat32() {
		if math.Abs(float64(v-want[i])) > 1e-6 {
			t.Errorf("result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMM_NonSquare(t *testing.T) {
	backend := New()

	// (2, 3) @ (3, 4) -> (2, 4)
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b, _ := tensor.NewRaw(tensor.Shape{3, 4}, tensor.Float32, tensor.CPU)
	bData := b.AsFloat32()
	for i := range bData {
		bData[i] = float32(i)
	}

	result := backend.MM(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("shape = %v, want [2 4]", result.Shape())
	}

	// row 0: [1 2 3] . columns of b
	got := result.AsFloat32()
	wantRow0 := []float32{
		1*0 + 2*4 + 3*8,
		1*1 + 2*5 + 3*9,
		1*2 + 2*6 + 3*10,
		1*3 + 2*7 + 3*11,
	}
	for j, want := range wantRow0 {
		if got[j] != want {
			t.Errorf("result[0,%d] = %v, want %v", j, got[j], want)
		}
	}
}

func TestMM_Complex64(t *testing.T) {
	backend := New()

	// Multiply by i: rotates each entry.
	a := rawComplex64(t, []complex64{1 + 2i, 3, 0, 1i}, tensor.Shape{2, 2})
	b := rawComplex64(t, []complex64{1i, 0, 0, 1i}, tensor.Shape{2, 2})

	result := backend.MM(a, b)

	want := []complex64{-2 + 1i, 3i, 0, -1}
	for i, v := range result.AsComplex64() {
		if cmplx.Abs(complex128(v-want[i])) > 1e-6 {
			t.Errorf("result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMM_Complex128(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Complex128, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{3, 2}, tensor.Complex128, tensor.CPU)
	aData, bData := a.AsComplex128(), b.AsComplex128()
	for i := range aData {
		aData[i] = complex(float64(i+1), float64(-i))
	}
	for i := range bData {
		bData[i] = complex(float64(i), float64(i+1))
	}

	result := backend.MM(a, b)

	// Check against a direct triple-loop reference.
	got := result.AsComplex128()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var want complex128
			for k := 0; k < 3; k++ {
				want += aData[i*3+k] * bData[k*2+j]
			}
			if cmplx.Abs(got[i*2+j]-want) > 1e-12 {
				t.Errorf("result[%d,%d] = %v, want %v", i, j, got[i*2+j], want)
			}
		}
	}
}

func TestMM_ShapeMismatchPanics(t *testing.T) {
	backend := New()

	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for inner dimension mismatch")
		}
	}()
	backend.MM(a, b)
}

func TestMM_Rejects3D(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float32, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float32, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for 3D operands")
		}
	}()
	backend.MM(a, b)
}

func TestMatMul_2DDelegatesToMM(t *testing.T) {
	backend := New()

	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	mm := backend.MM(a, b).AsFloat32()
	matmul := backend.MatMul(a, b).AsFloat32()
	for i := range mm {
		if mm[i] != matmul[i] {
			t.Errorf("MatMul[%d] = %v, MM[%d] = %v", i, matmul[i], i, mm[i])
		}
	}
}

func TestMatMul_BroadcastBatch(t *testing.T) {
	backend := New()

	// [2, 2, 2] @ [2, 2]: the 2D operand broadcasts across both batches.
	a, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float64, tensor.CPU)
	aData := a.AsFloat64()
	for i := range aData {
		aData[i] = float64(i + 1)
	}
	eye, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float64, tensor.CPU)
	eyeData := eye.AsFloat64()
	eyeData[0], eyeData[3] = 1, 1

	result := backend.MatMul(a, eye)

	if !result.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("shape = %v, want [2 2 2]", result.Shape())
	}
	for i, v := range result.AsFloat64() {
		if v != aData[i] {
			t.Errorf("result[%d] = %v, want %v", i, v, aData[i])
		}
	}
}

func TestMatMul_BroadcastBatchComplex(t *testing.T) {
	backend := New()

	// [3, 2, 2] @ [1, 2, 2] with complex entries.
	a, _ := tensor.NewRaw(tensor.Shape{3, 2, 2}, tensor.Complex128, tensor.CPU)
	aData := a.AsComplex128()
	for i := range aData {
		aData[i] = complex(float64(i), float64(i%3))
	}
	scale, _ := tensor.NewRaw(tensor.Shape{1, 2, 2}, tensor.Complex128, tensor.CPU)
	sData := scale.AsComplex128()
	sData[0], sData[3] = 2i, 2i

	result := backend.MatMul(a, scale)

	if !result.Shape().Equal(tensor.Shape{3, 2, 2}) {
		t.Fatalf("shape = %v, want [3 2 2]", result.Shape())
	}
	for i, v := range result.AsComplex128() {
		want := aData[i] * 2i
		if cmplx.Abs(v-want) > 1e-12 {
			t.Errorf("result[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMatMul_IncompatibleBatchPanics(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 2, 2}, tensor.Float32, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{3, 2, 2}, tensor.Float32, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for incompatible batch dimensions")
		}
	}()
	backend.MatMul(a, b)
}
