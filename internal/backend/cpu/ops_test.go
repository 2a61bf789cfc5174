package cpu

import (
	"testing"

	"github.com/Sequel-Institute/s4/internal/tensor"
)

func rawFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func rawComplex64(t *testing.T, data []complex64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Complex64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsComplex64(), data)
	return raw
}

func TestAdd(t *testing.T) {
	backend := New()

	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)

	want := []float32{11, 22, 33, 44}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestAdd_Broadcast(t *testing.T) {
	backend := New()

	// [2, 3] + [1, 3] broadcasts the single row.
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	result := backend.Add(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", result.Shape())
	}
	want := []float32{11, 22, 33, 14, 25, 36}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMulComplex(t *testing.T) {
	backend := New()

	a := rawComplex64(t, []complex64{1 + 1i, 2i}, tensor.Shape{2})
	b := rawComplex64(t, []complex64{1 - 1i, 3}, tensor.Shape{2})

	result := backend.Mul(a, b)

	want := []complex64{2, 6i}
	for i, v := range result.AsComplex64() {
		if v != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestSubDiv(t *testing.T) {
	backend := New()

	a := rawFloat32(t, []float32{10, 20}, tensor.Shape{2})
	b := rawFloat32(t, []float32{2, 5}, tensor.Shape{2})

	sub := backend.Sub(a, b).AsFloat32()
	if sub[0] != 8 || sub[1] != 15 {
		t.Errorf("Sub = %v, want [8 15]", sub)
	}

	div := backend.Div(a, b).AsFloat32()
	if div[0] != 5 || div[1] != 4 {
		t.Errorf("Div = %v, want [5 4]", div)
	}
}

func TestBinaryDTypeMismatchPanics(t *testing.T) {
	backend := New()

	a := rawFloat32(t, []float32{1}, tensor.Shape{1})
	b, _ := tensor.NewRaw(tensor.Shape{1}, tensor.Float64, tensor.CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for dtype mismatch")
		}
	}()
	backend.Add(a, b)
}

func TestEinsumThroughBackend(t *testing.T) {
	backend := New()

	a := rawComplex64(t, []complex64{1 + 1i, 2, 3i, 4}, tensor.Shape{2, 2})
	eye := rawComplex64(t, []complex64{1, 0, 0, 1}, tensor.Shape{2, 2})

	result := backend.Einsum("ij,jk->ik", a, eye)

	want := []complex64{1 + 1i, 2, 3i, 4}
	for i, v := range result.AsComplex64() {
		if v != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestReshapeTranspose(t *testing.T) {
	backend := New()

	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	r := backend.Reshape(a, tensor.Shape{3, 2})
	if !r.Shape().Equal(tensor.Shape{3, 2}) {
		t.Errorf("reshape shape = %v, want [3 2]", r.Shape())
	}

	tr := backend.Transpose(a)
	if !tr.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("transpose shape = %v, want [3 2]", tr.Shape())
	}
	// Row 0 of the transpose is column 0 of the original.
	got := tr.AsFloat32()
	if got[0] != 1 || got[1] != 4 {
		t.Errorf("transpose row 0 = [%v %v], want [1 4]", got[0], got[1])
	}
}

func TestName(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", backend.Device())
	}
}
