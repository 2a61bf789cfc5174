package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatal(err)
	}

	if !raw.Shape().Equal(Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != Float32 {
		t.Errorf("dtype = %v, want Float32", raw.DType())
	}
	if raw.Device() != CPU {
		t.Errorf("device = %v, want CPU", raw.Device())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("byte size = %d, want 24", raw.ByteSize())
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestRawTensorComplexAccessors(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Complex64, CPU)
	if err != nil {
		t.Fatal(err)
	}

	data := raw.AsComplex64()
	if len(data) != 4 {
		t.Fatalf("len = %d, want 4", len(data))
	}
	data[0] = 1 + 2i
	data[3] = -3i

	again := raw.AsComplex64()
	if again[0] != 1+2i || again[3] != -3i {
		t.Errorf("values not retained: %v", again)
	}

	if raw.ByteSize() != 4*8 {
		t.Errorf("byte size = %d, want 32", raw.ByteSize())
	}
}

func TestRawTensorAccessorDTypeMismatch(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for dtype mismatch")
		}
	}()
	raw.AsComplex128()
}

func TestRawTensorTo_SameDevice(t *testing.T) {
	raw, _ := NewRaw(Shape{3}, Float32, WebGPU)

	moved := raw.To(WebGPU)
	if moved != raw {
		t.Error("To(same device) must return the receiver unchanged")
	}
}

func TestRawTensorTo_CrossDevice(t *testing.T) {
	raw, _ := NewRaw(Shape{3}, Complex64, WebGPU)
	data := raw.AsComplex64()
	data[0], data[1], data[2] = 1i, 2, 3+3i

	moved := raw.To(CPU)
	if moved == raw {
		t.Fatal("To(other device) must return a new tensor")
	}
	if moved.Device() != CPU {
		t.Errorf("device = %v, want CPU", moved.Device())
	}
	if moved.DType() != Complex64 {
		t.Errorf("dtype = %v, want Complex64", moved.DType())
	}
	if !moved.Shape().Equal(raw.Shape()) {
		t.Errorf("shape = %v, want %v", moved.Shape(), raw.Shape())
	}

	got := moved.AsComplex64()
	for i, want := range data {
		if got[i] != want {
			t.Errorf("value[%d] = %v, want %v", i, got[i], want)
		}
	}

	// The copy is deep: writing through one side must not leak to the other.
	got[0] = 99
	if data[0] == 99 {
		t.Error("cross-device copy shares memory with the source")
	}
	if raw.Device() != WebGPU {
		t.Error("source tensor was retagged by To")
	}
}

func TestRawTensorClone(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float64, CPU)
	raw.AsFloat64()[1] = 7

	clone := raw.Clone()
	if clone.AsFloat64()[1] != 7 {
		t.Error("clone does not see original data")
	}
	if clone.Device() != raw.Device() || clone.DType() != raw.DType() {
		t.Error("clone metadata differs from original")
	}
}
