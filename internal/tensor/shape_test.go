package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Shape{2,3}.Validate() = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Shape{2,0}.Validate() = nil, want error")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("Shape{-1,3}.Validate() = nil, want error")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides = %v, want %v", strides, want)
			break
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		broadcast  bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{Shape{3, 1}, Shape{3, 4}, Shape{3, 4}, true},
		{Shape{1}, Shape{2, 3}, Shape{2, 3}, true},
		{Shape{4}, Shape{2, 3, 4}, Shape{2, 3, 4}, true},
	}

	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) error: %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if broadcast != tt.broadcast {
			t.Errorf("BroadcastShapes(%v, %v) broadcast = %v, want %v", tt.a, tt.b, broadcast, tt.broadcast)
		}
	}
}

func TestBroadcastShapes_Incompatible(t *testing.T) {
	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{2, 4}); err == nil {
		t.Error("expected error for incompatible shapes")
	}
}

func TestBroadcastBatchShapes(t *testing.T) {
	// [2, 1, 3, 4] @ [5, 4, 6] -> batch [2, 5]
	batch, err := BroadcastBatchShapes(Shape{2, 1, 3, 4}, Shape{5, 4, 6})
	if err != nil {
		t.Fatal(err)
	}
	if !batch.Equal(Shape{2, 5}) {
		t.Errorf("batch = %v, want [2 5]", batch)
	}

	// Equal 2D operands have an empty batch.
	batch, err = BroadcastBatchShapes(Shape{3, 4}, Shape{4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(batch) != 0 {
		t.Errorf("batch = %v, want empty", batch)
	}
}

func TestBroadcastOffset(t *testing.T) {
	out := Shape{2, 3}
	src := Shape{1, 3}

	// Rows collapse onto the single source row.
	for i := 0; i < 6; i++ {
		want := i % 3
		if got := broadcastOffset(i, out, src); got != want {
			t.Errorf("broadcastOffset(%d, %v, %v) = %d, want %d", i, out, src, got, want)
		}
	}

	// Identical shapes map straight through.
	if got := broadcastOffset(4, out, out); got != 4 {
		t.Errorf("broadcastOffset identity = %d, want 4", got)
	}
}
