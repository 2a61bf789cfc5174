package tensor

// Add performs element-wise addition.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.Add(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// Sub performs element-wise subtraction.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.Sub(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// Mul performs element-wise multiplication.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.Mul(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// Div performs element-wise division.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.Div(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// MatMul performs a generalized matrix product.
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.MatMul(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// BatchMatMul performs batched matrix multiplication.
func (t *Tensor[T, B]) BatchMatMul(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.BatchMatMul(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// MM performs a strict 2D matrix product.
func (t *Tensor[T, B]) MM(other *Tensor[T, B]) *Tensor[T, B] {
	raw := t.backend.MM(t.raw, other.raw)
	return New[T, B](raw, t.backend)
}

// Contract performs an Einstein-summation contraction over the tensors.
// All tensors must share the first tensor's backend.
func Contract[T DType, B Backend](spec string, tensors ...*Tensor[T, B]) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("contract: no operands provided")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	raw := tensors[0].backend.Einsum(spec, raws...)
	return New[T, B](raw, tensors[0].backend)
}

// Reshape returns a tensor with a new shape.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	raw := t.backend.Reshape(t.raw, Shape(newShape))
	return New[T, B](raw, t.backend)
}

// Transpose permutes the tensor's dimensions.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	raw := t.backend.Transpose(t.raw, axes...)
	return New[T, B](raw, t.backend)
}

// T returns the matrix transpose (reverses all dimensions).
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	return t.Transpose()
}
