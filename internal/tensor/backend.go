package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - internal/backend/cpu: the capable fallback device, full operator set
//     for every dtype including complex
//   - internal/backend/webgpu: the accelerator, real-valued dtypes only
//   - internal/compat: decorator that wraps an accelerator backend and
//     reroutes complex contractions through a capable fallback
//
// Shape or dtype precondition violations panic; backends never return errors
// from compute methods.
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul performs a generalized matrix product: 2D operands multiply
	// directly, higher-rank operands are treated as batches of matrices with
	// NumPy-style broadcasting over the batch dimensions.
	MatMul(a, b *RawTensor) *RawTensor

	// BatchMatMul performs batched matrix multiplication for 3D/4D tensors
	// with equal batch dimensions.
	// For 3D: [B, M, K] @ [B, K, N] -> [B, M, N]
	// For 4D: [B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
	BatchMatMul(a, b *RawTensor) *RawTensor

	// MM performs a strict 2D-by-2D matrix product, no batching.
	MM(a, b *RawTensor) *RawTensor

	// Einsum performs an Einstein-summation contraction described by spec,
	// e.g. "ij,jk->ik". The spec string is passed through unmodified.
	Einsum(spec string, operands ...*RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
