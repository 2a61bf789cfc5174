// Package compat provides the device-capability dispatch layer.
//
// Accelerator backends do not implement the full operator set for every
// dtype: WebGPU has no complex number support, so complex-valued
// contractions cannot run there. This package wraps an accelerator backend
// and transparently reroutes exactly those calls through a capable fallback
// device (relocate the operands, compute on the fallback, relocate the
// result back) while delegating everything else untouched. On supported
// device/dtype combinations the wrapper is a plain pass-through with no extra
// transfers or allocations.
//
// The wrapper is stateless beyond its two backend handles: every call decides
// independently, so it is safe for concurrent use.
package compat

import "github.com/Sequel-Institute/s4/internal/tensor"

// SupportsComplex reports whether a device can execute complex-valued
// linear-algebra primitives natively. This is static capability metadata,
// not runtime state: WebGPU is the one restricted device (WGSL has no
// complex type); every other backend is assumed capable.
func SupportsComplex(d tensor.Device) bool {
	return d != tensor.WebGPU
}

// Verify that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Backend decorates a native (accelerator) backend with complex-number
// fallback dispatch. The four contraction primitives (Einsum, MatMul,
// BatchMatMul and MM) are guarded; all other operations delegate directly
// to the native backend.
type Backend struct {
	native   tensor.Backend
	fallback tensor.Backend
}

// New wraps native with fallback dispatch through the given capable backend.
// The fallback backend must support the full operator set for complex dtypes
// (in practice: the CPU backend).
func New(native, fallback tensor.Backend) *Backend {
	return &Backend{native: native, fallback: fallback}
}

// Native returns the wrapped accelerator backend.
func (b *Backend) Native() tensor.Backend {
	return b.native
}

// Fallback returns the capable fallback backend.
func (b *Backend) Fallback() tensor.Backend {
	return b.fallback
}

// needsFallback decides the dispatch path for one call: fallback is required
// iff some operand resides on a complex-restricted device and some operand
// carries a complex dtype. Real-valued calls and calls with all operands on
// capable devices always take the fast path, whatever device they are on.
func needsFallback(operands []*tensor.RawTensor) bool {
	restricted := false
	for _, op := range operands {
		if !SupportsComplex(op.Device()) {
			restricted = true
			break
		}
	}
	if !restricted {
		return false
	}
	for _, op := range operands {
		if op.DType().IsComplex() {
			return true
		}
	}
	return false
}

// viaFallback runs the relocate/compute/relocate bracket: every operand
// resident on a restricted device is moved to the fallback device, run
// executes the primitive against the fallback backend, and the result is
// moved back to the original restricted device. Operands already on capable
// devices are passed through in place.
func (b *Backend) viaFallback(operands []*tensor.RawTensor, run func([]*tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	var home tensor.Device
	for _, op := range operands {
		if !SupportsComplex(op.Device()) {
			home = op.Device()
			break
		}
	}

	target := b.fallback.Device()
	moved := make([]*tensor.RawTensor, len(operands))
	for i, op := range operands {
		if !SupportsComplex(op.Device()) {
			moved[i] = op.To(target)
		} else {
			moved[i] = op
		}
	}
	return run(moved).To(home)
}

// Einsum performs an Einstein-summation contraction, falling back to the
// capable device when complex operands sit on a restricted accelerator.
// The spec string is passed through unmodified.
func (b *Backend) Einsum(spec string, operands ...*tensor.RawTensor) *tensor.RawTensor {
	if !needsFallback(operands) {
		return b.native.Einsum(spec, operands...)
	}
	return b.viaFallback(operands, func(ops []*tensor.RawTensor) *tensor.RawTensor {
		return b.fallback.Einsum(spec, ops...)
	})
}

// Contract is an alias for Einsum, matching the contraction naming used by
// the state-space modules.
func (b *Backend) Contract(spec string, operands ...*tensor.RawTensor) *tensor.RawTensor {
	return b.Einsum(spec, operands...)
}

// MatMul performs a generalized matrix product with fallback dispatch.
func (b *Backend) MatMul(a, c *tensor.RawTensor) *tensor.RawTensor {
	if !needsFallback([]*tensor.RawTensor{a, c}) {
		return b.native.MatMul(a, c)
	}
	return b.viaFallback([]*tensor.RawTensor{a, c}, func(ops []*tensor.RawTensor) *tensor.RawTensor {
		return b.fallback.MatMul(ops[0], ops[1])
	})
}

// BatchMatMul performs batched matrix multiplication with fallback dispatch.
func (b *Backend) BatchMatMul(a, c *tensor.RawTensor) *tensor.RawTensor {
	if !needsFallback([]*tensor.RawTensor{a, c}) {
		return b.native.BatchMatMul(a, c)
	}
	return b.viaFallback([]*tensor.RawTensor{a, c}, func(ops []*tensor.RawTensor) *tensor.RawTensor {
		return b.fallback.BatchMatMul(ops[0], ops[1])
	})
}

// MM performs a strict 2D matrix product with fallback dispatch.
func (b *Backend) MM(a, c *tensor.RawTensor) *tensor.RawTensor {
	if !needsFallback([]*tensor.RawTensor{a, c}) {
		return b.native.MM(a, c)
	}
	return b.viaFallback([]*tensor.RawTensor{a, c}, func(ops []*tensor.RawTensor) *tensor.RawTensor {
		return b.fallback.MM(ops[0], ops[1])
	})
}

// Add delegates to the native backend.
func (b *Backend) Add(a, c *tensor.RawTensor) *tensor.RawTensor { return b.native.Add(a, c) }

// Sub delegates to the native backend.
func (b *Backend) Sub(a, c *tensor.RawTensor) *tensor.RawTensor { return b.native.Sub(a, c) }

// Mul delegates to the native backend.
func (b *Backend) Mul(a, c *tensor.RawTensor) *tensor.RawTensor { return b.native.Mul(a, c) }

// Div delegates to the native backend.
func (b *Backend) Div(a, c *tensor.RawTensor) *tensor.RawTensor { return b.native.Div(a, c) }

// Reshape delegates to the native backend.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return b.native.Reshape(t, newShape)
}

// Transpose delegates to the native backend.
func (b *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	return b.native.Transpose(t, axes...)
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "compat(" + b.native.Name() + ")"
}

// Device returns the native backend's device.
func (b *Backend) Device() tensor.Device {
	return b.native.Device()
}
