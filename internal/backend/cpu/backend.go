// Package cpu implements the CPU compute backend.
//
// The CPU backend is the capable fallback device: it supports the full
// operator set for every dtype, complex numbers included. Complex matrix
// kernels are backed by gonum's pure-Go BLAS; real kernels use naive typed
// loops.
package cpu

import (
	"fmt"

	"github.com/Sequel-Institute/s4/internal/parallel"
	"github.com/Sequel-Institute/s4/internal/tensor"
)

// Verify that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Backend implements tensor operations on the CPU.
type Backend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{device: tensor.CPU, par: parallel.DefaultConfig()}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Device returns the device type.
func (cpu *Backend) Device() tensor.Device {
	return cpu.device
}

// Reshape returns a tensor with a new shape.
func (cpu *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.Reshape(t, newShape)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return result
}

// Transpose permutes the tensor's dimensions.
// With no axes given, the dimension order is reversed.
func (cpu *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	result, err := tensor.TransposeAxes(t, axes...)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return result
}

// Einsum performs an Einstein-summation contraction, e.g. "ij,jk->ik".
// Supports every numeric dtype including complex.
func (cpu *Backend) Einsum(spec string, operands ...*tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.Einsum(spec, operands...)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return result
}
