// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the array representation the
// stride library operates on.
//
// The package defines the core types for strided N-dimensional arrays:
//   - RawTensor: low-level array header (shape, byte strides, buffer)
//   - Tensor[T]: typed wrapper with strided element access
//   - Array, ViewFinalizer: capability interfaces for view construction
//   - Shape, DataType: core type definitions
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	v := x.At(1, 2) // 6
package tensor

import (
	"github.com/born-ml/stride/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for array element types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying element type of an array.
type DataType = tensor.DataType

// Element type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level array header over a shared, reference-counted
// buffer. Views constructed by the stride package are RawTensor headers
// sharing their source's storage.
type RawTensor = tensor.RawTensor

// Tensor is a typed wrapper over a RawTensor with stride-aware element
// access. It implements ViewFinalizer, so view operations asked to preserve
// subtypes return *Tensor[T] results for *Tensor[T] inputs.
type Tensor[T DType] = tensor.Tensor[T]

// Array is the minimal interface the stride package requires of its inputs.
type Array = tensor.Array

// ViewFinalizer is implemented by wrapper array types that want derived
// views minted as the same concrete type.
type ViewFinalizer = tensor.ViewFinalizer

// NewRaw creates a new contiguous, writable array with the given shape and
// element type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// NewRawView constructs a new header over x's storage. See the internal
// documentation for the (deliberately unchecked) contract.
func NewRawView(x *RawTensor, shape Shape, strides []int, offset int, writable bool) *RawTensor {
	return tensor.NewRawView(x, shape, strides, offset, writable)
}

// New wraps a RawTensor in a typed Tensor.
func New[T DType](raw *RawTensor) *Tensor[T] {
	return tensor.New[T](raw)
}

// FromSlice creates a contiguous tensor from a Go slice.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a contiguous tensor filled with zeros.
func Zeros[T DType](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// Full creates a contiguous tensor filled with a specific value.
func Full[T DType](shape Shape, value T) *Tensor[T] {
	return tensor.Full(shape, value)
}
