package tensor

import (
	"fmt"
	"unsafe"
)

// Tensor is a typed wrapper around a RawTensor header. It provides type-safe
// element access that walks the header's byte strides, so it works for
// contiguous owners and for arbitrary views alike (including zero and
// negative strides).
//
// Tensor is also the library's specialized subtype: it implements
// ViewFinalizer, so view operations asked to preserve subtypes mint their
// results as *Tensor[T] rather than bare *RawTensor headers.
//
// Example:
//
//	t, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	v := t.At(1, 0) // 3
type Tensor[T DType] struct {
	raw *RawTensor
}

// New wraps a RawTensor in a typed Tensor.
// Panics if the header's element type does not match T.
func New[T DType](raw *RawTensor) *Tensor[T] {
	var dummy T
	if dtype := inferDataType(dummy); raw.DType() != dtype {
		panic(fmt.Sprintf("raw tensor dtype is %s, not %s", raw.DType(), dtype))
	}
	return &Tensor[T]{raw: raw}
}

// FromSlice creates a contiguous tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}

	t := &Tensor[T]{raw: raw}
	copy(t.Data(), data)
	return t, nil
}

// Zeros creates a contiguous tensor filled with zeros.
func Zeros[T DType](shape Shape) *Tensor[T] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy))
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return &Tensor[T]{raw: raw}
}

// Full creates a contiguous tensor filled with a specific value.
func Full[T DType](shape Shape, value T) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Raw returns the underlying raw header.
func (t *Tensor[T]) Raw() *RawTensor {
	return t.raw
}

// FinalizeView wraps a derived raw header as the same typed tensor kind as
// the receiver, restoring the element-type invariant. It panics if the
// header's element type disagrees with the template's, which would mean the
// view path lost the dtype.
func (t *Tensor[T]) FinalizeView(raw *RawTensor) Array {
	if raw.DType() != t.raw.DType() {
		panic(fmt.Sprintf("view dtype %s does not match template dtype %s", raw.DType(), t.raw.DType()))
	}
	return &Tensor[T]{raw: raw}
}

// Shape returns the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.raw.Shape()
}

// Strides returns the tensor's byte strides.
func (t *Tensor[T]) Strides() []int {
	return t.raw.Strides()
}

// DType returns the tensor's element type.
func (t *Tensor[T]) DType() DataType {
	return t.raw.DType()
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return t.raw.NumElements()
}

// Writable reports whether elements may be mutated through this tensor.
func (t *Tensor[T]) Writable() bool {
	return t.raw.Writable()
}

// Data returns a typed flat slice over the tensor's memory (zero-copy).
// Panics for non-contiguous views; use At for those.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T]) Data() []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(t.raw.AsFloat32()).([]T)
	case float64:
		return any(t.raw.AsFloat64()).([]T)
	case int32:
		return any(t.raw.AsInt32()).([]T)
	case int64:
		return any(t.raw.AsInt64()).([]T)
	case uint8:
		return any(t.raw.AsUint8()).([]T)
	case bool:
		return any(t.raw.AsBool()).([]T)
	default:
		panic("unsupported type")
	}
}

// At returns the element at the given indices, following the header's byte
// strides. Panics if indices are out of bounds.
func (t *Tensor[T]) At(indices ...int) T {
	offset := t.raw.ElemOffset(indices...)
	return *(*T)(unsafe.Pointer(&t.raw.buffer.data[offset]))
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds or the tensor is read-only.
func (t *Tensor[T]) Set(value T, indices ...int) {
	if !t.raw.writable {
		panic("cannot write through a read-only tensor")
	}
	offset := t.raw.ElemOffset(indices...)
	*(*T)(unsafe.Pointer(&t.raw.buffer.data[offset])) = value
}

// Item returns the scalar value of a 0-D tensor.
// Panics if the tensor is not a scalar.
func (t *Tensor[T]) Item() T {
	if len(t.Shape()) != 0 || t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for scalar tensors, got shape %v", t.Shape()))
	}
	return t.At()
}

// Clone creates a shallow copy sharing the same buffer.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{raw: t.raw.Clone()}
}

// Contiguous returns a deep, contiguous, writable copy of the tensor.
func (t *Tensor[T]) Contiguous() *Tensor[T] {
	return &Tensor[T]{raw: t.raw.Contiguous()}
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.raw.DType(), t.raw.Shape())
}
