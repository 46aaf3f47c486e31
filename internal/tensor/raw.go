package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// arrayBuffer is a reference-counted shared buffer backing one or more array
// headers. Views hold a reference to the buffer of the array they were
// derived from, which keeps the storage alive for the view's lifetime.
type arrayBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newArrayBuffer creates a new reference-counted buffer with refCount = 1.
func newArrayBuffer(size int) *arrayBuffer {
	buf := &arrayBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for views and clones).
func (ab *arrayBuffer) addRef() {
	ab.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (ab *arrayBuffer) release() {
	if ab.refCount.Add(-1) == 0 {
		ab.mu.Lock()
		defer ab.mu.Unlock()
		ab.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (ab *arrayBuffer) isUnique() bool {
	return ab.refCount.Load() == 1
}

// RawTensor is the low-level array header: an element type, a shape, signed
// per-dimension byte strides, a byte offset into a shared buffer, and a
// writability flag. Headers are immutable after construction; the data bytes
// they describe are mutable through writable headers.
//
// Two or more headers may describe overlapping regions of one buffer.
// Aliasing is deliberate (views, zero-stride broadcasts) and the caller's
// hazard: nothing here guards concurrent mutation of overlapping views.
type RawTensor struct {
	buffer   *arrayBuffer // Shared reference-counted buffer
	shape    Shape        // Array dimensions
	strides  []int        // Byte strides per dimension (may be zero or negative)
	dtype    DataType     // Runtime element type
	offset   int          // Byte offset of element (0, ..., 0) in the buffer
	writable bool         // Whether data may be mutated through this header
	base     *RawTensor   // Array this view was derived from; nil for owners
}

// NewRaw creates a new contiguous, writable RawTensor with the given shape
// and element type. Memory is allocated and zero-initialized.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &RawTensor{
		buffer:   newArrayBuffer(byteSize),
		shape:    shape.Clone(),
		strides:  shape.ComputeStrides(dtype.Size()),
		dtype:    dtype,
		offset:   0,
		writable: true,
	}, nil
}

// NewRawView constructs a new header over x's storage with the given shape,
// byte strides, and an additional byte offset relative to x's element origin.
// The element type is taken from x. No data is copied and no bounds are
// checked: callers must keep every reachable byte offset inside the buffer.
//
// The result holds a reference to x's buffer and records x as its base, so
// the storage stays alive for at least the view's lifetime. The view is
// writable only if requested and x itself is writable; a read-only source
// never yields a writable view.
func NewRawView(x *RawTensor, shape Shape, strides []int, offset int, writable bool) *RawTensor {
	if len(shape) != len(strides) {
		panic(fmt.Sprintf("shape rank %d does not match strides rank %d", len(shape), len(strides)))
	}

	x.buffer.addRef()
	return &RawTensor{
		buffer:   x.buffer,
		shape:    shape.Clone(),
		strides:  append([]int(nil), strides...),
		dtype:    x.dtype,
		offset:   x.offset + offset,
		writable: writable && x.writable,
		base:     x,
	}
}

// Raw returns the header itself, making RawTensor the canonical Array.
func (r *RawTensor) Raw() *RawTensor {
	return r
}

// Shape returns the array's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the array's byte strides.
func (r *RawTensor) Strides() []int {
	return r.strides
}

// DType returns the array's element type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the logical memory size of the elements in bytes.
// Aliasing views may describe fewer distinct bytes than this.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Writable reports whether data may be mutated through this header.
func (r *RawTensor) Writable() bool {
	return r.writable
}

// Base returns the array this view was derived from, or nil if this array
// owns its storage.
func (r *RawTensor) Base() *RawTensor {
	return r.base
}

// IsContiguous reports whether the elements are laid out row-major with no
// gaps, overlap, or reversal. Dimensions of size <= 1 never affect layout.
func (r *RawTensor) IsContiguous() bool {
	expect := r.shape.ComputeStrides(r.dtype.Size())
	for i := range expect {
		if r.shape[i] > 1 && r.strides[i] != expect[i] {
			return false
		}
	}
	return true
}

// ElemOffset returns the absolute byte offset of the element at the given
// multi-index. Panics if the index rank or any entry is out of bounds.
func (r *RawTensor) ElemOffset(indices ...int) int {
	if len(indices) != len(r.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(r.shape), len(indices)))
	}

	offset := r.offset
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, r.shape[i]))
		}
		offset += idx * r.strides[i]
	}
	return offset
}

// Data returns the raw byte slice starting at the array's origin.
// Only meaningful for contiguous arrays with non-negative strides.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset:]
}

// mustContiguous guards the typed slice accessors: a strided or aliasing
// view cannot be exposed as a flat slice without walking its strides.
func (r *RawTensor) mustContiguous() {
	if !r.IsContiguous() {
		panic("tensor is not contiguous; use ElemOffset or Contiguous()")
	}
}

// AsFloat32 interprets the data as []float32.
// Panics if the element type is not Float32 or the array is not contiguous.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	r.mustContiguous()
	if r.NumElements() == 0 {
		return nil
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, extent checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the element type is not Float64 or the array is not contiguous.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	r.mustContiguous()
	if r.NumElements() == 0 {
		return nil
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, extent checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the element type is not Int32 or the array is not contiguous.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	r.mustContiguous()
	if r.NumElements() == 0 {
		return nil
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, extent checked by NumElements()
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the element type is not Int64 or the array is not contiguous.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	r.mustContiguous()
	if r.NumElements() == 0 {
		return nil
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, extent checked by NumElements()
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the element type is not Uint8 or the array is not contiguous.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	r.mustContiguous()
	return r.buffer.data[r.offset : r.offset+r.NumElements()] // Already []byte = []uint8
}

// AsBool interprets the data as []bool.
// Panics if the element type is not Bool or the array is not contiguous.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("tensor dtype is %s, not bool", r.dtype))
	}
	r.mustContiguous()
	if r.NumElements() == 0 {
		return nil
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, extent checked by NumElements()
	return unsafe.Slice((*bool)(unsafe.Pointer(&data[0])), r.NumElements())
}

// Contiguous returns a fresh contiguous, writable array holding a deep copy
// of the view's elements in row-major order. Elements that alias in the view
// (overlapping windows, zero-stride broadcasts) are duplicated in the copy,
// which shares no storage with the source.
func (r *RawTensor) Contiguous() *RawTensor {
	out, err := NewRaw(r.shape, r.dtype)
	if err != nil {
		panic(err) // View shapes are validated non-negative at construction
	}

	size := r.dtype.Size()
	n := r.shape.NumElements()
	if n == 0 {
		return out
	}

	idx := make([]int, len(r.shape))
	for k := 0; k < n; k++ {
		src := r.offset
		for i, ix := range idx {
			src += ix * r.strides[i]
		}
		copy(out.buffer.data[k*size:(k+1)*size], r.buffer.data[src:src+size])

		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < r.shape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out
}

// Clone creates a shallow copy of the header (shares the buffer with
// reference counting). The data is not copied.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer:   r.buffer,
		shape:    r.shape.Clone(),
		strides:  append([]int(nil), r.strides...),
		dtype:    r.dtype,
		offset:   r.offset,
		writable: r.writable,
		base:     r.base,
	}
}

// Release decrements the buffer reference count and deallocates the storage
// once the last header referencing it is released.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this header is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// String returns a human-readable representation of the header.
func (r *RawTensor) String() string {
	if r.writable {
		return fmt.Sprintf("RawTensor[%s]%v", r.dtype, r.shape)
	}
	return fmt.Sprintf("RawTensor[%s]%v (read-only)", r.dtype, r.shape)
}
