// Package stride builds new array views by manipulating shape and stride
// metadata: raw reinterpretation (AsStrided), sliding windows, and
// broadcasting, all without copying data unless a policy demands it.
package stride

import (
	"github.com/born-ml/stride/internal/tensor"
)

// AsStrided creates a view into x with the given shape and byte strides.
//
// A nil shape defaults to x's own. Nil strides default to x's strides when
// the shape has x's rank, and to a fresh row-major layout for the given
// shape otherwise (the reinterpretation a contiguous buffer admits). The
// element type is always carried over from x unchanged. The result shares
// x's storage and keeps it alive; no data is copied.
//
// This function has to be used with extreme care: it performs no bounds
// validation, so a shape/stride combination reaching outside x's true byte
// extent corrupts memory when accessed. Views built here routinely overlap
// themselves, making writes through them unpredictable; pass writeable=false
// unless mutation is genuinely needed. Prefer deriving new strides from
// x.Raw().Strides() rather than assuming a contiguous layout.
//
// If subok is set and x is a specialized wrapper type, its
// finalize-from-template hook mints the result as the same concrete type;
// otherwise the bare raw header is returned. The result is writable only if
// writeable is set and x itself is writable.
func AsStrided(x tensor.Array, shape tensor.Shape, strides []int, subok, writeable bool) tensor.Array {
	src := x.Raw()
	if shape == nil {
		shape = src.Shape()
	}
	if strides == nil {
		if len(shape) == len(src.Shape()) {
			strides = src.Strides()
		} else {
			strides = shape.ComputeStrides(src.DType().Size())
		}
	}

	// NewRawView copies the element type from the source header, so exotic
	// dtypes round-trip exactly even though only shape and strides change.
	raw := tensor.NewRawView(src, shape, strides, 0, writeable)
	return finalize(x, raw, subok)
}

// finalize wraps a freshly built raw header for return: through the source's
// finalize-from-template hook when subtype propagation is requested and the
// source supplies one, as the bare header otherwise.
func finalize(x tensor.Array, raw *tensor.RawTensor, subok bool) tensor.Array {
	if subok {
		if f, ok := x.(tensor.ViewFinalizer); ok {
			return f.FinalizeView(raw)
		}
	}
	return raw
}
