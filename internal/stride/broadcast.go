package stride

import (
	"fmt"

	"github.com/born-ml/stride/internal/tensor"
)

// broadcastShape merges two shapes under the right-aligned broadcasting
// rule: dimensions are compared from the trailing axis inward, missing
// leading axes count as size 1, and a size-1 axis stretches to match.
func broadcastShape(a, b tensor.Shape) (tensor.Shape, error) {
	maxLen := maxInt(len(a), len(b))
	result := make(tensor.Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		case bDim == 1:
			result[maxLen-1-i] = aDim
		default:
			return nil, fmt.Errorf("%w: %v vs %v (dimension %d: %d vs %d)",
				ErrIncompatibleShapes, a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, nil
}

// BroadcastShapes returns the shape that results from broadcasting all the
// supplied shapes against each other, folding them pairwise one at a time.
// Any number of shapes is supported; with no arguments the scalar shape is
// returned.
func BroadcastShapes(shapes ...tensor.Shape) (tensor.Shape, error) {
	result := tensor.Shape{}
	for _, s := range shapes {
		merged, err := broadcastShape(result, s)
		if err != nil {
			return nil, err
		}
		result = merged
	}
	return result, nil
}

// broadcastTo builds the broadcast view of x at the target shape. When
// readonly is false and x is writable, the view stays writable; BroadcastTo
// uses the readonly path, BroadcastArrays the writable one.
func broadcastTo(x tensor.Array, shape tensor.Shape, subok, readonly bool) (tensor.Array, error) {
	src := x.Raw()
	srcShape := src.Shape()

	if len(shape) == 0 && len(srcShape) != 0 {
		return nil, fmt.Errorf("%w: input has shape %v", ErrNonScalarToScalar, srcShape)
	}
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: got %v", ErrNegativeDimension, shape)
		}
	}

	pad := len(shape) - len(srcShape)
	if pad < 0 {
		return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrIncompatibleShapes, srcShape, shape)
	}

	srcStrides := src.Strides()
	strides := make([]int, len(shape))
	for i := range shape {
		j := i - pad
		if j < 0 {
			// Axis added on the left: virtual repetition of the whole array.
			strides[i] = 0
			continue
		}
		switch {
		case srcShape[j] == shape[i]:
			strides[i] = srcStrides[j]
		case srcShape[j] == 1:
			strides[i] = 0
		default:
			return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrIncompatibleShapes, srcShape, shape)
		}
	}

	writeable := !readonly && src.Writable()
	return AsStrided(x, shape, strides, subok, writeable), nil
}

// BroadcastTo broadcasts x to the given shape, returning a view that shares
// x's storage. Stretched axes get stride 0, so more than one element of the
// result may refer to a single memory location.
//
// The result is always read-only regardless of x's writability: aliasing
// positions make writes through a broadcast view ill-defined, and callers
// rely on this never silently changing.
func BroadcastTo(x tensor.Array, shape tensor.Shape, subok bool) (tensor.Array, error) {
	return broadcastTo(x, shape, subok, true)
}

// BroadcastArrays broadcasts any number of arrays against each other,
// returning views that all share the unified shape.
//
// If every input already has the unified shape, the inputs themselves are
// returned with no new views constructed. Otherwise each result is a
// (possibly aliasing) broadcast view of its input. Unlike BroadcastTo, the
// views are not forced read-only: they stay writable when their source is.
// If you need to write to them, make copies first.
func BroadcastArrays(subok bool, arrays ...tensor.Array) ([]tensor.Array, error) {
	shapes := make([]tensor.Shape, len(arrays))
	for i, a := range arrays {
		shapes[i] = a.Raw().Shape()
	}

	unified, err := BroadcastShapes(shapes...)
	if err != nil {
		return nil, err
	}

	allMatch := true
	for _, s := range shapes {
		if !s.Equal(unified) {
			allMatch = false
			break
		}
	}
	if allMatch {
		// Common case where nothing needs to be broadcast.
		return arrays, nil
	}

	results := make([]tensor.Array, len(arrays))
	for i, a := range arrays {
		view, err := broadcastTo(a, unified, subok, false)
		if err != nil {
			return nil, err
		}
		results[i] = view
	}
	return results, nil
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
