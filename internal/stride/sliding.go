package stride

import (
	"fmt"

	"github.com/born-ml/stride/internal/tensor"
)

// SlidingWindowView extracts windowed views of x: every sub-block of the
// given window shape at every valid position, sliding by step along each
// axis. The result has shape (outExtents..., window...) where
// outExtent[i] = (x.shape[i] - window[i]) / step[i] + 1.
//
// The window dimensions reuse x's per-axis strides unmodified; the outer
// position dimensions scale them by the step. Adjacent windows therefore
// alias the same memory.
//
// If writeable is false the raw overlapping view is returned read-only.
// If writeable is true the result is a deep, non-aliased copy instead:
// overlapping windows make unconstrained writes through the view unsafe, so
// a copy is the only form in which mutation is allowed. Note the copy can
// take a multiple of the source's memory.
//
// A nil step defaults to 1 along every axis.
func SlidingWindowView(x tensor.Array, window tensor.Shape, step []int, subok, writeable bool) (tensor.Array, error) {
	src := x.Raw()
	srcShape := src.Shape()
	ndim := len(srcShape)

	if len(window) != ndim {
		return nil, fmt.Errorf("window shape %w: %d entries for a %d-d array", ErrDimensionMismatch, len(window), ndim)
	}
	for _, w := range window {
		if w <= 0 {
			return nil, fmt.Errorf("window shape %v %w", window, ErrNonPositiveValue)
		}
	}

	if step == nil {
		step = make([]int, ndim)
		for i := range step {
			step[i] = 1
		}
	} else {
		if len(step) != ndim {
			return nil, fmt.Errorf("step %w: %d entries for a %d-d array", ErrDimensionMismatch, len(step), ndim)
		}
		for _, s := range step {
			if s <= 0 {
				return nil, fmt.Errorf("step %v %w", step, ErrNonPositiveValue)
			}
		}
	}

	srcStrides := src.Strides()
	viewShape := make(tensor.Shape, 0, 2*ndim)
	viewStrides := make([]int, 0, 2*ndim)
	for i := 0; i < ndim; i++ {
		// The extent is floor((n-w)/s) + 1. Go's truncating division rounds
		// a negative numerator toward zero, so an oversized window must be
		// rejected before dividing; with w <= n and s >= 1 the quotient is
		// exact floor and the extent is always positive.
		if srcShape[i] < window[i] {
			return nil, fmt.Errorf("%w: window %v, input %v", ErrWindowTooLarge, window, srcShape)
		}
		out := (srcShape[i]-window[i])/step[i] + 1
		viewShape = append(viewShape, out)
		viewStrides = append(viewStrides, srcStrides[i]*step[i])
	}
	viewShape = append(viewShape, window...)
	viewStrides = append(viewStrides, srcStrides...)

	view := AsStrided(x, viewShape, viewStrides, subok, writeable)
	if writeable {
		return finalize(x, view.Raw().Contiguous(), subok), nil
	}
	return view, nil
}
