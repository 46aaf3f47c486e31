package stride

import "errors"

// Validation errors. All are raised synchronously before any view is
// constructed; none are retried or silently corrected.
var (
	// ErrShapeSequence reports a shape or step argument that is not a flat
	// sequence of integers. Raised at the named-option boundary, where
	// arguments arrive untyped.
	ErrShapeSequence = errors.New("must be a flat sequence of integers")

	// ErrDimensionMismatch reports a window or step whose length disagrees
	// with the input array's dimensionality.
	ErrDimensionMismatch = errors.New("length does not match input array dimensions")

	// ErrNonPositiveValue reports a window or step entry <= 0.
	ErrNonPositiveValue = errors.New("cannot contain non-positive values")

	// ErrWindowTooLarge reports a window that does not fit the input along
	// some axis (computed output extent <= 0).
	ErrWindowTooLarge = errors.New("window shape cannot be larger than input array shape")

	// ErrIncompatibleShapes reports two shapes that disagree on a non-1 axis
	// under the right-aligned broadcasting rule.
	ErrIncompatibleShapes = errors.New("shapes are not compatible for broadcasting")

	// ErrNonScalarToScalar reports an attempt to broadcast an array with
	// nonzero rank to a scalar (empty) shape.
	ErrNonScalarToScalar = errors.New("cannot broadcast a non-scalar to a scalar shape")

	// ErrNegativeDimension reports a broadcast target shape containing a
	// negative size.
	ErrNegativeDimension = errors.New("all elements of broadcast shape must be non-negative")

	// ErrUnexpectedOption reports an unrecognized named configuration key.
	ErrUnexpectedOption = errors.New("unexpected option")
)
