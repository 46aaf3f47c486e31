// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package stride

import (
	"github.com/born-ml/stride/internal/stride"
	"github.com/born-ml/stride/tensor"
)

// Error values re-exported for callers matching with errors.Is.
var (
	ErrShapeSequence      = stride.ErrShapeSequence
	ErrDimensionMismatch  = stride.ErrDimensionMismatch
	ErrNonPositiveValue   = stride.ErrNonPositiveValue
	ErrWindowTooLarge     = stride.ErrWindowTooLarge
	ErrIncompatibleShapes = stride.ErrIncompatibleShapes
	ErrNonScalarToScalar  = stride.ErrNonScalarToScalar
	ErrNegativeDimension  = stride.ErrNegativeDimension
	ErrUnexpectedOption   = stride.ErrUnexpectedOption
)

// AsStrided creates a view into x with the given shape and byte strides.
// A nil shape defaults to x's own; nil strides default to x's strides when
// the shape has x's rank, and to a row-major layout for the shape otherwise.
//
// This is the unsafe low-level primitive of the package: no bounds are
// validated, out-of-range access through the result is the caller's
// responsibility, and results routinely overlap themselves. Use with
// extreme care.
//
// Options: "subok" (default false), "writeable" (default true — the result
// is then writable exactly when x is).
func AsStrided(x tensor.Array, shape tensor.Shape, strides []int, opts Options) (tensor.Array, error) {
	cfg, err := parseOptions(opts, false, config{writeable: true})
	if err != nil {
		return nil, err
	}
	return stride.AsStrided(x, shape, strides, cfg.subok, cfg.writeable), nil
}

// SlidingWindowView extracts sliding windows of the given window shape from
// x, shifted by the per-axis step at every position. The result has shape
// (outExtents..., window...); adjacent windows alias the same memory.
//
// Options: "subok" (default false), "writeable" (default false; when set,
// the result is a deep non-aliased copy because writes through overlapping
// windows are unsafe), "step" (defaults to 1 on every axis).
func SlidingWindowView(x tensor.Array, window tensor.Shape, opts Options) (tensor.Array, error) {
	cfg, err := parseOptions(opts, true, config{})
	if err != nil {
		return nil, err
	}
	return stride.SlidingWindowView(x, window, cfg.step, cfg.subok, cfg.writeable)
}

// BroadcastTo broadcasts x to the given shape, returning a read-only view.
// Stretched size-1 axes repeat the same memory through zero strides.
//
// Options: "subok" (default false). The result is always read-only; a
// "writeable" option is not recognized here.
func BroadcastTo(x tensor.Array, shape tensor.Shape, opts Options) (tensor.Array, error) {
	cfg, err := parseOptions(opts, false, config{})
	if err != nil {
		return nil, err
	}
	return stride.BroadcastTo(x, shape, cfg.subok)
}

// BroadcastArrays broadcasts any number of arrays against each other,
// returning views at the unified shape. If every input already has that
// shape, the inputs themselves are returned unchanged. Unlike BroadcastTo,
// the returned views stay writable when their sources are; copy before
// writing to them.
//
// Options: "subok" (default false).
func BroadcastArrays(opts Options, arrays ...tensor.Array) ([]tensor.Array, error) {
	cfg, err := parseOptions(opts, false, config{})
	if err != nil {
		return nil, err
	}
	return stride.BroadcastArrays(cfg.subok, arrays...)
}

// BroadcastShapes returns the shape resulting from broadcasting all the
// supplied shapes against each other, with no arity limit.
func BroadcastShapes(shapes ...tensor.Shape) (tensor.Shape, error) {
	return stride.BroadcastShapes(shapes...)
}
