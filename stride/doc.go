// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stride provides the public API for strided-view construction:
// reinterpreting an array's shape and strides over its existing storage,
// sliding-window views, and broadcasting.
//
// # Overview
//
// All operations here build new array headers over existing buffers; data is
// copied only where a policy demands it (writable sliding windows). Views
// deliberately alias their sources, and broadcast views alias themselves
// through zero strides. Concurrent mutation of overlapping views is the
// caller's hazard.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/stride/stride"
//	    "github.com/born-ml/stride/tensor"
//	)
//
//	func main() {
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
//
//	    // Broadcast to (3, 3): a read-only view, no copy.
//	    b, _ := stride.BroadcastTo(x, tensor.Shape{3, 3}, nil)
//
//	    // 2x2 sliding windows over a 3x4 matrix, stepping 2 along columns.
//	    m, _ := tensor.FromSlice(make([]float32, 12), tensor.Shape{3, 4})
//	    w, _ := stride.SlidingWindowView(m, tensor.Shape{2, 2}, stride.Options{"step": []int{1, 2}})
//	    _, _ = b, w
//	}
//
// Entry points accept an Options map with the recognized keys "subok"
// (propagate concrete wrapper type), "writeable" (allow mutation through the
// result), and "step" (per-axis window stride, sliding windows only).
// Unrecognized keys are an error.
package stride
