package stride

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/stride/internal/tensor"
)

// TestBroadcastShapes tests right-aligned N-way shape unification.
func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name   string
		shapes []tensor.Shape
		want   tensor.Shape
	}{
		{"no shapes", nil, tensor.Shape{}},
		{"single", []tensor.Shape{{2, 3}}, tensor.Shape{2, 3}},
		{"classic cross", []tensor.Shape{{1, 3}, {3, 1}}, tensor.Shape{3, 3}},
		{"rank padding", []tensor.Shape{{5}, {3, 1}}, tensor.Shape{3, 5}},
		{"scalar stretches", []tensor.Shape{{}, {2, 4}}, tensor.Shape{2, 4}},
		{"three way", []tensor.Shape{{1, 3}, {2, 1, 1}, {3}}, tensor.Shape{2, 1, 3}},
		{"zero size", []tensor.Shape{{1}, {0}}, tensor.Shape{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastShapes(tt.shapes...)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	t.Run("incompatible", func(t *testing.T) {
		_, err := BroadcastShapes(tensor.Shape{3, 4}, tensor.Shape{3, 5})
		assert.ErrorIs(t, err, ErrIncompatibleShapes)
	})

	t.Run("no arity limit", func(t *testing.T) {
		// Far past the 32-operand ceiling some resolution primitives have.
		shapes := make([]tensor.Shape, 100)
		for i := range shapes {
			shapes[i] = tensor.Shape{1, 3}
		}
		shapes[57] = tensor.Shape{4, 1, 1}

		got, err := BroadcastShapes(shapes...)
		require.NoError(t, err)
		assert.True(t, got.Equal(tensor.Shape{4, 1, 3}), "got %v", got)
	})
}

// TestBroadcastTo tests single-array broadcasting: values, strides, and the
// read-only guarantee.
func TestBroadcastTo(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)

	view, err := BroadcastTo(x, tensor.Shape{3, 3}, true)
	require.NoError(t, err)
	typed := view.(*tensor.Tensor[float32])

	assert.True(t, typed.Shape().Equal(tensor.Shape{3, 3}))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, x.At(j), typed.At(i, j), "row %d col %d", i, j)
		}
	}

	// The stretched leading axis repeats memory through stride 0.
	assert.Equal(t, []int{0, 4}, typed.Strides())
	assert.False(t, typed.Writable(), "broadcast views are always read-only")

	// No copy was made: source writes are visible everywhere.
	x.Set(9, 1)
	assert.Equal(t, float32(9), typed.At(2, 1))
}

// TestBroadcastToStretchMiddle tests stretching an explicit size-1 axis
// while keeping a matching one.
func TestBroadcastToStretchMiddle(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2, 1})
	require.NoError(t, err)

	view, err := BroadcastTo(x, tensor.Shape{2, 4}, true)
	require.NoError(t, err)
	typed := view.(*tensor.Tensor[float64])

	assert.Equal(t, []int{8, 0}, typed.Strides())
	for j := 0; j < 4; j++ {
		assert.Equal(t, float64(1), typed.At(0, j))
		assert.Equal(t, float64(2), typed.At(1, j))
	}
}

// TestBroadcastToScalarSource tests broadcasting a 0-d array.
func TestBroadcastToScalarSource(t *testing.T) {
	s, err := tensor.FromSlice([]int32{7}, tensor.Shape{})
	require.NoError(t, err)

	view, err := BroadcastTo(s, tensor.Shape{2, 2}, true)
	require.NoError(t, err)
	typed := view.(*tensor.Tensor[int32])

	assert.Equal(t, []int{0, 0}, typed.Strides())
	assert.Equal(t, int32(7), typed.At(1, 1))

	// Scalar to scalar is fine.
	same, err := BroadcastTo(s, tensor.Shape{}, false)
	require.NoError(t, err)
	assert.Len(t, same.Raw().Shape(), 0)
}

// TestBroadcastToZeroSize tests that size-0 target dimensions are legal.
func TestBroadcastToZeroSize(t *testing.T) {
	x, err := tensor.FromSlice([]float32{5}, tensor.Shape{1})
	require.NoError(t, err)

	view, err := BroadcastTo(x, tensor.Shape{0}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Raw().NumElements())
}

// TestBroadcastToErrors tests the broadcast error taxonomy.
func TestBroadcastToErrors(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)

	t.Run("non-scalar to scalar", func(t *testing.T) {
		_, err := BroadcastTo(x, tensor.Shape{}, false)
		assert.ErrorIs(t, err, ErrNonScalarToScalar)
	})

	t.Run("negative dimension", func(t *testing.T) {
		_, err := BroadcastTo(x, tensor.Shape{-1}, false)
		assert.ErrorIs(t, err, ErrNegativeDimension)
	})

	t.Run("incompatible axis", func(t *testing.T) {
		_, err := BroadcastTo(x, tensor.Shape{2, 4}, false)
		assert.ErrorIs(t, err, ErrIncompatibleShapes)
	})

	t.Run("target rank below source rank", func(t *testing.T) {
		m, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3})
		require.NoError(t, err)
		_, err = BroadcastTo(m, tensor.Shape{3}, false)
		assert.ErrorIs(t, err, ErrIncompatibleShapes)
	})
}

// TestBroadcastArrays tests multi-array unification.
func TestBroadcastArrays(t *testing.T) {
	row, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3})
	require.NoError(t, err)
	col, err := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{3, 1})
	require.NoError(t, err)

	views, err := BroadcastArrays(true, row, col)
	require.NoError(t, err)
	require.Len(t, views, 2)

	r := views[0].(*tensor.Tensor[float32])
	c := views[1].(*tensor.Tensor[float32])
	assert.True(t, r.Shape().Equal(tensor.Shape{3, 3}))
	assert.True(t, c.Shape().Equal(tensor.Shape{3, 3}))

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, row.At(0, j), r.At(i, j))
			assert.Equal(t, col.At(i, 0), c.At(i, j))
		}
	}

	// Asymmetry with BroadcastTo: these views keep their sources'
	// writability.
	assert.True(t, r.Writable())
	assert.True(t, c.Writable())
}

// TestBroadcastArraysFastPath tests that already-matching inputs come back
// identically, with no views constructed.
func TestBroadcastArraysFastPath(t *testing.T) {
	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2})
	require.NoError(t, err)

	views, err := BroadcastArrays(false, a, b)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Same(t, a, views[0])
	assert.Same(t, b, views[1])
}

// TestBroadcastArraysReadOnlySource tests that a read-only input yields a
// read-only view even on the writable-internal path.
func TestBroadcastArraysReadOnlySource(t *testing.T) {
	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	ro := AsStrided(a, nil, nil, false, false)
	b, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	views, err := BroadcastArrays(false, ro, b)
	require.NoError(t, err)
	assert.False(t, views[0].Raw().Writable())
	assert.True(t, views[1].Raw().Writable())
}

// TestBroadcastArraysMany tests folding well past any fixed arity.
func TestBroadcastArraysMany(t *testing.T) {
	arrays := make([]tensor.Array, 64)
	for i := range arrays {
		x, err := tensor.FromSlice([]int32{int32(i)}, tensor.Shape{1})
		require.NoError(t, err)
		arrays[i] = x
	}
	wide, err := tensor.FromSlice([]int32{0, 1, 2, 3, 4}, tensor.Shape{5})
	require.NoError(t, err)
	arrays = append(arrays, wide)

	views, err := BroadcastArrays(false, arrays...)
	require.NoError(t, err)
	require.Len(t, views, 65)
	for i, v := range views {
		assert.True(t, v.Raw().Shape().Equal(tensor.Shape{5}), "array %d: %v", i, v.Raw().Shape())
	}
}

// TestBroadcastArraysIncompatible tests that the error names the shapes.
func TestBroadcastArraysIncompatible(t *testing.T) {
	a, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4})
	require.NoError(t, err)

	_, err = BroadcastArrays(false, a, b)
	require.ErrorIs(t, err, ErrIncompatibleShapes)
	assert.Contains(t, err.Error(), fmt.Sprintf("%v", tensor.Shape{4}))
}
