// Package ndarray implements the N-dimensional labeled numeric array and the
// elementwise combine operation that is the core of dsadd.
//
// An Array is a rank >= 1, row-major block of samples of a single numeric
// type, addressed by a coordinate tuple with one entry per dimension. The
// combine operation sums two arrays over the region common to both inputs:
// the output rank is the minimum input rank and every output extent is the
// per-dimension minimum, so mismatched geometries are truncated rather than
// rejected. The output sample type is always float64 to avoid overflow and
// truncation when summing integer inputs.
package ndarray

import (
	"fmt"
	"math"

	apperrors "github.com/abertrand/dsadd/internal/errors"
)

// Real constrains the sample types an Array can hold: any fixed-size integer
// or floating-point type. The combine operation reads samples of any Real
// type through the View interface and widens them to float64.
type Real interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// View is a read-only, coordinate-addressed projection of a numeric array.
// It is the capability the combiner needs from its operands: geometry plus
// "readable as a real number". Every *Array[T] implements View, so arrays of
// different sample types can be combined without a type hierarchy.
type View interface {
	// Rank returns the number of dimensions.
	Rank() int
	// Extent returns the size along dimension d.
	Extent(d int) int
	// AxisAt returns the semantic label of dimension d.
	AxisAt(d int) Axis
	// RealAt returns the sample at the given coordinate tuple widened to
	// float64. The tuple length must equal Rank() and every coordinate must
	// be within [0, Extent(d)).
	RealAt(pos []int) float64
}

// Array is an N-dimensional array of samples of type T with row-major
// storage. Shape and axes are fixed at construction; only sample values may
// change afterwards, and the combiner never mutates its inputs.
type Array[T Real] struct {
	shape  Shape
	axes   []Axis
	stride []int
	data   []T
}

// New allocates an Array with the given shape and axis labels, zero-filled.
// The shape must have rank >= 1 and no negative extent; a zero extent is
// legal and yields an empty array. When axes is nil or shorter than the
// rank, missing labels default to AxisUnknown.
//
// Parameters:
//   - shape: The per-dimension extents of the new array.
//   - axes: Optional per-dimension labels; may be nil.
//
// Returns:
//   - *Array[T]: The newly allocated array.
//   - error: A ValidationError if the shape is invalid.
func New[T Real](shape Shape, axes []Axis) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, apperrors.ValidationError{Field: "shape", Message: err.Error()}
	}
	labels := make([]Axis, shape.Rank())
	for i := range labels {
		if i < len(axes) && axes[i] != "" {
			labels[i] = axes[i]
		} else {
			labels[i] = AxisUnknown
		}
	}
	return &Array[T]{
		shape:  shape.Clone(),
		axes:   labels,
		stride: shape.Strides(),
		data:   make([]T, shape.NumElements()),
	}, nil
}

// FromSlice builds an Array from a flat row-major sample slice. The slice
// length must equal the number of elements addressed by the shape. The
// samples are copied, so the caller keeps ownership of data.
//
// Parameters:
//   - shape: The per-dimension extents.
//   - axes: Optional per-dimension labels; may be nil.
//   - data: Row-major samples, len(data) == shape.NumElements().
//
// Returns:
//   - *Array[T]: The populated array.
//   - error: A ValidationError if the shape is invalid or the length differs.
func FromSlice[T Real](shape Shape, axes []Axis, data []T) (*Array[T], error) {
	arr, err := New[T](shape, axes)
	if err != nil {
		return nil, err
	}
	if len(data) != len(arr.data) {
		return nil, apperrors.ValidationError{
			Field:   "data",
			Message: fmt.Sprintf("length %d does not match shape %s (%d elements)", len(data), shape, shape.NumElements()),
		}
	}
	copy(arr.data, data)
	return arr, nil
}

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Extent returns the size along dimension d.
func (a *Array[T]) Extent(d int) int { return a.shape[d] }

// AxisAt returns the semantic label of dimension d.
func (a *Array[T]) AxisAt(d int) Axis { return a.axes[d] }

// Shape returns a copy of the array's shape.
func (a *Array[T]) Shape() Shape { return a.shape.Clone() }

// Axes returns a copy of the array's axis labels.
func (a *Array[T]) Axes() []Axis {
	axes := make([]Axis, len(a.axes))
	copy(axes, a.axes)
	return axes
}

// NumElements returns the total number of samples.
func (a *Array[T]) NumElements() int { return len(a.data) }

// Data returns the underlying row-major sample slice. The slice is shared
// with the array; callers that only hold a View never see it.
func (a *Array[T]) Data() []T { return a.data }

// flatIndex converts a coordinate tuple to a row-major flat index.
func (a *Array[T]) flatIndex(pos []int) int {
	idx := 0
	for d, p := range pos {
		idx += p * a.stride[d]
	}
	return idx
}

// At returns the sample at the given coordinate tuple.
// The tuple length must equal the rank and each coordinate must be in range;
// out-of-range access panics like a slice index would.
func (a *Array[T]) At(pos []int) T { return a.data[a.flatIndex(pos)] }

// Set stores a sample at the given coordinate tuple.
func (a *Array[T]) Set(pos []int, v T) { a.data[a.flatIndex(pos)] = v }

// RealAt returns the sample at pos widened to float64, satisfying View.
func (a *Array[T]) RealAt(pos []int) float64 { return float64(a.data[a.flatIndex(pos)]) }

// Clone returns an independently owned copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	out, _ := FromSlice[T](a.shape, a.axes, a.data)
	return out
}

// EqualValues reports whether two float64 arrays have identical geometry and
// bitwise-equal samples. Used by the orchestration layer to cross-check the
// output of different execution strategies.
//
// Parameters:
//   - a: The first array; may be nil.
//   - b: The second array; may be nil.
//
// Returns:
//   - bool: true if both are nil, or both have equal shape and samples.
func EqualValues(a, b *Array[float64]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		// Bit-level comparison so NaN samples compare equal to themselves.
		if math.Float64bits(a.data[i]) != math.Float64bits(b.data[i]) {
			return false
		}
	}
	return true
}
