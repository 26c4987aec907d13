package ndarray

import (
	"fmt"
	"math"
)

// Axis is the semantic label of one dimension of an array.
// Labels carry no computational meaning; they are propagated to the output
// of a combine so downstream display code can title dimensions correctly.
type Axis string

// Well-known axis labels, mirroring the usual imaging conventions.
const (
	AxisX       Axis = "X"
	AxisY       Axis = "Y"
	AxisChannel Axis = "Channel"
	AxisTime    Axis = "Time"
	AxisUnknown Axis = "Unknown"
)

// Shape holds the per-dimension extents of an array.
// A Shape is immutable once attached to an Array; callers that need to
// derive a new shape must work on a Clone.
type Shape []int

// Rank returns the number of dimensions.
//
// Returns:
//   - int: The dimension count of the shape.
func (s Shape) Rank() int { return len(s) }

// NumElements returns the total number of samples addressed by the shape.
// A shape with any zero extent addresses zero elements.
//
// Returns:
//   - int: The product of all extents.
func (s Shape) NumElements() int {
	n := 1
	for _, extent := range s {
		n *= extent
	}
	return n
}

// Equal reports whether two shapes have the same rank and extents.
//
// Parameters:
//   - other: The shape to compare against.
//
// Returns:
//   - bool: true if both shapes are identical.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
//
// Returns:
//   - Shape: A new shape with the same extents.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Strides computes row-major strides for the shape: stride[i] is the flat
// index distance between two samples adjacent along dimension i.
//
// Returns:
//   - []int: The row-major stride for each dimension.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Validate checks that the shape has rank >= 1, no negative extent, and an
// element count that fits in an int. Zero extents are legal: they describe
// an empty array. The overflow check matters for shapes read from untrusted
// input: a wrapped product would make NumElements lie about the addressed
// region.
//
// Returns:
//   - error: A descriptive error, or nil if the shape is valid.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("shape must have rank >= 1")
	}
	n := 1
	for i, extent := range s {
		if extent < 0 {
			return fmt.Errorf("negative extent %d at dimension %d", extent, i)
		}
		if extent > 0 && n > math.MaxInt/extent {
			return fmt.Errorf("shape %s element count overflows", s)
		}
		n *= extent
	}
	return nil
}

// String renders the shape as "4x4" style text for logs and display.
func (s Shape) String() string {
	out := ""
	for i, extent := range s {
		if i > 0 {
			out += "x"
		}
		out += fmt.Sprintf("%d", extent)
	}
	return out
}

// Overlap plans the output geometry of an elementwise combine of two views.
// The output rank is the minimum of the input ranks and every output extent
// is the per-dimension minimum, so the result never grows beyond either
// input. Axis labels prefer the first operand.
//
// Mismatched ranks or extents are never rejected: truncation to the common
// region is the one consistent policy of this package.
//
// Parameters:
//   - a: The first operand; its axis labels win.
//   - b: The second operand.
//
// Returns:
//   - Shape: The per-dimension minimum extents over the common rank.
//   - []Axis: The axis labels of the output, one per output dimension.
func Overlap(a, b View) (Shape, []Axis) {
	rank := a.Rank()
	if b.Rank() < rank {
		rank = b.Rank()
	}
	shape := make(Shape, rank)
	axes := make([]Axis, rank)
	for i := 0; i < rank; i++ {
		extent := a.Extent(i)
		if be := b.Extent(i); be < extent {
			extent = be
		}
		shape[i] = extent
		axes[i] = a.AxisAt(i)
	}
	return shape, axes
}
