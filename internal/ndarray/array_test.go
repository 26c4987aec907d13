package ndarray

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/abertrand/dsadd/internal/errors"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rank 0 is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := New[float64](Shape{}, nil)
		var validationErr apperrors.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("negative extent is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := New[float64](Shape{3, -2}, nil)
		if err == nil {
			t.Fatal("expected error for negative extent")
		}
	})

	t.Run("missing axes default to Unknown", func(t *testing.T) {
		t.Parallel()
		arr, err := New[float64](Shape{2, 2}, []Axis{AxisY})
		if err != nil {
			t.Fatal(err)
		}
		if arr.AxisAt(0) != AxisY || arr.AxisAt(1) != AxisUnknown {
			t.Errorf("axes = [%s %s], want [Y Unknown]", arr.AxisAt(0), arr.AxisAt(1))
		}
	})

	t.Run("zero extent allocates empty array", func(t *testing.T) {
		t.Parallel()
		arr, err := New[int32](Shape{4, 0}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if arr.NumElements() != 0 {
			t.Errorf("NumElements = %d, want 0", arr.NumElements())
		}
	})

	t.Run("shape is copied on construction", func(t *testing.T) {
		t.Parallel()
		shape := Shape{2, 3}
		arr, err := New[float64](shape, nil)
		if err != nil {
			t.Fatal(err)
		}
		shape[0] = 99
		if arr.Extent(0) != 2 {
			t.Error("mutating the caller's shape slice must not affect the array")
		}
	})
}

func TestFromSlice(t *testing.T) {
	t.Parallel()

	t.Run("length mismatch is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := FromSlice(Shape{2, 2}, nil, []float64{1, 2, 3})
		if err == nil {
			t.Fatal("expected error for mismatched data length")
		}
	})

	t.Run("data is copied", func(t *testing.T) {
		t.Parallel()
		data := []float64{1, 2, 3, 4}
		arr, err := FromSlice(Shape{2, 2}, nil, data)
		if err != nil {
			t.Fatal(err)
		}
		data[0] = 99
		if arr.At([]int{0, 0}) != 1 {
			t.Error("mutating the source slice must not affect the array")
		}
	})
}

func TestArray_Access(t *testing.T) {
	t.Parallel()
	arr, err := FromSlice(Shape{2, 3}, []Axis{AxisY, AxisX}, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := arr.At([]int{1, 2}); got != 6 {
		t.Errorf("At([1 2]) = %v, want 6", got)
	}
	if got := arr.RealAt([]int{0, 1}); got != 2 {
		t.Errorf("RealAt([0 1]) = %v, want 2", got)
	}

	arr.Set([]int{0, 0}, 42)
	if got := arr.At([]int{0, 0}); got != 42 {
		t.Errorf("Set/At = %v, want 42", got)
	}
}

func TestArray_RealAtWidensIntegerSamples(t *testing.T) {
	t.Parallel()
	arr, err := FromSlice(Shape{2}, nil, []uint8{200, 255})
	if err != nil {
		t.Fatal(err)
	}
	var v View = arr
	if got := v.RealAt([]int{1}); got != 255.0 {
		t.Errorf("RealAt = %v, want 255.0", got)
	}
}

func TestArray_Clone(t *testing.T) {
	t.Parallel()
	arr, _ := FromSlice(Shape{2, 2}, []Axis{AxisY, AxisX}, []float64{1, 2, 3, 4})
	clone := arr.Clone()

	clone.Set([]int{0, 0}, 99)
	if arr.At([]int{0, 0}) != 1 {
		t.Error("clone must be independently owned")
	}
	if clone.AxisAt(0) != AxisY {
		t.Error("clone must preserve axis labels")
	}
}

func TestEqualValues(t *testing.T) {
	t.Parallel()
	a, _ := FromSlice(Shape{2, 2}, nil, []float64{1, 2, 3, 4})
	b, _ := FromSlice(Shape{2, 2}, nil, []float64{1, 2, 3, 4})
	c, _ := FromSlice(Shape{2, 2}, nil, []float64{1, 2, 3, 5})
	d, _ := FromSlice(Shape{4}, nil, []float64{1, 2, 3, 4})

	if !EqualValues(a, b) {
		t.Error("identical arrays should be equal")
	}
	if EqualValues(a, c) {
		t.Error("different samples should not be equal")
	}
	if EqualValues(a, d) {
		t.Error("different shapes should not be equal")
	}
	if !EqualValues(nil, nil) {
		t.Error("two nils should be equal")
	}
	if EqualValues(a, nil) {
		t.Error("nil and non-nil should not be equal")
	}
}

func TestEqualValues_NaNSamples(t *testing.T) {
	t.Parallel()
	a, _ := FromSlice(Shape{2, 2}, nil, []float64{1, math.NaN(), 3, 4})
	b, _ := FromSlice(Shape{2, 2}, nil, []float64{1, math.NaN(), 3, 4})
	c, _ := FromSlice(Shape{2, 2}, nil, []float64{1, 2, 3, 4})

	if !EqualValues(a, b) {
		t.Error("bitwise-identical NaN samples should compare equal")
	}
	if EqualValues(a, c) {
		t.Error("NaN should not compare equal to a number")
	}
}
