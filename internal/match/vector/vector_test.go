package vector

import (
	"math"
	"testing"
)

// TestAddSub verifies basic arithmetic round-trips.
func TestAddSub(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	sum := a.Add(b)
	if sum != New(5, 7, 9) {
		t.Errorf("Add: got %v", sum)
	}
	if diff := sum.Sub(b); diff != a {
		t.Errorf("Sub should undo Add, got %v", diff)
	}
}

// TestNormalizeZeroSafe verifies degenerate inputs normalize to zero instead
// of producing NaN.
func TestNormalizeZeroSafe(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3
	}{
		{"zero vector", Zero()},
		{"tiny vector", New(1e-12, 0, 0)},
		{"nan component", New(math.NaN(), 1, 0)},
		{"inf component", New(math.Inf(1), 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalize()
			if !got.IsZero() {
				t.Errorf("Expected zero vector, got %v", got)
			}
		})
	}
}

// TestNormalizeUnit verifies a normalized vector has unit length.
func TestNormalizeUnit(t *testing.T) {
	n := New(3, 4, 0).Normalize()
	if math.Abs(n.Norm()-1.0) > 1e-9 {
		t.Errorf("Expected unit length, got %f", n.Norm())
	}
	if n.X != 0.6 || n.Y != 0.8 {
		t.Errorf("Wrong direction: %v", n)
	}
}

// TestLimit verifies magnitude capping preserves direction and leaves short
// vectors untouched.
func TestLimit(t *testing.T) {
	long := New(30, 40, 0).Limit(5)
	if math.Abs(long.Norm()-5.0) > 1e-9 {
		t.Errorf("Expected magnitude 5, got %f", long.Norm())
	}
	if math.Abs(long.Heading()-New(3, 4, 0).Heading()) > 1e-9 {
		t.Error("Limit changed the heading")
	}

	short := New(1, 1, 0)
	if got := short.Limit(5); got != short {
		t.Errorf("Short vector should pass through, got %v", got)
	}
}

// TestIsFinite verifies non-finite components are detected on every axis.
func TestIsFinite(t *testing.T) {
	if !New(1, 2, 3).IsFinite() {
		t.Error("Finite vector reported non-finite")
	}
	for _, v := range []Vector3{
		New(math.NaN(), 0, 0),
		New(0, math.Inf(-1), 0),
		New(0, 0, math.NaN()),
	} {
		if v.IsFinite() {
			t.Errorf("Expected non-finite for %v", v)
		}
	}
}

// TestDistance2DIgnoresHeight verifies the pitch-plane distance drops z.
func TestDistance2DIgnoresHeight(t *testing.T) {
	a := New(0, 0, 0)
	b := New(3, 4, 10)

	if d := a.DistanceTo2D(b); d != 5.0 {
		t.Errorf("Expected 2D distance 5, got %f", d)
	}
	if d := a.DistanceTo(b); d <= 5.0 {
		t.Errorf("3D distance should include height, got %f", d)
	}
}

// TestLerp verifies interpolation hits both endpoints and the midpoint.
func TestLerp(t *testing.T) {
	a := New2D(0, 0)
	b := New2D(10, 20)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("t=0 should return start, got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("t=1 should return end, got %v", got)
	}
	if got := a.Lerp(b, 0.5); got != New2D(5, 10) {
		t.Errorf("t=0.5 should return midpoint, got %v", got)
	}
}
