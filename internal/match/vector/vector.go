// Package vector provides the 3D vector math shared by the match engine and
// its steering behaviors. X/Y are pitch-plane units, Z is height in meters.
package vector

import "math"

// Vector3 is a value type; all operations return new vectors.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func New(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func New2D(x, y float64) Vector3 {
	return Vector3{X: x, Y: y}
}

func Zero() Vector3 {
	return Vector3{}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Norm2D ignores height.
func (v Vector3) Norm2D() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector, or the zero vector when the input has no
// length or contains non-finite components.
func (v Vector3) Normalize() Vector3 {
	n := v.Norm()
	if n < 1e-9 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Vector3{}
	}
	return v.Scale(1.0 / n)
}

func (v Vector3) DistanceTo(o Vector3) float64 {
	return v.Sub(o).Norm()
}

// DistanceTo2D is the pitch-plane distance, ignoring height.
func (v Vector3) DistanceTo2D(o Vector3) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsFinite reports whether every component is a finite number.
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Limit caps the magnitude at max, preserving direction.
func (v Vector3) Limit(max float64) Vector3 {
	n := v.Norm()
	if n <= max || n < 1e-9 {
		return v
	}
	return v.Scale(max / n)
}

// Heading is the pitch-plane angle in radians.
func (v Vector3) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// Lerp interpolates toward o by t in [0,1].
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return v.Add(o.Sub(v).Scale(t))
}
