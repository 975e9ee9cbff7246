// Package geom holds the value types shared by every layer of the shape
// kernel: vectors, symbolic cube directions, axis-aligned boxes and rays.
//
// All types here are plain values. Operations return new values and never
// modify their receivers, with the single exception of MutVec3, which exists
// for accumulation loops.
package geom

import "math"

// Epsilon is the tolerance used by approximate comparisons.
const Epsilon = 1e-9

// Axis selects a vector component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Vector is the read interface shared by the float64, float32 and mutable
// vector types.
type Vector interface {
	Elem(a Axis) float64
	Vec() Vec3
}

// Vec3 is an immutable 3D vector in world-space precision.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Elem returns the component on the given axis.
func (v Vec3) Elem(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	panic("geom: invalid axis")
}

// Vec returns v.
func (v Vec3) Vec() Vec3 { return v }

// With returns a copy of v with the component on axis a replaced.
func (v Vec3) With(a Axis, f float64) Vec3 {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	case AxisZ:
		v.Z = f
	default:
		panic("geom: invalid axis")
	}
	return v
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) Neg() Vec3          { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the right-handed cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 { return v.Dot(v) }
func (v Vec3) Length() float64        { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// MaxAxis returns the axis with the largest component.
func (v Vec3) MaxAxis() Axis {
	if v.X >= v.Y && v.X >= v.Z {
		return AxisX
	}
	if v.Y >= v.Z {
		return AxisY
	}
	return AxisZ
}

// ApproxEqual reports whether every component differs by at most Epsilon.
func (v Vec3) ApproxEqual(o Vec3) bool {
	return math.Abs(v.X-o.X) <= Epsilon &&
		math.Abs(v.Y-o.Y) <= Epsilon &&
		math.Abs(v.Z-o.Z) <= Epsilon
}

// Float32 narrows v to the authoring precision.
func (v Vec3) Float32() Vec3f {
	return Vec3f{float32(v.X), float32(v.Y), float32(v.Z)}
}

// MutVec3 is a mutable vector for accumulation. Vec returns a copy, so a
// MutVec3 never aliases a Vec3 handed out earlier.
type MutVec3 struct {
	v Vec3
}

// NewMutVec3 starts an accumulator at v.
func NewMutVec3(v Vector) *MutVec3 {
	return &MutVec3{v: v.Vec()}
}

func (m *MutVec3) Elem(a Axis) float64 { return m.v.Elem(a) }
func (m *MutVec3) Vec() Vec3           { return m.v }

// Set replaces the current value.
func (m *MutVec3) Set(v Vector) *MutVec3 {
	m.v = v.Vec()
	return m
}

// SetElem replaces one component.
func (m *MutVec3) SetElem(a Axis, f float64) *MutVec3 {
	m.v = m.v.With(a, f)
	return m
}

// AddInPlace adds o to the accumulator.
func (m *MutVec3) AddInPlace(o Vector) *MutVec3 {
	m.v = m.v.Add(o.Vec())
	return m
}

// ScaleInPlace multiplies the accumulator by s.
func (m *MutVec3) ScaleInPlace(s float64) *MutVec3 {
	m.v = m.v.Scale(s)
	return m
}

var (
	_ Vector = Vec3{}
	_ Vector = Vec3f{}
	_ Vector = (*MutVec3)(nil)
)
