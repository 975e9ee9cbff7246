package geom

import "github.com/chewxy/math32"

// Vec3f is the float32 vector used by authored geometry. Meshes are stored
// in float64; Vec3f is the interchange type for assets and render buffers.
type Vec3f struct {
	X, Y, Z float32
}

func (v Vec3f) Elem(a Axis) float64 {
	switch a {
	case AxisX:
		return float64(v.X)
	case AxisY:
		return float64(v.Y)
	case AxisZ:
		return float64(v.Z)
	}
	panic("geom: invalid axis")
}

// Vec widens v to world precision.
func (v Vec3f) Vec() Vec3 { return Vec3{float64(v.X), float64(v.Y), float64(v.Z)} }

func (v Vec3f) Add(o Vec3f) Vec3f { return Vec3f{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3f) Sub(o Vec3f) Vec3f { return Vec3f{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3f) Scale(s float32) Vec3f {
	return Vec3f{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3f) Dot(o Vec3f) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3f) Cross(o Vec3f) Vec3f {
	return Vec3f{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3f) Length() float32 { return math32.Sqrt(v.Dot(v)) }

func (v Vec3f) Normalize() Vec3f {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vec3f) Min(o Vec3f) Vec3f {
	return Vec3f{math32.Min(v.X, o.X), math32.Min(v.Y, o.Y), math32.Min(v.Z, o.Z)}
}

func (v Vec3f) Max(o Vec3f) Vec3f {
	return Vec3f{math32.Max(v.X, o.X), math32.Max(v.Y, o.Y), math32.Max(v.Z, o.Z)}
}
