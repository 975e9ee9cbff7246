package geom

import "math"

// Box is an axis-aligned bounding box. Boxes are closed: two boxes that
// share only a face or an edge intersect.
type Box struct {
	Min Vec3 `json:"min" yaml:"min"`
	Max Vec3 `json:"max" yaml:"max"`
}

// EmptyBox returns the identity for Union: it contains nothing and
// intersects nothing.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// B3 builds a box from two corners given in any order.
func B3(x0, y0, z0, x1, y1, z1 float64) Box {
	a, b := Vec3{x0, y0, z0}, Vec3{x1, y1, z1}
	return Box{Min: a.Min(b), Max: a.Max(b)}
}

// BoxOf returns the smallest box containing every point.
func BoxOf(points ...Vec3) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.ExpandTo(p)
	}
	return b
}

// IsEmpty reports whether max < min on any axis.
func (b Box) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandTo returns b grown to include p.
func (b Box) ExpandTo(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Intersection returns the overlap of the two boxes, which is empty when
// they do not intersect.
func (b Box) Intersection(o Box) Box {
	return Box{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
}

// Grow returns b expanded by d on every side.
func (b Box) Grow(d float64) Box {
	g := Vec3{d, d, d}
	return Box{Min: b.Min.Sub(g), Max: b.Max.Add(g)}
}

// Translate returns b moved by v.
func (b Box) Translate(v Vec3) Box {
	return Box{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

func (b Box) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }
func (b Box) Size() Vec3   { return b.Max.Sub(b.Min) }

// Extent returns half the size.
func (b Box) Extent() Vec3 { return b.Size().Scale(0.5) }

// LongestAxis returns the axis along which the box is largest.
func (b Box) LongestAxis() Axis { return b.Size().MaxAxis() }

// Contains reports whether p lies inside or on the boundary of b.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether o lies entirely within b.
func (b Box) ContainsBox(o Box) bool {
	return b.Contains(o.Min) && b.Contains(o.Max)
}

// Intersects reports whether the two boxes overlap or touch.
func (b Box) Intersects(o Box) bool {
	return o.Max.X >= b.Min.X && o.Min.X <= b.Max.X &&
		o.Max.Y >= b.Min.Y && o.Min.Y <= b.Max.Y &&
		o.Max.Z >= b.Min.Z && o.Min.Z <= b.Max.Z
}

// ApproxEqual compares both corners within Epsilon.
func (b Box) ApproxEqual(o Box) bool {
	return b.Min.ApproxEqual(o.Min) && b.Max.ApproxEqual(o.Max)
}

// IntersectRay clips the ray against the box using the slab method and
// returns the parametric entry and exit distances. A ray starting inside the
// box has tmin == 0. ok is false when the ray misses or the box lies behind
// the origin.
func (b Box) IntersectRay(r Ray) (tmin, tmax float64, ok bool) {
	tmin, tmax = 0, math.Inf(1)
	for a := AxisX; a <= AxisZ; a++ {
		o, d := r.Origin.Elem(a), r.Dir.Elem(a)
		lo, hi := b.Min.Elem(a), b.Max.Elem(a)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t0, t1 := (lo-o)*inv, (hi-o)*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}
