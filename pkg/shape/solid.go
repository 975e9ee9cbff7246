package shape

import (
	"math"
	"slices"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
)

// solid emits the faces of a convex piece. Each polygon is wound so that
// its normal points away from center, which must lie inside the piece.
type solid struct {
	b      *mesh.Builder
	center geom.Vec3
}

func (s solid) poly(face mesh.FaceID, data mesh.PolygonData, pts ...geom.Vec3) {
	n := pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0]))
	var c geom.Vec3
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Scale(1 / float64(len(pts)))
	if n.Dot(c.Sub(s.center)) < 0 {
		pts = slices.Clone(pts)
		slices.Reverse(pts)
	}

	axis := geom.NearestDir(n).Axis()
	vs := make([]mesh.Vertex, len(pts))
	for i, p := range pts {
		u, v := planarUV(p, axis)
		vs[i] = mesh.Vertex{Pos: p, U: u, V: v}
	}
	s.b.Face(face).Data(data)
	if len(vs) == 3 {
		s.b.Tri(vs[0], vs[1], vs[2])
	} else {
		s.b.Quad(vs[0], vs[1], vs[2], vs[3])
	}
}

// planarUV projects a block-local point onto the unit texture square of
// the plane perpendicular to axis.
func planarUV(p geom.Vec3, axis geom.Axis) (float64, float64) {
	switch axis {
	case geom.AxisX:
		return p.Z + 0.5, p.Y + 0.5
	case geom.AxisY:
		return p.X + 0.5, p.Z + 0.5
	default:
		return p.X + 0.5, p.Y + 0.5
	}
}

// onBoundary returns the block face a planar polygon lies on, if any.
func onBoundary(pts []geom.Vec3) (geom.Dir, bool) {
	for _, d := range geom.Dirs {
		a := d.Axis()
		want := -0.5
		if d.Positive() {
			want = 0.5
		}
		all := true
		for _, p := range pts {
			if math.Abs(p.Elem(a)-want) > geom.Epsilon {
				all = false
				break
			}
		}
		if all {
			return d, true
		}
	}
	return 0, false
}

// boundaryPoly files the polygon under its block face, with a cull face,
// when it lies on the block boundary and under FaceGeneral otherwise.
func (s solid) boundaryPoly(data mesh.PolygonData, pts ...geom.Vec3) {
	if d, ok := onBoundary(pts); ok {
		data.CullFace = mesh.Cull(d)
		s.poly(mesh.FaceOf(d), data, pts...)
		return
	}
	s.poly(mesh.FaceGeneral, data, pts...)
}

// AddBox emits the six sides of an axis-aligned box into b. Sides lying on
// the block boundary are filed under their block face with a cull face.
func AddBox(b *mesh.Builder, box geom.Box, data mesh.PolygonData) {
	s := solid{b: b, center: box.Center()}
	for _, d := range geom.Dirs {
		a := d.Axis()
		fixed := box.Min.Elem(a)
		if d.Positive() {
			fixed = box.Max.Elem(a)
		}
		u, w := (a+1)%3, (a+2)%3
		corner := func(cu, cw float64) geom.Vec3 {
			return geom.Vec3{}.With(a, fixed).With(u, cu).With(w, cw)
		}
		u0, u1 := box.Min.Elem(u), box.Max.Elem(u)
		w0, w1 := box.Min.Elem(w), box.Max.Elem(w)
		s.boundaryPoly(data, corner(u0, w0), corner(u1, w0), corner(u1, w1), corner(u0, w1))
	}
}
