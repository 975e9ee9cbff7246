package mesh

import (
	"fmt"
	"math"
	"slices"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/transform"
)

// rayEpsilon widens triangle edges slightly so rays through a shared edge
// hit one of the two triangles.
const rayEpsilon = 1e-12

// minArea is the smallest accepted twice-area of a polygon.
const minArea = 1e-12

// Polygon is a triangle or a quad with a precomputed face normal and bounds.
// Polygons are immutable; Transform returns a new one.
type Polygon struct {
	verts  []Vertex
	normal geom.Vec3
	box    geom.Box
	data   PolygonData
}

// NewTri builds a triangle. Vertices are counter-clockwise seen from the
// front.
func NewTri(a, b, c Vertex, data PolygonData) (*Polygon, error) {
	return newPolygon([]Vertex{a, b, c}, data)
}

// NewQuad builds a quad. Vertices are counter-clockwise seen from the front
// and should be coplanar.
func NewQuad(a, b, c, d Vertex, data PolygonData) (*Polygon, error) {
	return newPolygon([]Vertex{a, b, c, d}, data)
}

func newPolygon(verts []Vertex, data PolygonData) (*Polygon, error) {
	distinct := make([]geom.Vec3, 0, len(verts))
	for _, v := range verts {
		if !slices.ContainsFunc(distinct, v.Pos.ApproxEqual) {
			distinct = append(distinct, v.Pos)
		}
	}
	if len(distinct) < 3 {
		return nil, fmt.Errorf("%w: %d distinct positions", ErrDegeneratePolygon, len(distinct))
	}

	n := newellNormal(verts)
	if n.Length() < minArea {
		return nil, fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	n = n.Normalize()

	p := &Polygon{
		verts:  slices.Clone(verts),
		normal: n,
		box:    geom.EmptyBox(),
		data:   data,
	}
	for i := range p.verts {
		if p.verts[i].Normal == (geom.Vec3{}) {
			p.verts[i].Normal = n
		}
		p.box = p.box.ExpandTo(p.verts[i].Pos)
	}
	return p, nil
}

// newellNormal sums v_i × v_i+1, which is twice the vector area of the
// polygon and points out of the counter-clockwise side.
func newellNormal(verts []Vertex) geom.Vec3 {
	var n geom.Vec3
	for i := range verts {
		j := (i + 1) % len(verts)
		n = n.Add(verts[i].Pos.Cross(verts[j].Pos))
	}
	return n
}

// IsTri reports whether the polygon has three vertices.
func (p *Polygon) IsTri() bool { return len(p.verts) == 3 }

// IsQuad reports whether the polygon has four vertices.
func (p *Polygon) IsQuad() bool { return len(p.verts) == 4 }

// Vertices returns the polygon's vertices. The slice must not be modified.
func (p *Polygon) Vertices() []Vertex { return p.verts }

// Vertex returns the i'th vertex.
func (p *Polygon) Vertex(i int) Vertex { return p.verts[i] }

// Normal returns the unit face normal.
func (p *Polygon) Normal() geom.Vec3 { return p.normal }

// Bounds returns the polygon's axis-aligned bounding box.
func (p *Polygon) Bounds() geom.Box { return p.box }

// Data returns the polygon's metadata.
func (p *Polygon) Data() PolygonData { return p.data }

// Transform maps every vertex, recomputes the bounds and remaps the cull
// face. Reflections reverse the winding so it keeps agreeing with the
// mapped normal.
func (p *Polygon) Transform(t transform.Transform, transformUVs bool) *Polygon {
	out := &Polygon{
		verts:  make([]Vertex, len(p.verts)),
		normal: t.Normal(p.normal),
		box:    geom.EmptyBox(),
		data:   p.data.Transform(t),
	}
	for i, v := range p.verts {
		out.verts[i] = v.Transform(t, transformUVs)
		out.box = out.box.ExpandTo(out.verts[i].Pos)
	}
	if !t.IsProper() {
		slices.Reverse(out.verts)
	}
	return out
}

// triangles calls fn for each triangle of the polygon's fan.
func (p *Polygon) triangles(fn func(a, b, c geom.Vec3) bool) {
	for i := 1; i+1 < len(p.verts); i++ {
		if !fn(p.verts[0].Pos, p.verts[i].Pos, p.verts[i+1].Pos) {
			return
		}
	}
}

// IntersectRay returns the parametric distance of the nearest point where
// r meets the polygon. Both faces are hit.
func (p *Polygon) IntersectRay(r geom.Ray) (float64, bool) {
	if _, _, ok := p.box.IntersectRay(r); !ok {
		return 0, false
	}
	best, found := math.Inf(1), false
	p.triangles(func(a, b, c geom.Vec3) bool {
		if t, ok := rayTriangle(r, a, b, c); ok && t < best {
			best, found = t, true
		}
		return true
	})
	return best, found
}

// rayTriangle is the Möller–Trumbore test.
func rayTriangle(r geom.Ray, a, b, c geom.Vec3) (float64, bool) {
	e1, e2 := b.Sub(a), c.Sub(a)
	pv := r.Dir.Cross(e2)
	det := e1.Dot(pv)
	if math.Abs(det) < minArea {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(pv) * inv
	if u < -rayEpsilon || u > 1+rayEpsilon {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < -rayEpsilon || u+v > 1+rayEpsilon {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectsBox reports whether the polygon touches or overlaps box, using
// the separating axis test: the three box axes, the polygon normal, and the
// cross products of each polygon edge with each box axis.
func (p *Polygon) IntersectsBox(box geom.Box) bool {
	if box.IsEmpty() || !p.box.Intersects(box) {
		return false
	}
	c, e := box.Center(), box.Extent()

	rel := make([]geom.Vec3, len(p.verts))
	for i, v := range p.verts {
		rel[i] = v.Pos.Sub(c)
	}

	separated := func(axis geom.Vec3) bool {
		if axis.LengthSquared() < minArea {
			return false
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range rel {
			d := axis.Dot(v)
			lo, hi = math.Min(lo, d), math.Max(hi, d)
		}
		r := e.Dot(axis.Abs())
		return lo > r || hi < -r
	}

	if separated(p.normal) {
		return false
	}
	boxAxes := [3]geom.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	for i := range rel {
		edge := rel[(i+1)%len(rel)].Sub(rel[i])
		for _, a := range boxAxes {
			if separated(a.Cross(edge)) {
				return false
			}
		}
	}
	return true
}

// Equal reports structural equality: same vertices in the same order and
// equal metadata.
func (p *Polygon) Equal(o *Polygon) bool {
	return slices.Equal(p.verts, o.verts) && p.data.Equal(o.data)
}
