// Package mesh holds the immutable geometry model: vertices grouped into
// polygons, polygons into faces, faces into named parts, and parts into a
// mesh with a lazily built spatial index.
//
// Nothing in a Mesh is mutated after construction. Transforming a mesh
// produces a new one, so meshes can be shared between goroutines freely.
package mesh

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/chazu/gable/pkg/bvh"
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/transform"
)

// Hit is the result of a ray query against a mesh.
type Hit struct {
	Polygon *Polygon
	Point   geom.Vec3
	Dist    float64
}

// Mesh is an ordered set of uniquely named parts.
type Mesh struct {
	order []string
	parts map[string]*Part
	faces []*Face
	box   geom.Box

	indexOnce sync.Once
	index     *bvh.Tree[*Polygon]
}

// New builds a mesh from parts. Part ids must be unique.
func New(parts ...*Part) (*Mesh, error) {
	m := &Mesh{
		parts: make(map[string]*Part, len(parts)),
		box:   geom.EmptyBox(),
	}
	for _, p := range parts {
		if _, dup := m.parts[p.id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePart, p.id)
		}
		m.parts[p.id] = p
		m.order = append(m.order, p.id)
		m.faces = append(m.faces, p.faces...)
		m.box = m.box.Union(p.box)
	}
	return m, nil
}

// Empty returns a mesh with no parts.
func Empty() *Mesh {
	m, _ := New()
	return m
}

// Part returns the part with the given id. Asking for a part that does not
// exist is a programming error and panics; use LookupPart for optional parts.
func (m *Mesh) Part(id string) *Part {
	p, ok := m.parts[id]
	if !ok {
		panic(fmt.Sprintf("mesh: no part %q", id))
	}
	return p
}

func (m *Mesh) LookupPart(id string) (*Part, bool) {
	p, ok := m.parts[id]
	return p, ok
}

// PartIDs returns part ids in construction order.
func (m *Mesh) PartIDs() []string { return slices.Clone(m.order) }

// Parts iterates parts in construction order.
func (m *Mesh) Parts() iter.Seq[*Part] {
	return func(yield func(*Part) bool) {
		for _, id := range m.order {
			if !yield(m.parts[id]) {
				return
			}
		}
	}
}

// Faces returns every face of every part, flattened in part order.
func (m *Mesh) Faces() []*Face { return m.faces }

// Polygons returns every polygon in part and face order.
func (m *Mesh) Polygons() []*Polygon {
	out := make([]*Polygon, 0, m.PolygonCount())
	for _, f := range m.faces {
		out = append(out, f.polys...)
	}
	return out
}

func (m *Mesh) PolygonCount() int {
	n := 0
	for _, f := range m.faces {
		n += len(f.polys)
	}
	return n
}

// Bounds is the union of all part bounds.
func (m *Mesh) Bounds() geom.Box { return m.box }

func (m *Mesh) IsEmpty() bool { return m.PolygonCount() == 0 }

// Transform returns a new mesh with every part mapped by t. The new mesh
// builds its own index on first query.
func (m *Mesh) Transform(t transform.Transform, transformUVs bool) *Mesh {
	out := &Mesh{
		order: slices.Clone(m.order),
		parts: make(map[string]*Part, len(m.parts)),
		box:   geom.EmptyBox(),
	}
	for _, id := range m.order {
		p := m.parts[id].Transform(t, transformUVs)
		out.parts[id] = p
		out.faces = append(out.faces, p.faces...)
		out.box = out.box.Union(p.box)
	}
	return out
}

func (m *Mesh) tree() *bvh.Tree[*Polygon] {
	m.indexOnce.Do(func() {
		var items []bvh.Item[*Polygon]
		for _, f := range m.faces {
			for _, p := range f.polys {
				items = append(items, bvh.Item[*Polygon]{Value: p, Box: p.box})
			}
		}
		m.index = bvh.New(items)
	})
	return m.index
}

// Search returns the polygons that actually touch box, not just the ones
// whose bounds do.
func (m *Mesh) Search(box geom.Box) []*Polygon {
	return slices.Collect(m.SearchSeq(box))
}

// SearchSeq is the lazy form of Search. The sequence can be ranged over
// more than once.
func (m *Mesh) SearchSeq(box geom.Box) iter.Seq[*Polygon] {
	return func(yield func(*Polygon) bool) {
		for p := range m.tree().All(box) {
			if p.IntersectsBox(box) && !yield(p) {
				return
			}
		}
	}
}

// IntersectRay returns the nearest polygon hit along r.
func (m *Mesh) IntersectRay(r geom.Ray) (Hit, bool) {
	p, d, ok := m.tree().IntersectRay(r, func(p *Polygon) (float64, bool) {
		return p.IntersectRay(r)
	})
	if !ok {
		return Hit{}, false
	}
	return Hit{Polygon: p, Point: r.At(d), Dist: d}, true
}

// Equal reports structural equality: same parts in the same order with
// equal faces and polygons.
func (m *Mesh) Equal(o *Mesh) bool {
	if !slices.Equal(m.order, o.order) {
		return false
	}
	for _, id := range m.order {
		if !m.parts[id].Equal(o.parts[id]) {
			return false
		}
	}
	return true
}
