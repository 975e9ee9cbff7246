package mesh

import (
	"slices"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/transform"
)

// Part is a named set of faces, usually one texture group of a shape.
type Part struct {
	id    string
	faces []*Face
	box   geom.Box
}

// NewPart builds a part and caches its bounds.
func NewPart(id string, faces ...*Face) *Part {
	p := &Part{id: id, faces: slices.Clone(faces), box: geom.EmptyBox()}
	for _, f := range p.faces {
		for _, poly := range f.polys {
			p.box = p.box.Union(poly.box)
		}
	}
	return p
}

func (p *Part) ID() string { return p.id }

// Faces returns the part's faces in construction order.
func (p *Part) Faces() []*Face { return p.faces }

// Bounds is empty for a part without polygons.
func (p *Part) Bounds() geom.Box { return p.box }

// Face returns the first face with the given id.
func (p *Part) Face(id FaceID) (*Face, bool) {
	for _, f := range p.faces {
		if f.id == id {
			return f, true
		}
	}
	return nil, false
}

// PolygonCount counts polygons over all faces.
func (p *Part) PolygonCount() int {
	n := 0
	for _, f := range p.faces {
		n += len(f.polys)
	}
	return n
}

func (p *Part) Transform(t transform.Transform, transformUVs bool) *Part {
	faces := make([]*Face, len(p.faces))
	for i, f := range p.faces {
		faces[i] = f.Transform(t, transformUVs)
	}
	return NewPart(p.id, faces...)
}

func (p *Part) Equal(o *Part) bool {
	return p.id == o.id && slices.EqualFunc(p.faces, o.faces, (*Face).Equal)
}
