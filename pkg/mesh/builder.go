package mesh

import (
	"errors"
	"fmt"
)

// Builder assembles a mesh incrementally. Polygons are added to the current
// face of the current part; Part and Face switch (or create) those targets.
// Construction errors are collected and reported together by Build.
//
//	b := mesh.NewBuilder()
//	b.Part("body").Face(mesh.FaceUp).Quad(a, c, d, e)
//	m, err := b.Build()
type Builder struct {
	parts []*builderPart
	cur   *builderPart
	data  PolygonData
	errs  []error
}

type builderPart struct {
	id    string
	faces []*builderFace
	cur   *builderFace
}

type builderFace struct {
	id    FaceID
	polys []*Polygon
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Part selects the part with the given id, creating it if needed. Polygons
// added before the next Face call go to FaceGeneral.
func (b *Builder) Part(id string) *Builder {
	b.cur = nil
	for _, p := range b.parts {
		if p.id == id {
			b.cur = p
			break
		}
	}
	if b.cur == nil {
		b.cur = &builderPart{id: id}
		b.parts = append(b.parts, b.cur)
	}
	b.cur.cur = nil
	return b
}

// Face selects the face group of the current part, creating it if needed.
// Without a prior Part call polygons go into a part named "main".
func (b *Builder) Face(id FaceID) *Builder {
	if b.cur == nil {
		return b.Part("main").Face(id)
	}
	for _, f := range b.cur.faces {
		if f.id == id {
			b.cur.cur = f
			return b
		}
	}
	b.cur.cur = &builderFace{id: id}
	b.cur.faces = append(b.cur.faces, b.cur.cur)
	return b
}

// Data sets the metadata applied to polygons added from now on.
func (b *Builder) Data(d PolygonData) *Builder {
	b.data = d
	return b
}

func (b *Builder) Tri(a, c, d Vertex) *Builder {
	return b.add(NewTri(a, c, d, b.data))
}

func (b *Builder) Quad(a, c, d, e Vertex) *Builder {
	return b.add(NewQuad(a, c, d, e, b.data))
}

// Polygon adds an already built polygon.
func (b *Builder) Polygon(p *Polygon) *Builder {
	return b.add(p, nil)
}

func (b *Builder) add(p *Polygon, err error) *Builder {
	if b.cur == nil || b.cur.cur == nil {
		b.Face(FaceGeneral)
	}
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("part %q face %s: %w", b.cur.id, b.cur.cur.id, err))
		return b
	}
	b.cur.cur.polys = append(b.cur.cur.polys, p)
	return b
}

// Build returns the mesh, or every error recorded while building it.
func (b *Builder) Build() (*Mesh, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	parts := make([]*Part, len(b.parts))
	for i, bp := range b.parts {
		faces := make([]*Face, len(bp.faces))
		for j, bf := range bp.faces {
			faces[j] = &Face{id: bf.id, polys: bf.polys}
		}
		parts[i] = NewPart(bp.id, faces...)
	}
	return New(parts...)
}
