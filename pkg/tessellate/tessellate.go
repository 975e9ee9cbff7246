// Package tessellate walks a mesh and produces flat triangle buffers for a
// render layer. One buffer is produced per part.
package tessellate

import (
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/kernel"
	"github.com/chazu/gable/pkg/mesh"
)

// Occluded reports whether the neighbour on side d hides polygons culled
// toward d.
type Occluded func(d geom.Dir) bool

// None occludes nothing.
func None(geom.Dir) bool { return false }

// Tessellate produces one triangle buffer per part of m, in part order.
// Quads are fanned into two triangles. Polygons whose cull face is
// occluded are skipped, and parts left with no triangles produce no
// buffer. A nil occluded is the same as None. The mesh is never mutated.
func Tessellate(m *mesh.Mesh, occluded Occluded) []*kernel.Mesh {
	if m == nil {
		return nil
	}
	if occluded == nil {
		occluded = None
	}

	var out []*kernel.Mesh
	for part := range m.Parts() {
		buf := &kernel.Mesh{PartName: part.ID()}
		for _, f := range part.Faces() {
			for _, p := range f.Polygons() {
				if cf := p.Data().CullFace; cf != nil && occluded(*cf) {
					continue
				}
				emit(buf, p)
			}
		}
		if !buf.IsEmpty() {
			out = append(out, buf)
		}
	}
	return out
}

// emit appends p to buf as a triangle fan around its first vertex.
func emit(buf *kernel.Mesh, p *mesh.Polygon) {
	verts := p.Vertices()
	idx := make([]uint32, len(verts))
	for i, v := range verts {
		idx[i] = buf.AddVertex(v.Pos.Float32(), v.Normal.Float32(), float32(v.U), float32(v.V))
	}
	tex := int32(p.Data().Texture)
	for i := 1; i+1 < len(idx); i++ {
		buf.AddTriangle(idx[0], idx[i], idx[i+1], tex)
	}
}

// Merge concatenates buffers into one, rebasing indices. The part name of
// the result is name.
func Merge(name string, bufs ...*kernel.Mesh) *kernel.Mesh {
	out := &kernel.Mesh{PartName: name}
	for _, b := range bufs {
		base := uint32(out.VertexCount())
		out.Vertices = append(out.Vertices, b.Vertices...)
		out.Normals = append(out.Normals, b.Normals...)
		out.UVs = append(out.UVs, b.UVs...)
		for _, i := range b.Indices {
			out.Indices = append(out.Indices, base+i)
		}
		out.Textures = append(out.Textures, b.Textures...)
	}
	return out
}
