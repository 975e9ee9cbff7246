package kernel

import "github.com/chazu/gable/pkg/geom"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, uvs has 2 floats per vertex, and
// indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs      []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Textures []int32   `json:"textures"` // one texture index per triangle
	PartName string    `json:"partName"` // which mesh part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) geom.Vec3f {
	return geom.Vec3f{X: m.Vertices[3*i], Y: m.Vertices[3*i+1], Z: m.Vertices[3*i+2]}
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) [3]geom.Vec3f {
	return [3]geom.Vec3f{
		m.Vertex(int(m.Indices[3*i])),
		m.Vertex(int(m.Indices[3*i+1])),
		m.Vertex(int(m.Indices[3*i+2])),
	}
}

// Bounds returns the box around every vertex.
func (m *Mesh) Bounds() geom.Box {
	if m.IsEmpty() {
		return geom.EmptyBox()
	}
	lo, hi := m.Vertex(0), m.Vertex(0)
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		lo, hi = lo.Min(v), hi.Max(v)
	}
	return geom.Box{Min: lo.Vec(), Max: hi.Vec()}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos, normal geom.Vec3f, u, v float32) uint32 {
	idx := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, pos.X, pos.Y, pos.Z)
	m.Normals = append(m.Normals, normal.X, normal.Y, normal.Z)
	m.UVs = append(m.UVs, u, v)
	return idx
}

// AddTriangle appends a triangle over existing vertices.
func (m *Mesh) AddTriangle(a, b, c uint32, texture int32) {
	m.Indices = append(m.Indices, a, b, c)
	m.Textures = append(m.Textures, texture)
}
