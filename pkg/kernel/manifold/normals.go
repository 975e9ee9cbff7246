package manifold

import (
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/kernel"
)

// smoothNormals replaces the normals of m by the average of the face
// normals of the triangles incident on each vertex. It is the fallback
// when MeshGL carries no normals.
func smoothNormals(m *kernel.Mesh) {
	acc := make([]geom.Vec3f, m.VertexCount())
	for t := range m.TriangleCount() {
		c := m.Triangle(t)
		// Unnormalized, so larger triangles weigh more.
		n := c[1].Sub(c[0]).Cross(c[2].Sub(c[0]))
		for j := range 3 {
			i := m.Indices[3*t+j]
			acc[i] = acc[i].Add(n)
		}
	}
	for i, n := range acc {
		n = n.Normalize()
		m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2] = n.X, n.Y, n.Z
	}
}
