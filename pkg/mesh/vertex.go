package mesh

import (
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/transform"
)

// Vertex is a position with a normal and texture coordinates.
type Vertex struct {
	Pos    geom.Vec3 `json:"pos"`
	Normal geom.Vec3 `json:"normal"`
	U      float64   `json:"u"`
	V      float64   `json:"v"`
}

// V is shorthand for a vertex without a normal. Polygon constructors fill
// missing normals with the face normal.
func V(x, y, z, u, v float64) Vertex {
	return Vertex{Pos: geom.V3(x, y, z), U: u, V: v}
}

// Transform returns the vertex mapped by t. Texture coordinates are only
// remapped when transformUVs is set.
func (v Vertex) Transform(t transform.Transform, transformUVs bool) Vertex {
	out := Vertex{
		Pos:    t.Point(v.Pos),
		Normal: t.Normal(v.Normal),
		U:      v.U,
		V:      v.V,
	}
	if transformUVs {
		out.U, out.V = t.UV(v.U, v.V)
	}
	return out
}
