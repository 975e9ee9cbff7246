package mesh

import (
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/transform"
)

// PolygonData is the per-polygon rendering metadata.
type PolygonData struct {
	Texture int `json:"texture"`
	Tint    int `json:"tint"`
	// CullFace, when set, means the polygon is only drawn while the
	// neighbouring block on that side does not occlude it.
	CullFace *geom.Dir `json:"cull_face,omitempty"`
}

// Cull returns a pointer suitable for PolygonData.CullFace.
func Cull(d geom.Dir) *geom.Dir {
	return &d
}

// Transform remaps the cull face through t and copies everything else.
// The cull face always follows the geometry, whatever the caller decided
// about texture coordinates.
func (d PolygonData) Transform(t transform.Transform) PolygonData {
	out := d
	if d.CullFace != nil {
		out.CullFace = Cull(t.Dir(*d.CullFace))
	}
	return out
}

// Equal compares by value, including the cull face.
func (d PolygonData) Equal(o PolygonData) bool {
	if d.Texture != o.Texture || d.Tint != o.Tint {
		return false
	}
	if (d.CullFace == nil) != (o.CullFace == nil) {
		return false
	}
	return d.CullFace == nil || *d.CullFace == *o.CullFace
}
