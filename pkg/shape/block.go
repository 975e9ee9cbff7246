package shape

import (
	"sync"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
)

// cubeBounds is the full block in local space.
var cubeBounds = geom.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)

// Cube is a plain full block. It has no profiles.
type Cube struct {
	geometry func() (*mesh.Mesh, error)
}

func NewCube() *Cube {
	return &Cube{geometry: sync.OnceValues(func() (*mesh.Mesh, error) {
		b := mesh.NewBuilder().Part("block")
		AddBox(b, cubeBounds, mesh.PolygonData{})
		return b.Build()
	})}
}

func (*Cube) Name() string { return "cube" }
func (*Cube) Flags() Flags { return 0 }
func (*Cube) AcceptsCladding() bool { return true }

func (c *Cube) Geometry(*Shape, MeshSource) (*mesh.Mesh, error) { return c.geometry() }

func (*Cube) CollisionBoxes(s *Shape, _ *mesh.Mesh) []geom.Box {
	return OcclusionBoxes(s.Occlusion)
}

// claddingThickness is one texel of a 16px texture.
const claddingThickness = 1.0 / 16

// Cladding is a thin slab lying on the block's local Down face.
type Cladding struct {
	geometry func() (*mesh.Mesh, error)
}

func NewCladding() *Cladding {
	return &Cladding{geometry: sync.OnceValues(func() (*mesh.Mesh, error) {
		b := mesh.NewBuilder().Part("slab")
		AddBox(b, claddingBox(), mesh.PolygonData{})
		return b.Build()
	})}
}

func claddingBox() geom.Box {
	return geom.B3(-0.5, -0.5, -0.5, 0.5, -0.5+claddingThickness, 0.5)
}

func (*Cladding) Name() string { return "cladding" }
func (*Cladding) Flags() Flags { return AllowUpsideDown }
func (*Cladding) AcceptsCladding() bool { return false }

func (c *Cladding) Geometry(*Shape, MeshSource) (*mesh.Mesh, error) { return c.geometry() }

func (*Cladding) CollisionBoxes(*Shape, *mesh.Mesh) []geom.Box {
	return []geom.Box{claddingBox()}
}
