package shape

import (
	"sync"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
)

// stairsOcclusion is the bottom half plus the top north quarter.
const stairsOcclusion uint8 = 0x0F | 1<<4 | 1<<5

// Stairs is a single step: a bottom slab with a riser along local North.
// Flights continue side by side along local X.
type Stairs struct {
	geometry func() (*mesh.Mesh, error)
}

func NewStairs() *Stairs {
	return &Stairs{geometry: sync.OnceValues(stairsMesh)}
}

func stairsMesh() (*mesh.Mesh, error) {
	const lo, mid, hi = -0.5, 0.0, 0.5
	p := geom.V3
	b := mesh.NewBuilder().Part("stairs")
	var data mesh.PolygonData

	slab := solid{b: b, center: p(0, -0.25, 0)}
	slab.boundaryPoly(data, p(lo, lo, lo), p(hi, lo, lo), p(hi, lo, hi), p(lo, lo, hi))
	slab.boundaryPoly(data, p(lo, lo, hi), p(hi, lo, hi), p(hi, mid, hi), p(lo, mid, hi))
	slab.boundaryPoly(data, p(lo, mid, mid), p(hi, mid, mid), p(hi, mid, hi), p(lo, mid, hi))
	for _, x := range []float64{lo, hi} {
		slab.boundaryPoly(data, p(x, lo, lo), p(x, lo, hi), p(x, mid, hi), p(x, mid, lo))
	}

	step := solid{b: b, center: p(0, 0.25, -0.25)}
	step.boundaryPoly(data, p(lo, lo, lo), p(hi, lo, lo), p(hi, hi, lo), p(lo, hi, lo))
	step.boundaryPoly(data, p(lo, hi, lo), p(hi, hi, lo), p(hi, hi, mid), p(lo, hi, mid))
	step.boundaryPoly(data, p(lo, mid, mid), p(hi, mid, mid), p(hi, hi, mid), p(lo, hi, mid))
	for _, x := range []float64{lo, hi} {
		step.boundaryPoly(data, p(x, mid, lo), p(x, mid, mid), p(x, hi, mid), p(x, hi, lo))
	}
	return b.Build()
}

func (*Stairs) Name() string          { return "stairs" }
func (*Stairs) Flags() Flags          { return AllowUpsideDown }
func (*Stairs) AcceptsCladding() bool { return false }

func (st *Stairs) Geometry(*Shape, MeshSource) (*mesh.Mesh, error) { return st.geometry() }

func (*Stairs) CollisionBoxes(s *Shape, _ *mesh.Mesh) []geom.Box {
	return OcclusionBoxes(s.Occlusion)
}

func (*Stairs) Profile(_ *Shape, local geom.Dir) Profile {
	switch local {
	case geom.East:
		return StairsE
	case geom.West:
		return StairsW
	}
	return ProfileNone
}
