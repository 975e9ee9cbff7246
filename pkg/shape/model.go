package shape

import (
	"fmt"
	"math"
	"sync"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
	"github.com/chazu/gable/pkg/transform"
)

// Model is a shape whose geometry comes from a loaded asset.
type Model struct {
	// MeshName is the asset name; empty means the shape's Name.
	MeshName string
	flags    Flags
	cladding bool
}

func NewModel(meshName string, flags Flags, acceptsCladding bool) *Model {
	return &Model{MeshName: meshName, flags: flags, cladding: acceptsCladding}
}

func (*Model) Name() string { return "model" }
func (m *Model) Flags() Flags { return m.flags }
func (m *Model) AcceptsCladding() bool { return m.cladding }

func (m *Model) meshName(s *Shape) string {
	if m.MeshName != "" {
		return m.MeshName
	}
	return s.Name
}

func (m *Model) Geometry(s *Shape, src MeshSource) (*mesh.Mesh, error) {
	name := m.meshName(s)
	if src != nil {
		if out, ok := src.Mesh(name); ok {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q for shape %q", ErrMissingMesh, name, s.Name)
}

func (*Model) CollisionBoxes(s *Shape, m *mesh.Mesh) []geom.Box {
	if boxes := partBoxes(m); len(boxes) > 0 {
		return boxes
	}
	return OcclusionBoxes(s.Occlusion)
}

// Banister is a model that runs along the nearest block edge and is pushed
// out against it. Its offset is derived once per mesh from the mesh's
// extent on local X.
type Banister struct {
	Model
	offsets sync.Map // *mesh.Mesh -> float64
}

func NewBanister(meshName string) *Banister {
	return &Banister{Model: Model{MeshName: meshName, flags: PlaceOffset}}
}

func (*Banister) Name() string { return "banister" }

// PlacementOffset is the distance that moves the mesh's +X side flush with
// the block edge. It is zero when the mesh is not loaded.
func (b *Banister) PlacementOffset(s *Shape, src MeshSource) float64 {
	m, err := b.Geometry(s, src)
	if err != nil || m.Bounds().IsEmpty() {
		return 0
	}
	if v, ok := b.offsets.Load(m); ok {
		return v.(float64)
	}
	off := 0.5 - m.Bounds().Max.X
	b.offsets.Store(m, off)
	return off
}

// OrientOnPlacement runs the banister along the block edge nearest to the
// hit and offsets it toward that edge.
func (*Banister) OrientOnPlacement(_ *Shape, _ geom.Dir, hit geom.Vec3, offset float64) (int, float64) {
	turn := 0
	if math.Abs(hit.Z) > math.Abs(hit.X) {
		turn = 1
	}
	local := transform.SideTurn(geom.Down, turn).Inverse().Point(hit)
	if local.X < 0 {
		return turn, -offset
	}
	return turn, offset
}

func (*Banister) Profile(_ *Shape, local geom.Dir) Profile {
	switch local {
	case geom.North:
		return BanisterN
	case geom.South:
		return BanisterS
	}
	return ProfileNone
}
