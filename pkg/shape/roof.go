package shape

import (
	"fmt"
	"sync"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
)

// RoofVariant selects the procedural roof piece.
type RoofVariant uint8

const (
	// RoofTile slopes down from a full-height back on local North to the
	// eave on local South.
	RoofTile RoofVariant = iota
	// RoofRidge is two slopes meeting along local X.
	RoofRidge
	// RoofCorner is a hip corner rising to the north-west top edge.
	RoofCorner
	// RoofValley is two slopes meeting at the bottom along local X, rising
	// to full height on local North and South.
	RoofValley
	// RoofOverhang is the tile slope as a thin slab with nothing beneath,
	// for eaves that project past the wall.
	RoofOverhang
)

// overhangThickness is the vertical thickness of the overhang slab.
const overhangThickness = 1.0 / 8

func (v RoofVariant) String() string {
	switch v {
	case RoofTile:
		return "tile"
	case RoofRidge:
		return "ridge"
	case RoofCorner:
		return "corner"
	case RoofValley:
		return "valley"
	case RoofOverhang:
		return "overhang"
	}
	return fmt.Sprintf("roof(%d)", uint8(v))
}

// Roof is the family of procedurally built roof pieces.
type Roof struct {
	Variant  RoofVariant
	geometry func() (*mesh.Mesh, error)
}

func NewRoof(v RoofVariant) *Roof {
	return &Roof{Variant: v, geometry: sync.OnceValues(func() (*mesh.Mesh, error) {
		return roofMesh(v)
	})}
}

func (*Roof) Name() string { return "roof" }
func (*Roof) Flags() Flags { return AllowUpsideDown }
func (*Roof) AcceptsCladding() bool { return false }

func (r *Roof) Geometry(*Shape, MeshSource) (*mesh.Mesh, error) { return r.geometry() }

// CollisionBoxes follows the occlusion mask. A roof piece that occludes
// nothing, like the overhang, collides with its mesh bounds instead.
func (*Roof) CollisionBoxes(s *Shape, m *mesh.Mesh) []geom.Box {
	if s.Occlusion == 0 {
		return partBoxes(m)
	}
	return OcclusionBoxes(s.Occlusion)
}

func (r *Roof) Profile(_ *Shape, local geom.Dir) Profile {
	switch r.Variant {
	case RoofTile:
		switch local {
		case geom.East:
			return RoofLR
		case geom.West:
			return RoofRL
		case geom.North:
			return RoofBack
		case geom.South:
			return RoofEave
		}
	case RoofOverhang:
		switch local {
		case geom.East:
			return RoofLR
		case geom.West:
			return RoofRL
		}
	case RoofValley:
		switch local {
		case geom.East, geom.West:
			return ValleyEnd
		case geom.North, geom.South:
			return ValleySlope
		}
	case RoofRidge:
		switch local {
		case geom.East, geom.West:
			return RidgeEnd
		case geom.North, geom.South:
			return RidgeSlope
		}
	case RoofCorner:
		switch local {
		case geom.North:
			return RoofLR
		case geom.West:
			return RoofRL
		}
	}
	return ProfileNone
}

func roofMesh(v RoofVariant) (*mesh.Mesh, error) {
	const lo, hi = -0.5, 0.5
	p := geom.V3
	b := mesh.NewBuilder().Part("roof")
	var data mesh.PolygonData

	switch v {
	case RoofTile:
		s := solid{b: b, center: p(0, -0.2, -0.2)}
		s.boundaryPoly(data, p(lo, lo, lo), p(hi, lo, lo), p(hi, lo, hi), p(lo, lo, hi))
		s.boundaryPoly(data, p(lo, lo, lo), p(hi, lo, lo), p(hi, hi, lo), p(lo, hi, lo))
		s.boundaryPoly(data, p(lo, hi, lo), p(hi, hi, lo), p(hi, lo, hi), p(lo, lo, hi))
		s.boundaryPoly(data, p(hi, lo, lo), p(hi, hi, lo), p(hi, lo, hi))
		s.boundaryPoly(data, p(lo, lo, lo), p(lo, hi, lo), p(lo, lo, hi))
	case RoofRidge:
		s := solid{b: b, center: p(0, -0.2, 0)}
		s.boundaryPoly(data, p(lo, lo, lo), p(hi, lo, lo), p(hi, lo, hi), p(lo, lo, hi))
		s.boundaryPoly(data, p(lo, lo, lo), p(hi, lo, lo), p(hi, hi, 0), p(lo, hi, 0))
		s.boundaryPoly(data, p(lo, hi, 0), p(hi, hi, 0), p(hi, lo, hi), p(lo, lo, hi))
		s.boundaryPoly(data, p(hi, lo, lo), p(hi, hi, 0), p(hi, lo, hi))
		s.boundaryPoly(data, p(lo, lo, lo), p(lo, hi, 0), p(lo, lo, hi))
	case RoofCorner:
		apex := p(lo, hi, lo)
		s := solid{b: b, center: p(-0.25, -0.3, -0.25)}
		s.boundaryPoly(data, p(lo, lo, lo), p(hi, lo, lo), p(hi, lo, hi), p(lo, lo, hi))
		s.boundaryPoly(data, apex, p(lo, lo, lo), p(hi, lo, lo))
		s.boundaryPoly(data, apex, p(lo, lo, hi), p(lo, lo, lo))
		s.boundaryPoly(data, apex, p(hi, lo, lo), p(hi, lo, hi))
		s.boundaryPoly(data, apex, p(hi, lo, hi), p(lo, lo, hi))
	case RoofValley:
		for _, z := range []float64{lo, hi} {
			s := solid{b: b, center: p(0, -0.2, z*0.6)}
			s.boundaryPoly(data, p(lo, lo, z), p(hi, lo, z), p(hi, lo, 0), p(lo, lo, 0))
			s.boundaryPoly(data, p(lo, lo, z), p(hi, lo, z), p(hi, hi, z), p(lo, hi, z))
			s.boundaryPoly(data, p(lo, hi, z), p(hi, hi, z), p(hi, lo, 0), p(lo, lo, 0))
			s.boundaryPoly(data, p(hi, lo, z), p(hi, hi, z), p(hi, lo, 0))
			s.boundaryPoly(data, p(lo, lo, z), p(lo, hi, z), p(lo, lo, 0))
		}
	case RoofOverhang:
		const t = overhangThickness
		// Cross-section in the YZ plane, top edge first.
		a, c, d, e := [2]float64{lo, hi}, [2]float64{hi, lo}, [2]float64{hi - t, lo}, [2]float64{lo, hi - t}
		at := func(x float64, zy [2]float64) geom.Vec3 { return p(x, zy[1], zy[0]) }
		s := solid{b: b, center: p(0, -t/4, -t/4)}
		s.boundaryPoly(data, at(lo, a), at(hi, a), at(hi, c), at(lo, c))
		s.boundaryPoly(data, at(lo, e), at(hi, e), at(hi, d), at(lo, d))
		s.boundaryPoly(data, at(lo, a), at(hi, a), at(hi, e), at(lo, e))
		s.boundaryPoly(data, at(lo, c), at(hi, c), at(hi, d), at(lo, d))
		for _, x := range []float64{lo, hi} {
			s.boundaryPoly(data, at(x, a), at(x, c), at(x, d), at(x, e))
		}
	default:
		return nil, fmt.Errorf("shape: unknown roof variant %d", v)
	}
	return b.Build()
}
