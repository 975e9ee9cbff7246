// Package placement picks the orientation of a newly placed shaped block
// from where the player clicked and, when the clicked block is itself a
// shape that can connect, from that neighbour's exposed profile.
package placement

import (
	"fmt"
	"math"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/shape"
	"github.com/chazu/gable/pkg/transform"
)

// Hit describes the click that placed a block.
type Hit struct {
	// Face is the face of the clicked block that was hit. The new block sits
	// on that side of it.
	Face geom.Dir
	// Point is the hit position relative to the new block's centre, within
	// [-0.5, 0.5] on each axis.
	Point geom.Vec3
	// Reversed is set when the player asked for the alternate placement.
	Reversed bool
}

// Neighbor is the clicked block, when it is a shaped block.
type Neighbor struct {
	Shape *shape.Shape
	Orientation
}

// Decision records which rule fixed the turn.
type Decision uint8

const (
	ByHit Decision = iota
	ByConnection
	ByKind
)

func (d Decision) String() string {
	switch d {
	case ByHit:
		return "hit"
	case ByConnection:
		return "connection"
	case ByKind:
		return "kind"
	}
	return fmt.Sprintf("decision(%d)", uint8(d))
}

// Result is a resolved placement.
type Result struct {
	Orientation
	Decision Decision
}

// Resolver holds the inputs shared by every placement: the declared
// profile pairs and the meshes offsets are derived from. It keeps no
// per-placement state and is safe for concurrent use.
type Resolver struct {
	opposites *shape.OppositeTable
	meshes    shape.MeshSource
}

// NewResolver returns a resolver. A nil table means DefaultOpposites.
func NewResolver(opposites *shape.OppositeTable, meshes shape.MeshSource) *Resolver {
	if opposites == nil {
		opposites = shape.DefaultOpposites()
	}
	return &Resolver{opposites: opposites, meshes: meshes}
}

// Resolve picks side, turn and offset for s placed by hit. n is the clicked
// block, or nil when it is not a shaped block.
func (r *Resolver) Resolve(s *shape.Shape, hit Hit, n *Neighbor) Result {
	flags := s.Kind.Flags()
	side := ChooseSide(flags, hit)
	local := transform.SideTurn(side, 0).Inverse().Point(hit.Point)

	if n != nil {
		if turn, ok := r.Connect(s, side, hit.Face, n); ok {
			return Result{
				Orientation: Orientation{Side: side, Turn: turn, OffsetX: n.OffsetX},
				Decision:    ByConnection,
			}
		}
	}

	offset := 0.0
	if flags.Has(shape.PlaceOffset) {
		if o, ok := s.Kind.(shape.Offsetter); ok {
			offset = o.PlacementOffset(s, r.meshes)
		}
	}

	if o, ok := s.Kind.(shape.Orienter); ok {
		turn, x := o.OrientOnPlacement(s, side, local, offset)
		return Result{Orientation: Orientation{Side: side, Turn: turn, OffsetX: x}, Decision: ByKind}
	}

	turn := TurnFromHit(s.Symmetry, local)
	res := Result{Orientation: Orientation{Side: side, Turn: turn}, Decision: ByHit}
	if offset != 0 {
		x := transform.SideTurn(geom.Down, turn).Inverse().Point(local).X
		res.OffsetX = math.Copysign(offset, x)
		if x == 0 {
			res.OffsetX = offset
		}
	}
	return res
}

// ChooseSide returns Down for a rightside-up block and Up for an
// upside-down one. Clicking a top face places rightside up, a bottom face
// upside down, and a side face follows the half of the face that was hit.
func ChooseSide(flags shape.Flags, hit Hit) geom.Dir {
	var upsideDown bool
	switch hit.Face {
	case geom.Up:
		upsideDown = false
	case geom.Down:
		upsideDown = true
	default:
		upsideDown = hit.Point.Y > 0
	}
	if hit.Reversed {
		upsideDown = !upsideDown
	}
	if flags.Has(shape.PlaceUnderneath) {
		upsideDown = !upsideDown
	}
	if upsideDown && flags.Has(shape.AllowUpsideDown) {
		return geom.Up
	}
	return geom.Down
}

// TurnFromHit picks a turn from a hit given in the chosen side's frame.
//
//	quadrilateral  always 0
//	bilateral      the nearer pair of edges: |z| >= |x| gives 0 (z < 0) or
//	               2, otherwise 1 (x < 0) or 3
//	unilateral     the quadrant: (-x,-z) 0, (-x,+z) 1, (+x,+z) 2, (+x,-z) 3
func TurnFromHit(sym shape.Symmetry, p geom.Vec3) int {
	switch sym {
	case shape.Quadrilateral:
		return 0
	case shape.Bilateral:
		if math.Abs(p.Z) >= math.Abs(p.X) {
			if p.Z < 0 {
				return 0
			}
			return 2
		}
		if p.X < 0 {
			return 1
		}
		return 3
	default:
		switch {
		case p.X < 0 && p.Z < 0:
			return 0
		case p.X < 0:
			return 1
		case p.Z >= 0:
			return 2
		default:
			return 3
		}
	}
}

// Connect looks for a turn of s on side whose profile toward the neighbour
// is declared opposite to the neighbour's profile toward s. face is the
// neighbour's face that was clicked, in block space. The lowest matching
// turn wins. Neighbours whose kind has no profiles are never matched.
func (r *Resolver) Connect(s *shape.Shape, side geom.Dir, face geom.Dir, n *Neighbor) (int, bool) {
	mine, ok := s.Kind.(shape.Profiler)
	if !ok || n.Shape == nil {
		return 0, false
	}
	theirs, ok := n.Shape.Kind.(shape.Profiler)
	if !ok {
		return 0, false
	}

	want := theirs.Profile(n.Shape, n.Rotation().Inverse().Dir(face))
	if want == shape.ProfileNone {
		return 0, false
	}
	toward := face.Opposite()
	for turn := range 4 {
		local := transform.SideTurn(side, turn).Inverse().Dir(toward)
		if r.opposites.Matches(mine.Profile(s, local), want) {
			return turn, true
		}
	}
	return 0, false
}
