package shape

import (
	"errors"
	"strings"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
)

var (
	ErrUnknownShape = errors.New("shape: unknown shape")
	ErrMissingMesh  = errors.New("shape: mesh not loaded")
)

// Flags are the placement behaviours a kind opts into.
type Flags uint8

const (
	// AllowUpsideDown lets the resolver pick the Up side.
	AllowUpsideDown Flags = 1 << iota
	// PlaceUnderneath swaps the rightside-up and upside-down choices.
	PlaceUnderneath
	// PlaceOffset shifts the shape sideways toward the clicked half.
	PlaceOffset
)

func (f Flags) Has(o Flags) bool { return f&o == o }

func (f Flags) String() string {
	var parts []string
	if f.Has(AllowUpsideDown) {
		parts = append(parts, "upside-down")
	}
	if f.Has(PlaceUnderneath) {
		parts = append(parts, "underneath")
	}
	if f.Has(PlaceOffset) {
		parts = append(parts, "offset")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// MeshSource resolves asset meshes by name.
type MeshSource interface {
	Mesh(name string) (*mesh.Mesh, bool)
}

// Kind is the behaviour shared by a family of shapes.
type Kind interface {
	Name() string
	Flags() Flags
	// Geometry returns the shape's mesh in block-local space, centred on the
	// origin with the block spanning [-0.5, 0.5] on each axis.
	Geometry(s *Shape, src MeshSource) (*mesh.Mesh, error)
	// CollisionBoxes returns coarse boxes in block-local space. m is the
	// shape's untransformed mesh and may be nil.
	CollisionBoxes(s *Shape, m *mesh.Mesh) []geom.Box
	AcceptsCladding() bool
}

// Profiler is implemented by kinds that connect to their neighbours.
type Profiler interface {
	// Profile returns what the shape exposes on a face of its own local
	// frame.
	Profile(s *Shape, local geom.Dir) Profile
}

// Orienter is implemented by kinds with their own rule for turning and
// offsetting a new block. hit is the click position in the frame of the
// chosen side at turn 0; offset is the kind's placement offset.
type Orienter interface {
	OrientOnPlacement(s *Shape, side geom.Dir, hit geom.Vec3, offset float64) (turn int, offsetX float64)
}

// Offsetter supplies the magnitude of the PlaceOffset shift.
type Offsetter interface {
	PlacementOffset(s *Shape, src MeshSource) float64
}

// partBoxes returns the bounds of every non-empty part.
func partBoxes(m *mesh.Mesh) []geom.Box {
	if m == nil {
		return nil
	}
	var out []geom.Box
	for p := range m.Parts() {
		if !p.Bounds().IsEmpty() {
			out = append(out, p.Bounds())
		}
	}
	return out
}
