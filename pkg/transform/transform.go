// Package transform implements the rigid transforms used to orient shapes:
// the 24 axis-aligned rotations of the cube, optionally combined with a
// reflection, followed by a translation.
//
// A rotation is usually named by a (side, turn) pair. side is the face that
// the shape's canonical bottom now points at; turn is a further number of
// quarter turns about that face's axis. Every proper rotation has exactly one
// such name.
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/gable/pkg/geom"
)

// ErrInvalidAngle is returned when a rotation is requested by an angle that
// is not a multiple of 90 degrees.
var ErrInvalidAngle = errors.New("transform: rotation angle must be a multiple of 90 degrees")

// Transform is a signed permutation followed by a translation. The zero
// value is not valid; start from Identity.
type Transform struct {
	M Mat3
	T geom.Vec3
}

// sideRotations carry local Down onto each face. The horizontal entries also
// carry local North onto world Up, so a shape laid on its side keeps its
// back pointing at the sky.
var sideRotations = [geom.NumDirs]Mat3{
	geom.Down:  Ident,
	geom.Up:    rotX(2),
	geom.North: rotX(1),
	geom.South: rotY(2).Mul(rotX(1)),
	geom.West:  rotY(1).Mul(rotX(1)),
	geom.East:  rotY(3).Mul(rotX(1)),
}

// turnRotations spin about local Y. Turn 1 carries local North onto West.
var turnRotations = [4]Mat3{rotY(0), rotY(1), rotY(2), rotY(3)}

// Identity returns the transform that maps every point to itself.
func Identity() Transform {
	return Transform{M: Ident}
}

// SideTurn returns the rotation named by (side, turn). A turn outside 0..3
// or an invalid side is a programming error.
func SideTurn(side geom.Dir, turn int) Transform {
	if !side.Valid() {
		panic(fmt.Sprintf("transform: invalid side %d", side))
	}
	if turn < 0 || turn > 3 {
		panic(fmt.Sprintf("transform: turn %d out of range 0..3", turn))
	}
	return Transform{M: sideRotations[side].Mul(turnRotations[turn])}
}

// SideTurnAt is SideTurn followed by a translation to origin.
func SideTurnAt(origin geom.Vec3, side geom.Dir, turn int) Transform {
	t := SideTurn(side, turn)
	t.T = origin
	return t
}

// Translate returns a pure translation.
func Translate(v geom.Vec3) Transform {
	return Transform{M: Ident, T: v}
}

// RotateAxis returns a rotation about the given axis through the origin.
// Positive angles are counter-clockwise looking down the axis towards the
// origin. Angles that are not multiples of 90 are rejected.
func RotateAxis(a geom.Axis, degrees float64) (Transform, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) || math.Mod(degrees, 90) != 0 {
		return Transform{}, fmt.Errorf("%w: got %v", ErrInvalidAngle, degrees)
	}
	q := int(math.Mod(degrees/90, 4))
	if q < 0 {
		q += 4
	}
	var m Mat3
	switch a {
	case geom.AxisX:
		m = rotX(q)
	case geom.AxisY:
		m = rotY(q)
	case geom.AxisZ:
		m = rotZ(q)
	default:
		return Transform{}, fmt.Errorf("transform: invalid axis %d", a)
	}
	return Transform{M: m}, nil
}

// MustRotateAxis is RotateAxis for angles known at compile time. It panics
// on an invalid angle.
func MustRotateAxis(a geom.Axis, degrees float64) Transform {
	t, err := RotateAxis(a, degrees)
	if err != nil {
		panic(err)
	}
	return t
}

// Reflect returns the mirror image across the plane through the origin
// perpendicular to a.
func Reflect(a geom.Axis) Transform {
	return Transform{M: reflect(a)}
}

// FromMatrix builds a transform from a raw matrix, rejecting anything that
// is not a signed permutation.
func FromMatrix(m Mat3, t geom.Vec3) (Transform, error) {
	if !m.valid() {
		return Transform{}, fmt.Errorf("transform: matrix %v is not an axis-aligned rotation or reflection", m)
	}
	return Transform{M: m, T: t}, nil
}

// Compose returns the transform that applies b and then a.
func Compose(a, b Transform) Transform {
	return Transform{
		M: a.M.Mul(b.M),
		T: a.M.Apply(b.T).Add(a.T),
	}
}

// Then returns the transform that applies t and then next.
func (t Transform) Then(next Transform) Transform {
	return Compose(next, t)
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	mi := t.M.Transpose()
	return Transform{M: mi, T: mi.Apply(t.T).Neg()}
}

// IsProper reports whether t is a rotation (no reflection).
func (t Transform) IsProper() bool {
	return t.M.Det() == 1
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t.M == Ident && t.T == (geom.Vec3{})
}

// Equal reports exact equality.
func (t Transform) Equal(o Transform) bool {
	return t.M == o.M && t.T == o.T
}

// ApproxEqual compares the rotation exactly and the translation within
// geom.Epsilon.
func (t Transform) ApproxEqual(o Transform) bool {
	return t.M == o.M && t.T.ApproxEqual(o.T)
}

// Point maps a position.
func (t Transform) Point(p geom.Vec3) geom.Vec3 {
	return t.M.Apply(p).Add(t.T)
}

// Vector maps a free vector, ignoring the translation.
func (t Transform) Vector(v geom.Vec3) geom.Vec3 {
	return t.M.Apply(v)
}

// Normal maps a surface normal and renormalizes it.
func (t Transform) Normal(n geom.Vec3) geom.Vec3 {
	return t.M.Apply(n).Normalize()
}

// Dir maps a symbolic face. The mapping is a bijection on the six faces.
func (t Transform) Dir(d geom.Dir) geom.Dir {
	r, ok := geom.DirFromVector(t.M.Apply(d.Vector()))
	if !ok {
		panic(fmt.Sprintf("transform: matrix %v does not map %v onto a face", t.M, d))
	}
	return r
}

// Box maps an axis-aligned box. Because the linear part only permutes and
// negates axes, the result is exact.
func (t Transform) Box(b geom.Box) geom.Box {
	return geom.BoxOf(t.Point(b.Min), t.Point(b.Max))
}

// SideTurnOf decomposes the linear part into its (side, turn) name. For a
// reflection the name describes the rotation left after removing a mirror
// across X, and reflected is true.
func (t Transform) SideTurnOf() (side geom.Dir, turn int, reflected bool) {
	m := t.M
	if m.Det() < 0 {
		m = m.Mul(reflect(geom.AxisX))
		reflected = true
	}
	side, ok := geom.DirFromVector(m.Apply(geom.Down.Vector()))
	if !ok {
		panic(fmt.Sprintf("transform: matrix %v is not a cube rotation", t.M))
	}
	for turn = 0; turn < 4; turn++ {
		if sideRotations[side].Mul(turnRotations[turn]) == m {
			return side, turn, reflected
		}
	}
	panic(fmt.Sprintf("transform: matrix %v has no side/turn decomposition", t.M))
}

// UV maps a texture coordinate pair. The texture square is rotated about
// its centre by the transform's turn and mirrored horizontally when the
// transform reflects. Callers decide whether texture coordinates follow the
// geometry; UV is never applied implicitly.
func (t Transform) UV(u, v float64) (float64, float64) {
	_, turn, reflected := t.SideTurnOf()
	if reflected {
		u = 1 - u
	}
	for i := 0; i < turn; i++ {
		u, v = 1-v, u
	}
	return u, v
}

// All24 returns every proper rotation, ordered by side then turn.
func All24() []Transform {
	out := make([]Transform, 0, 24)
	for _, side := range geom.Dirs {
		for turn := 0; turn < 4; turn++ {
			out = append(out, SideTurn(side, turn))
		}
	}
	return out
}

func (t Transform) String() string {
	side, turn, reflected := t.SideTurnOf()
	s := fmt.Sprintf("side=%v turn=%d", side, turn)
	if reflected {
		s += " reflected"
	}
	if t.T != (geom.Vec3{}) {
		s += fmt.Sprintf(" translate=(%g,%g,%g)", t.T.X, t.T.Y, t.T.Z)
	}
	return s
}
