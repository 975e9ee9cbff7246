package mesh

import (
	"fmt"
	"slices"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/transform"
)

// FaceID names a face group: one of the six cube faces, or FaceGeneral for
// geometry that does not lie on any single face (slopes, curves).
type FaceID int8

const (
	FaceDown    FaceID = FaceID(geom.Down)
	FaceUp      FaceID = FaceID(geom.Up)
	FaceNorth   FaceID = FaceID(geom.North)
	FaceSouth   FaceID = FaceID(geom.South)
	FaceWest    FaceID = FaceID(geom.West)
	FaceEast    FaceID = FaceID(geom.East)
	FaceGeneral FaceID = geom.NumDirs
)

// FaceOf returns the FaceID for a cube face.
func FaceOf(d geom.Dir) FaceID { return FaceID(d) }

// Dir returns the cube face, or false for FaceGeneral.
func (f FaceID) Dir() (geom.Dir, bool) {
	if f == FaceGeneral {
		return 0, false
	}
	return geom.Dir(f), true
}

func (f FaceID) String() string {
	if d, ok := f.Dir(); ok {
		return d.String()
	}
	if f == FaceGeneral {
		return "general"
	}
	return fmt.Sprintf("face(%d)", int8(f))
}

// ParseFaceID accepts a cube face name or "general".
func ParseFaceID(name string) (FaceID, error) {
	if name == "general" {
		return FaceGeneral, nil
	}
	d, err := geom.ParseDir(name)
	if err != nil {
		return 0, err
	}
	return FaceOf(d), nil
}

// Transform remaps a cube face through t; FaceGeneral stays general.
func (f FaceID) Transform(t transform.Transform) FaceID {
	if d, ok := f.Dir(); ok {
		return FaceOf(t.Dir(d))
	}
	return f
}

// Face is an ordered group of polygons. An empty face is legal.
type Face struct {
	id    FaceID
	polys []*Polygon
}

// NewFace builds a face from polygons. The slice is copied.
func NewFace(id FaceID, polys ...*Polygon) *Face {
	return &Face{id: id, polys: slices.Clone(polys)}
}

func (f *Face) ID() FaceID { return f.id }

// Polygons returns the face's polygons. The slice must not be modified.
func (f *Face) Polygons() []*Polygon { return f.polys }

func (f *Face) Len() int { return len(f.polys) }

// Transform returns the face with every polygon mapped by t.
func (f *Face) Transform(t transform.Transform, transformUVs bool) *Face {
	out := &Face{id: f.id.Transform(t), polys: make([]*Polygon, len(f.polys))}
	for i, p := range f.polys {
		out.polys[i] = p.Transform(t, transformUVs)
	}
	return out
}

// Equal reports structural equality.
func (f *Face) Equal(o *Face) bool {
	return f.id == o.id && slices.EqualFunc(f.polys, o.polys, (*Polygon).Equal)
}
