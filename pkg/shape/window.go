package shape

import (
	"sync"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
)

// Window is a procedural frame with a glass pane, standing in the local XY
// plane. Windows connect side by side along local X.
type Window struct {
	geometry func() (*mesh.Mesh, error)
}

const (
	frameWidth   = 2.0 / 16
	frameDepth   = 1.0 / 16
	glassDepth   = 1.0 / 32
	glassTexture = 1
)

func NewWindow() *Window {
	return &Window{geometry: sync.OnceValues(windowMesh)}
}

func windowMesh() (*mesh.Mesh, error) {
	const lo, hi = -0.5, 0.5
	in := hi - frameWidth
	b := mesh.NewBuilder()

	b.Part("frame")
	for _, bar := range []geom.Box{
		geom.B3(lo, lo, -frameDepth, hi, -in, frameDepth),
		geom.B3(lo, in, -frameDepth, hi, hi, frameDepth),
		geom.B3(lo, -in, -frameDepth, -in, in, frameDepth),
		geom.B3(in, -in, -frameDepth, hi, in, frameDepth),
	} {
		AddBox(b, bar, mesh.PolygonData{})
	}

	b.Part("glass")
	AddBox(b, geom.B3(-in, -in, -glassDepth, in, in, glassDepth), mesh.PolygonData{Texture: glassTexture})
	return b.Build()
}

func (*Window) Name() string { return "window" }
func (*Window) Flags() Flags { return 0 }
func (*Window) AcceptsCladding() bool { return false }

func (w *Window) Geometry(*Shape, MeshSource) (*mesh.Mesh, error) { return w.geometry() }

func (*Window) CollisionBoxes(s *Shape, m *mesh.Mesh) []geom.Box {
	if boxes := partBoxes(m); len(boxes) > 0 {
		return boxes
	}
	return OcclusionBoxes(s.Occlusion)
}

func (*Window) Profile(_ *Shape, local geom.Dir) Profile {
	switch local {
	case geom.East:
		return WindowE
	case geom.West:
		return WindowW
	}
	return ProfileNone
}
