// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library, and exports render buffers
// as STL through its renderer.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution over
// the longest side of a solid. Block-sized solids need far fewer cells
// than a full model.
const defaultMeshCells = 64

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel. cells <= 0 selects the default resolution.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func vec(v geom.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Box creates a solid occupying b. sdf.Box3D centers the box at the
// origin, so it is translated to the centre of b.
func (k *SdfxKernel) Box(b geom.Box) (kernel.Solid, error) {
	s, err := sdf.Box3D(vec(b.Size()), 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box %v: %w", b, err)
	}
	m := sdf.Translate3d(vec(b.Center()))
	return wrap(sdf.Transform3D(s, m)), nil
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	out := &kernel.Mesh{}
	for _, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		normal := geom.Vec3f{X: float32(n.X), Y: float32(n.Y), Z: float32(n.Z)}

		var idx [3]uint32
		for j := 0; j < 3; j++ {
			v := tri[j]
			idx[j] = out.AddVertex(geom.Vec3f{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}, normal, 0, 0)
		}
		out.AddTriangle(idx[0], idx[1], idx[2], 0)
	}
	return out, nil
}

// Triangles converts render buffers to sdfx triangles.
func Triangles(meshes ...*kernel.Mesh) []*sdf.Triangle3 {
	var out []*sdf.Triangle3
	for _, m := range meshes {
		for i := range m.TriangleCount() {
			c := m.Triangle(i)
			out = append(out, &sdf.Triangle3{
				vec(c[0].Vec()), vec(c[1].Vec()), vec(c[2].Vec()),
			})
		}
	}
	return out
}

// BoundingBox returns the box around every vertex of meshes.
func BoundingBox(meshes ...*kernel.Mesh) sdf.Box3 {
	b := geom.EmptyBox()
	for _, m := range meshes {
		b = b.Union(m.Bounds())
	}
	if b.IsEmpty() {
		return sdf.Box3{}
	}
	return sdf.Box3{Min: vec(b.Min), Max: vec(b.Max)}
}

// ErrNothingToExport is returned when every buffer handed to SaveSTL is
// empty.
var ErrNothingToExport = errors.New("sdfx: no triangles to export")

// SaveSTL writes meshes to path as a binary STL file.
func SaveSTL(path string, meshes ...*kernel.Mesh) error {
	tris := Triangles(meshes...)
	if len(tris) == 0 {
		return ErrNothingToExport
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	return nil
}
