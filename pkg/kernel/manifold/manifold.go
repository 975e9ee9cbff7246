//go:build manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Manifold provides
// exact mesh booleans, so collision hulls come out with flat faces and no
// marching cubes resolution to tune.
//
// This package requires the Manifold C library (manifoldc) to be installed
// under /usr/local. Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.Solid = (*manifoldSolid)(nil)

// Available reports whether the binary was built with Manifold support.
const Available = true

// ErrUnavailable is never returned when the library is linked in.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")

// manifoldSolid wraps a C ManifoldManifold pointer and implements kernel.Solid.
type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	alloc := C.manifold_alloc_box()
	bbox := C.manifold_bounding_box(alloc, s.ptr)
	defer C.manifold_delete_box(bbox)

	min[0] = float64(C.manifold_box_min_x(bbox))
	min[1] = float64(C.manifold_box_min_y(bbox))
	min[2] = float64(C.manifold_box_min_z(bbox))
	max[0] = float64(C.manifold_box_max_x(bbox))
	max[1] = float64(C.manifold_box_max_y(bbox))
	max[2] = float64(C.manifold_box_max_z(bbox))
	return min, max
}

// newSolid wraps a C ManifoldManifold pointer with Go-side finalizer
// for automatic memory management.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct{}

// New creates a new ManifoldKernel.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{}, nil
}

// Box creates a solid occupying b. manifold_cube is centred on the origin
// and then moved to the centre of b.
func (k *ManifoldKernel) Box(b geom.Box) (kernel.Solid, error) {
	size := b.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("manifold: box %v has no volume", b)
	}
	cube := C.manifold_cube(C.manifold_alloc_manifold(),
		C.double(size.X), C.double(size.Y), C.double(size.Z),
		C.int(1), // center=true
	)
	defer C.manifold_delete_manifold(cube)

	c := b.Center()
	ptr := C.manifold_translate(C.manifold_alloc_manifold(), cube,
		C.double(c.X), C.double(c.Y), C.double(c.Z),
	)
	return newSolid(ptr), nil
}

// Union returns the boolean union of two solids.
func (k *ManifoldKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_union(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Difference returns the boolean difference (a minus b).
func (k *ManifoldKernel) Difference(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_difference(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// ToMesh extracts a triangle mesh from the solid using Manifold's MeshGL
// format. Vertex positions and normals are interleaved in MeshGL; this
// method separates them into the kernel.Mesh flat-array layout.
func (k *ManifoldKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ms := s.(*manifoldSolid)

	// Get MeshGL from the manifold.
	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(meshAlloc, ms.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))

	if numVert == 0 || numTri == 0 {
		return &kernel.Mesh{}, nil
	}

	// MeshGL stores vertex properties in a flat float array.
	// The first 3 are always position (x, y, z).
	// If normals are present, they follow at indices 3, 4, 5.
	numProp := int(C.manifold_meshgl_num_prop(meshGL))

	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	out := &kernel.Mesh{}
	for i := 0; i < numVert; i++ {
		base := i * numProp
		pos := geom.Vec3f{X: propData[base], Y: propData[base+1], Z: propData[base+2]}
		var n geom.Vec3f
		if numProp >= 6 {
			n = geom.Vec3f{X: propData[base+3], Y: propData[base+4], Z: propData[base+5]}
		}
		out.AddVertex(pos, n, 0, 0)
	}
	for t := 0; t < numTri; t++ {
		out.AddTriangle(indices[3*t], indices[3*t+1], indices[3*t+2], 0)
	}
	if numProp < 6 {
		smoothNormals(out)
	}

	if out.VertexCount() != numVert {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d",
			out.VertexCount(), numVert)
	}
	return out, nil
}
