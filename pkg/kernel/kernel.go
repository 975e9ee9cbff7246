// Package kernel defines the render-facing side of the geometry kernel:
// flat triangle buffers, and an abstract solid backend used to build hulls
// from collision boxes. Implementations (sdfx, manifold) live in subpackages so the
// backend can be swapped without changing the rest of the system.
package kernel

import (
	"fmt"

	"github.com/chazu/gable/pkg/geom"
)

// Solid is an opaque handle to a backend solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid backend.
type Kernel interface {
	// Box creates a solid occupying b.
	Box(b geom.Box) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// Cell is the block cell every oriented shape lives in.
var Cell = geom.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)

// Bounds returns the bounding box of s.
func Bounds(s Solid) geom.Box {
	lo, hi := s.BoundingBox()
	return geom.Box{Min: geom.V3(lo[0], lo[1], lo[2]), Max: geom.V3(hi[0], hi[1], hi[2])}
}

// union builds one solid from boxes; it returns nil for no boxes.
func union(k Kernel, boxes []geom.Box) (Solid, error) {
	var acc Solid
	for i, b := range boxes {
		s, err := k.Box(b)
		if err != nil {
			return nil, fmt.Errorf("kernel: hull box %d: %w", i, err)
		}
		if acc == nil {
			acc = s
			continue
		}
		acc = k.Union(acc, s)
	}
	return acc, nil
}

// Hull unions boxes into one solid and meshes it. It is used to preview
// the collision shape of an oriented block.
func Hull(k Kernel, boxes []geom.Box) (*Mesh, error) {
	acc, err := union(k, boxes)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return &Mesh{}, nil
	}
	m, err := k.ToMesh(acc)
	if err != nil {
		return nil, fmt.Errorf("kernel: hull: %w", err)
	}
	m.PartName = "collision"
	return m, nil
}

// Clearance meshes the part of the block cell that boxes leave free: the
// space a neighbouring shape or a player can occupy.
func Clearance(k Kernel, boxes []geom.Box) (*Mesh, error) {
	cell, err := k.Box(Cell)
	if err != nil {
		return nil, fmt.Errorf("kernel: clearance: %w", err)
	}
	hull, err := union(k, boxes)
	if err != nil {
		return nil, err
	}
	free := cell
	if hull != nil && Bounds(hull).Intersects(Cell) {
		free = k.Difference(cell, hull)
	}
	m, err := k.ToMesh(free)
	if err != nil {
		return nil, fmt.Errorf("kernel: clearance: %w", err)
	}
	m.PartName = "clearance"
	return m, nil
}
