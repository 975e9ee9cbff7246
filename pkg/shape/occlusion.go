package shape

import (
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
	"github.com/chazu/gable/pkg/transform"
)

// Full is the occlusion mask of a solid block.
const Full uint8 = 0xFF

// octant returns the bit index for cell (x, y, z), each 0 or 1.
func octant(x, y, z int) int { return x | z<<1 | y<<2 }

// OcclusionBoxes turns an occlusion mask into boxes in block-local space.
// Bit i marks the octant with x = i&1, z = (i>>1)&1, y = (i>>2)&1 as solid.
// Cells are merged greedily along x, then z, then y.
func OcclusionBoxes(mask uint8) []geom.Box {
	var used uint8
	solid := func(x, y, z int) bool {
		bit := uint8(1) << octant(x, y, z)
		return mask&bit != 0 && used&bit == 0
	}

	var out []geom.Box
	for i := range 8 {
		x, z, y := i&1, i>>1&1, i>>2&1
		if !solid(x, y, z) {
			continue
		}
		x1, z1, y1 := x, z, y
		if x1 == 0 && solid(1, y, z) {
			x1 = 1
		}
		if z1 == 0 && allSolid(solid, x, x1, y, y, 1, 1) {
			z1 = 1
		}
		if y1 == 0 && allSolid(solid, x, x1, 1, 1, z, z1) {
			y1 = 1
		}
		for cy := y; cy <= y1; cy++ {
			for cz := z; cz <= z1; cz++ {
				for cx := x; cx <= x1; cx++ {
					used |= 1 << octant(cx, cy, cz)
				}
			}
		}
		out = append(out, geom.B3(
			float64(x)*0.5-0.5, float64(y)*0.5-0.5, float64(z)*0.5-0.5,
			float64(x1+1)*0.5-0.5, float64(y1+1)*0.5-0.5, float64(z1+1)*0.5-0.5,
		))
	}
	return out
}

func allSolid(solid func(x, y, z int) bool, x0, x1, y0, y1, z0, z1 int) bool {
	for y := y0; y <= y1; y++ {
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				if !solid(x, y, z) {
					return false
				}
			}
		}
	}
	return true
}

// BoxesFor returns the shape's collision boxes mapped by orient, the
// block's local-to-block transform.
func BoxesFor(s *Shape, m *mesh.Mesh, orient transform.Transform) []geom.Box {
	boxes := s.Kind.CollisionBoxes(s, m)
	out := make([]geom.Box, len(boxes))
	for i, b := range boxes {
		out[i] = orient.Box(b)
	}
	return out
}
