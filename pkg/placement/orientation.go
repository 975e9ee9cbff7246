package placement

import (
	"fmt"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/transform"
)

// Orientation is the per-block state a placement produces. The world layer
// stores it and hands it back when the block is a neighbour.
type Orientation struct {
	Side    geom.Dir `json:"side" yaml:"side"`
	Turn    int      `json:"turn" yaml:"turn"`
	OffsetX float64  `json:"offset_x" yaml:"offset_x"`
}

func (o Orientation) Valid() bool {
	return o.Side.Valid() && o.Turn >= 0 && o.Turn < 4
}

// Rotation is the orientation without its offset.
func (o Orientation) Rotation() transform.Transform {
	return transform.SideTurn(o.Side, o.Turn)
}

// Transform maps shape-local space to block space: the offset is applied
// along local X before rotating.
func (o Orientation) Transform() transform.Transform {
	return transform.Compose(o.Rotation(), transform.Translate(geom.V3(o.OffsetX, 0, 0)))
}

func (o Orientation) String() string {
	if o.OffsetX != 0 {
		return fmt.Sprintf("side=%v turn=%d offset=%g", o.Side, o.Turn, o.OffsetX)
	}
	return fmt.Sprintf("side=%v turn=%d", o.Side, o.Turn)
}
