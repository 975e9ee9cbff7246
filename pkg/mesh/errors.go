package mesh

import (
	"errors"
	"fmt"
)

// ErrInvalidAsset is the root of every construction-time validation error.
var ErrInvalidAsset = errors.New("mesh: invalid asset")

var (
	ErrDegeneratePolygon = fmt.Errorf("%w: degenerate polygon", ErrInvalidAsset)
	ErrDuplicatePart     = fmt.Errorf("%w: duplicate part id", ErrInvalidAsset)
)
