package shape

import "fmt"

// Symmetry classifies how many of the four turns about a side look
// different.
type Symmetry uint8

const (
	// Unilateral shapes look different at every turn.
	Unilateral Symmetry = iota
	// Bilateral shapes look the same after a half turn.
	Bilateral
	// Quadrilateral shapes look the same at every turn.
	Quadrilateral
)

// DistinctTurns returns 4, 2 or 1.
func (s Symmetry) DistinctTurns() int {
	switch s {
	case Bilateral:
		return 2
	case Quadrilateral:
		return 1
	default:
		return 4
	}
}

func (s Symmetry) String() string {
	switch s {
	case Unilateral:
		return "unilateral"
	case Bilateral:
		return "bilateral"
	case Quadrilateral:
		return "quadrilateral"
	}
	return fmt.Sprintf("symmetry(%d)", uint8(s))
}
