package geom

import (
	"fmt"
	"strings"
)

// Dir is one of the six symbolic cube faces, in the host's ordering.
type Dir int8

const (
	Down Dir = iota
	Up
	North
	South
	West
	East
)

// NumDirs is the size of the face set.
const NumDirs = 6

// Dirs lists every face in index order.
var Dirs = [NumDirs]Dir{Down, Up, North, South, West, East}

// Horizontals lists the four side faces in index order.
var Horizontals = [4]Dir{North, South, West, East}

var dirVectors = [NumDirs]Vec3{
	Down:  {0, -1, 0},
	Up:    {0, 1, 0},
	North: {0, 0, -1},
	South: {0, 0, 1},
	West:  {-1, 0, 0},
	East:  {1, 0, 0},
}

var dirNames = [NumDirs]string{"down", "up", "north", "south", "west", "east"}

// Valid reports whether d is one of the six faces.
func (d Dir) Valid() bool { return d >= Down && d <= East }

func (d Dir) String() string {
	if !d.Valid() {
		return fmt.Sprintf("dir(%d)", int8(d))
	}
	return dirNames[d]
}

// Vector returns the unit outward normal of the face.
func (d Dir) Vector() Vec3 {
	return dirVectors[d]
}

// Opposite returns the face on the other side of the cube.
func (d Dir) Opposite() Dir {
	return d ^ 1
}

// Axis returns the axis the face is perpendicular to.
func (d Dir) Axis() Axis {
	switch d {
	case Down, Up:
		return AxisY
	case North, South:
		return AxisZ
	default:
		return AxisX
	}
}

// Positive reports whether the face points along the positive axis.
func (d Dir) Positive() bool {
	return d == Up || d == South || d == East
}

// IsHorizontal reports whether d is a side face.
func (d Dir) IsHorizontal() bool {
	return d >= North
}

// DirFromVector returns the face whose normal is exactly v. Only unit axis
// vectors with integral components are accepted.
func DirFromVector(v Vec3) (Dir, bool) {
	for _, d := range Dirs {
		if dirVectors[d] == v {
			return d, true
		}
	}
	return 0, false
}

// NearestDir returns the face whose normal is closest to v.
func NearestDir(v Vec3) Dir {
	best := Down
	bestDot := v.Dot(dirVectors[Down])
	for _, d := range Dirs[1:] {
		if dot := v.Dot(dirVectors[d]); dot > bestDot {
			best, bestDot = d, dot
		}
	}
	return best
}

// ParseDir parses a face name ("up", "north", ...). Case is ignored.
func ParseDir(name string) (Dir, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range dirNames {
		if s == n {
			return Dir(i), nil
		}
	}
	return 0, fmt.Errorf("geom: invalid direction %q, expected down/up/north/south/west/east", name)
}
