package transform

import "github.com/chazu/gable/pkg/geom"

// Mat3 is a signed permutation matrix: every row and column holds exactly
// one ±1. Products of such matrices stay in the set, so composing rotations
// and reflections never accumulates rounding error.
type Mat3 [3][3]int8

// Ident is the identity matrix.
var Ident = Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

var quarterCos = [4]int8{1, 0, -1, 0}
var quarterSin = [4]int8{0, 1, 0, -1}

// rotX, rotY and rotZ are right-handed rotations by q quarter turns.
func rotX(q int) Mat3 {
	c, s := quarterCos[q&3], quarterSin[q&3]
	return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func rotY(q int) Mat3 {
	c, s := quarterCos[q&3], quarterSin[q&3]
	return Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

func rotZ(q int) Mat3 {
	c, s := quarterCos[q&3], quarterSin[q&3]
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

func reflect(a geom.Axis) Mat3 {
	m := Ident
	m[a][a] = -1
	return m
}

// Mul returns m·n (n is applied first).
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s int8
			for k := 0; k < 3; k++ {
				s += m[i][k] * n[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

// Transpose is also the inverse, since every Mat3 is orthogonal.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Det returns +1 for rotations and -1 for reflections.
func (m Mat3) Det() int {
	a := int(m[0][0])*(int(m[1][1])*int(m[2][2])-int(m[1][2])*int(m[2][1])) -
		int(m[0][1])*(int(m[1][0])*int(m[2][2])-int(m[1][2])*int(m[2][0])) +
		int(m[0][2])*(int(m[1][0])*int(m[2][1])-int(m[1][1])*int(m[2][0]))
	return a
}

// Apply multiplies v by m.
func (m Mat3) Apply(v geom.Vec3) geom.Vec3 {
	return geom.Vec3{
		X: float64(m[0][0])*v.X + float64(m[0][1])*v.Y + float64(m[0][2])*v.Z,
		Y: float64(m[1][0])*v.X + float64(m[1][1])*v.Y + float64(m[1][2])*v.Z,
		Z: float64(m[2][0])*v.X + float64(m[2][1])*v.Y + float64(m[2][2])*v.Z,
	}
}

// valid reports whether m is a signed permutation matrix.
func (m Mat3) valid() bool {
	for i := 0; i < 3; i++ {
		row, col := 0, 0
		for j := 0; j < 3; j++ {
			if m[i][j] != 0 {
				if m[i][j] != 1 && m[i][j] != -1 {
					return false
				}
				row++
			}
			if m[j][i] != 0 {
				col++
			}
		}
		if row != 1 || col != 1 {
			return false
		}
	}
	return true
}
