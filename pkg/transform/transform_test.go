package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/gable/pkg/geom"
)

// index returns the position of t's rotation in All24, or -1.
func index(all []Transform, t Transform) int {
	for i, a := range all {
		if a.M == t.M {
			return i
		}
	}
	return -1
}

func TestAll24Distinct(t *testing.T) {
	all := All24()
	if len(all) != 24 {
		t.Fatalf("All24 returned %d transforms", len(all))
	}
	seen := make(map[Mat3]bool)
	for _, a := range all {
		if seen[a.M] {
			t.Fatalf("duplicate rotation %v", a)
		}
		seen[a.M] = true
		if !a.IsProper() {
			t.Errorf("%v is not a proper rotation", a)
		}
	}
}

func TestGroupClosure(t *testing.T) {
	all := All24()
	for _, a := range all {
		for _, b := range all {
			if index(all, Compose(a, b)) < 0 {
				t.Fatalf("Compose(%v, %v) left the rotation group", a, b)
			}
		}
		if !Compose(a, a.Inverse()).IsIdentity() {
			t.Errorf("%v composed with its inverse is not identity", a)
		}
	}
}

func TestInverseWithTranslation(t *testing.T) {
	for _, a := range All24() {
		a.T = geom.V3(0.25, -3, 7.5)
		got := Compose(a, a.Inverse())
		if !got.ApproxEqual(Identity()) {
			t.Errorf("%v: a∘a⁻¹ = %v", a, got)
		}
		p := geom.V3(1, 2, 3)
		if back := a.Inverse().Point(a.Point(p)); !back.ApproxEqual(p) {
			t.Errorf("%v: round trip of %v gave %v", a, p, back)
		}
	}
}

func TestDirectionBijection(t *testing.T) {
	refl := Reflect(geom.AxisZ)
	all := append(All24(), refl, Compose(SideTurn(geom.East, 1), refl))
	for _, tr := range all {
		seen := make(map[geom.Dir]bool)
		for _, f := range geom.Dirs {
			if got := tr.Dir(tr.Inverse().Dir(f)); got != f {
				t.Errorf("%v: Dir(Inverse.Dir(%v)) = %v", tr, f, got)
			}
			seen[tr.Dir(f)] = true
		}
		if len(seen) != geom.NumDirs {
			t.Errorf("%v: Dir is not a bijection (%d images)", tr, len(seen))
		}
	}
}

func TestSideTurnNaming(t *testing.T) {
	for _, side := range geom.Dirs {
		for turn := 0; turn < 4; turn++ {
			tr := SideTurn(side, turn)
			if got := tr.Dir(geom.Down); got != side {
				t.Errorf("SideTurn(%v,%d) maps Down to %v", side, turn, got)
			}
			gs, gt, refl := tr.SideTurnOf()
			if gs != side || gt != turn || refl {
				t.Errorf("SideTurnOf(SideTurn(%v,%d)) = %v,%d,%v", side, turn, gs, gt, refl)
			}
		}
	}
}

func TestTurnDirections(t *testing.T) {
	tests := []struct {
		turn int
		want geom.Dir
	}{
		{0, geom.North},
		{1, geom.West},
		{2, geom.South},
		{3, geom.East},
	}
	for _, tt := range tests {
		if got := SideTurn(geom.Down, tt.turn).Dir(geom.North); got != tt.want {
			t.Errorf("turn %d: local north -> %v, want %v", tt.turn, got, tt.want)
		}
	}
	// Horizontal sides keep the back of the shape pointing up.
	for _, side := range geom.Horizontals {
		if got := SideTurn(side, 0).Dir(geom.North); got != geom.Up {
			t.Errorf("side %v: local north -> %v, want up", side, got)
		}
	}
}

func TestRotateAxis(t *testing.T) {
	tests := []struct {
		name    string
		axis    geom.Axis
		degrees float64
		in      geom.Vec3
		want    geom.Vec3
		wantErr bool
	}{
		{"y 90", geom.AxisY, 90, geom.V3(0, 0, -1), geom.V3(-1, 0, 0), false},
		{"y -90", geom.AxisY, -90, geom.V3(0, 0, -1), geom.V3(1, 0, 0), false},
		{"x 180", geom.AxisX, 180, geom.V3(0, 1, 0), geom.V3(0, -1, 0), false},
		{"z 270", geom.AxisZ, 270, geom.V3(1, 0, 0), geom.V3(0, -1, 0), false},
		{"z 360", geom.AxisZ, 360, geom.V3(1, 2, 3), geom.V3(1, 2, 3), false},
		{"45 rejected", geom.AxisY, 45, geom.Vec3{}, geom.Vec3{}, true},
		{"90.5 rejected", geom.AxisX, 90.5, geom.Vec3{}, geom.Vec3{}, true},
		{"NaN rejected", geom.AxisX, math.NaN(), geom.Vec3{}, geom.Vec3{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := RotateAxis(tt.axis, tt.degrees)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAngle) {
					t.Fatalf("err = %v, want ErrInvalidAngle", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tr.Vector(tt.in); got != tt.want {
				t.Errorf("Vector(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustRotateAxisPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for 30 degrees")
		}
	}()
	MustRotateAxis(geom.AxisY, 30)
}

func TestSideTurnPanicsOnBadTurn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for turn 4")
		}
	}()
	SideTurn(geom.Up, 4)
}

func TestPointVectorNormal(t *testing.T) {
	tr := Compose(Translate(geom.V3(10, 0, 0)), SideTurn(geom.Down, 1))
	if got := tr.Point(geom.V3(0, 0, -1)); got != geom.V3(9, 0, 0) {
		t.Errorf("Point = %v, want (9,0,0)", got)
	}
	if got := tr.Vector(geom.V3(0, 0, -1)); got != geom.V3(-1, 0, 0) {
		t.Errorf("Vector ignores translation: got %v", got)
	}
	if got := tr.Normal(geom.V3(0, 0, -2)); got != geom.V3(-1, 0, 0) {
		t.Errorf("Normal = %v, want unit west", got)
	}
}

func TestReflection(t *testing.T) {
	r := Reflect(geom.AxisX)
	if r.IsProper() {
		t.Fatal("reflection reported as proper")
	}
	if got := r.Dir(geom.East); got != geom.West {
		t.Errorf("reflect x: east -> %v", got)
	}
	_, _, refl := r.SideTurnOf()
	if !refl {
		t.Error("SideTurnOf did not report reflection")
	}
	if _, err := FromMatrix(Mat3{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}, geom.Vec3{}); err == nil {
		t.Error("FromMatrix accepted a shear")
	}
}

func TestUV(t *testing.T) {
	u, v := Identity().UV(0.25, 0.75)
	if u != 0.25 || v != 0.75 {
		t.Errorf("identity UV = (%v,%v)", u, v)
	}
	u, v = SideTurn(geom.Down, 1).UV(0, 0)
	if u != 1 || v != 0 {
		t.Errorf("turn 1 UV(0,0) = (%v,%v), want (1,0)", u, v)
	}
	u, v = SideTurn(geom.Up, 2).UV(0.25, 0.5)
	if u != 0.75 || v != 0.5 {
		t.Errorf("turn 2 UV = (%v,%v), want (0.75,0.5)", u, v)
	}
	u, _ = Reflect(geom.AxisX).UV(0.25, 0.5)
	if u != 0.75 {
		t.Errorf("reflected u = %v, want 0.75", u)
	}
}

func TestBox(t *testing.T) {
	b := geom.B3(0, 0, -0.5, 0.5, 0.25, 0)
	got := SideTurn(geom.Down, 2).Box(b)
	want := geom.B3(-0.5, 0, 0, 0, 0.25, 0.5)
	if got != want {
		t.Errorf("Box = %v, want %v", got, want)
	}
}
