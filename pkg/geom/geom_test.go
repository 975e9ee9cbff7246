package geom

import (
	"math"
	"testing"
)

func TestDirOppositeAndVector(t *testing.T) {
	for _, d := range Dirs {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: Opposite is not an involution", d)
		}
		if got := d.Vector().Add(d.Opposite().Vector()); got != (Vec3{}) {
			t.Errorf("%v: vector + opposite = %v, want zero", d, got)
		}
		back, ok := DirFromVector(d.Vector())
		if !ok || back != d {
			t.Errorf("DirFromVector(%v) = %v, %v; want %v", d.Vector(), back, ok, d)
		}
		if d.Vector().Elem(d.Axis()) == 0 {
			t.Errorf("%v: Axis() = %v does not match its vector", d, d.Axis())
		}
		if (d.Vector().Elem(d.Axis()) > 0) != d.Positive() {
			t.Errorf("%v: Positive() disagrees with vector", d)
		}
	}
}

func TestParseDir(t *testing.T) {
	tests := []struct {
		in      string
		want    Dir
		wantErr bool
	}{
		{"up", Up, false},
		{" North ", North, false},
		{"EAST", East, false},
		{"sideways", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDir(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDir(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDir(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNearestDir(t *testing.T) {
	if got := NearestDir(V3(0.2, -0.9, 0.1)); got != Down {
		t.Errorf("NearestDir = %v, want down", got)
	}
	if got := NearestDir(V3(0.6, 0.1, -0.5)); got != East {
		t.Errorf("NearestDir = %v, want east", got)
	}
}

func TestVecOps(t *testing.T) {
	a, b := V3(1, 0, 0), V3(0, 1, 0)
	if got := a.Cross(b); got != V3(0, 0, 1) {
		t.Errorf("x cross y = %v, want z", got)
	}
	if got := V3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := V3(0, 0, 0).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v", got)
	}
	if got := V3(1, 5, -2).Min(V3(2, 3, -1)); got != V3(1, 3, -2) {
		t.Errorf("Min = %v", got)
	}
	if got := V3(1, 5, -2).Max(V3(2, 3, -1)); got != V3(2, 5, -1) {
		t.Errorf("Max = %v", got)
	}
	if got := V3(1, 2, 3).With(AxisY, 7); got != V3(1, 7, 3) {
		t.Errorf("With = %v", got)
	}
}

func TestVec3fMatchesVec3(t *testing.T) {
	a := Vec3f{1, 2, 2}
	if got := a.Length(); got != 3 {
		t.Errorf("Vec3f.Length = %v, want 3", got)
	}
	n := a.Normalize().Vec()
	want := V3(1, 2, 2).Normalize()
	if math.Abs(n.X-want.X) > 1e-6 || math.Abs(n.Y-want.Y) > 1e-6 || math.Abs(n.Z-want.Z) > 1e-6 {
		t.Errorf("Vec3f.Normalize = %v, want %v", n, want)
	}
	if got := V3(1.5, -2, 0.25).Float32().Vec(); got != V3(1.5, -2, 0.25) {
		t.Errorf("round trip through float32 = %v", got)
	}
}

func TestMutVec3DoesNotAlias(t *testing.T) {
	m := NewMutVec3(V3(1, 1, 1))
	snap := m.Vec()
	m.AddInPlace(V3(1, 2, 3)).ScaleInPlace(2)
	if snap != V3(1, 1, 1) {
		t.Fatalf("snapshot changed to %v after mutation", snap)
	}
	if got := m.Vec(); got != V3(4, 6, 8) {
		t.Errorf("accumulated = %v, want (4,6,8)", got)
	}
	m.SetElem(AxisZ, 0)
	if got := m.Elem(AxisZ); got != 0 {
		t.Errorf("Elem(z) = %v after SetElem", got)
	}
}

func TestBoxUnionAndIntersects(t *testing.T) {
	a := B3(0, 0, 0, 1, 1, 1)
	b := B3(1, 0, 0, 2, 1, 1)
	c := B3(3, 3, 3, 4, 4, 4)

	if !a.Intersects(b) {
		t.Error("touching boxes should intersect")
	}
	if a.Intersects(c) {
		t.Error("disjoint boxes should not intersect")
	}
	u := a.Union(c)
	if u != B3(0, 0, 0, 4, 4, 4) {
		t.Errorf("Union = %v", u)
	}
	if !u.ContainsBox(a) || !u.ContainsBox(c) {
		t.Error("union should contain both inputs")
	}
	if !EmptyBox().IsEmpty() {
		t.Error("EmptyBox should be empty")
	}
	if EmptyBox().Intersects(a) {
		t.Error("empty box must not intersect anything")
	}
	if got := EmptyBox().Union(a); got != a {
		t.Errorf("EmptyBox is not the union identity: %v", got)
	}
	if !a.Intersection(c).IsEmpty() {
		t.Error("intersection of disjoint boxes should be empty")
	}
}

func TestBoxIntersectRay(t *testing.T) {
	box := B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)
	tests := []struct {
		name     string
		ray      Ray
		wantOK   bool
		wantTMin float64
	}{
		{"hit from west", Ray{V3(-2, 0, 0), V3(1, 0, 0)}, true, 1.5},
		{"miss above", Ray{V3(-2, 1, 0), V3(1, 0, 0)}, false, 0},
		{"behind origin", Ray{V3(2, 0, 0), V3(1, 0, 0)}, false, 0},
		{"origin inside", Ray{V3(0, 0, 0), V3(0, 1, 0)}, true, 0},
		{"axis parallel on boundary", Ray{V3(-2, 0.5, 0), V3(1, 0, 0)}, true, 1.5},
		{"diagonal", Ray{V3(-1, -1, -1), V3(1, 1, 1)}, true, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmin, _, ok := box.IntersectRay(tt.ray)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(tmin-tt.wantTMin) > 1e-12 {
				t.Errorf("tmin = %v, want %v", tmin, tt.wantTMin)
			}
		})
	}
}
