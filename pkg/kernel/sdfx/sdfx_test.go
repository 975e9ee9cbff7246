package sdfx

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/kernel"
)

func mustBox(t *testing.T, k *SdfxKernel, b geom.Box) kernel.Solid {
	t.Helper()
	s, err := k.Box(b)
	if err != nil {
		t.Fatalf("Box(%v) failed: %v", b, err)
	}
	return s
}

func TestBox(t *testing.T) {
	k := New(0)
	mesh, err := k.ToMesh(mustBox(t, k, geom.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestBoundingBox(t *testing.T) {
	k := New(0)
	box := mustBox(t, k, geom.B3(-0.5, -0.5, -0.125, 0.5, 0, 0.125))
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-0.5, -0.5, -0.125}
	expectMax := [3]float64{0.5, 0, 0.125}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestInvertedBoxFails(t *testing.T) {
	k := New(0)
	if _, err := k.Box(geom.Box{Min: geom.V3(0, 0, 0), Max: geom.V3(-1, 1, 1)}); err == nil {
		t.Fatal("expected an error for a box with negative size")
	}
}

func TestHullOfStairBoxes(t *testing.T) {
	k := New(0)
	// The lower slab and upper back quarter of a stair.
	boxes := []geom.Box{
		geom.B3(-0.5, -0.5, -0.5, 0.5, 0, 0.5),
		geom.B3(-0.5, 0, -0.5, 0.5, 0.5, 0),
	}
	m, err := kernel.Hull(k, boxes)
	if err != nil {
		t.Fatalf("Hull failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("hull mesh is empty")
	}

	const tol = 0.05
	b := m.Bounds()
	if math.Abs(b.Min.Y+0.5) > tol || math.Abs(b.Max.Y-0.5) > tol {
		t.Errorf("hull Y range = [%f, %f], want [-0.5, 0.5]", b.Min.Y, b.Max.Y)
	}
	if math.Abs(b.Max.Z-0.5) > tol {
		t.Errorf("hull max Z = %f, want 0.5", b.Max.Z)
	}
}

func TestClearanceAboveStairs(t *testing.T) {
	k := New(0)
	boxes := []geom.Box{
		geom.B3(-0.5, -0.5, -0.5, 0.5, 0, 0.5),
		geom.B3(-0.5, 0, -0.5, 0.5, 0.5, 0),
	}
	m, err := kernel.Clearance(k, boxes)
	if err != nil {
		t.Fatalf("Clearance failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("clearance mesh is empty")
	}

	// Only the quarter over the lower tread is free.
	const tol = 0.05
	b := m.Bounds()
	if math.Abs(b.Min.Y) > tol || math.Abs(b.Max.Y-0.5) > tol {
		t.Errorf("clearance Y range = [%f, %f], want [0, 0.5]", b.Min.Y, b.Max.Y)
	}
	if math.Abs(b.Min.Z) > tol || math.Abs(b.Max.Z-0.5) > tol {
		t.Errorf("clearance Z range = [%f, %f], want [0, 0.5]", b.Min.Z, b.Max.Z)
	}
}

func TestDifference(t *testing.T) {
	k := New(0)
	outer := mustBox(t, k, geom.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5))
	inner := mustBox(t, k, geom.B3(-0.25, -0.25, -0.25, 0.25, 0.25, 0.25))
	mesh, err := k.ToMesh(k.Difference(outer, inner))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
}

// quadMesh is a single unit quad on the top face.
func quadMesh() *kernel.Mesh {
	m := &kernel.Mesh{PartName: "top"}
	up := geom.Vec3f{Y: 1}
	a := m.AddVertex(geom.Vec3f{X: -0.5, Y: 0.5, Z: -0.5}, up, 0, 0)
	b := m.AddVertex(geom.Vec3f{X: -0.5, Y: 0.5, Z: 0.5}, up, 0, 1)
	c := m.AddVertex(geom.Vec3f{X: 0.5, Y: 0.5, Z: 0.5}, up, 1, 1)
	d := m.AddVertex(geom.Vec3f{X: 0.5, Y: 0.5, Z: -0.5}, up, 1, 0)
	m.AddTriangle(a, b, c, 0)
	m.AddTriangle(a, c, d, 0)
	return m
}

func TestTrianglesAndBounds(t *testing.T) {
	tris := Triangles(quadMesh(), &kernel.Mesh{})
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(tris))
	}
	n := tris[0].Normal()
	if math.Abs(n.Y-1) > 1e-6 {
		t.Errorf("normal = %v, want +Y", n)
	}

	bb := BoundingBox(quadMesh())
	if bb.Min.X != -0.5 || bb.Max.Z != 0.5 || bb.Min.Y != 0.5 {
		t.Errorf("bounding box = %v", bb)
	}
	if empty := BoundingBox(); empty.Min.X != 0 || empty.Max.X != 0 {
		t.Errorf("empty bounding box = %v", empty)
	}
}

func TestSaveSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.stl")
	if err := SaveSTL(path, quadMesh()); err != nil {
		t.Fatalf("SaveSTL failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// 80-byte header, 4-byte count, 50 bytes per triangle.
	if info.Size() != 84+2*50 {
		t.Errorf("file size = %d, want %d", info.Size(), 84+2*50)
	}

	if err := SaveSTL(path, &kernel.Mesh{}); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("SaveSTL of empty mesh = %v, want ErrNothingToExport", err)
	}
}
