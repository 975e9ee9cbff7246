package engine

import (
	"strings"
	"testing"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(face :north)`,
			expect: `(face "__kw_north")`,
		},
		{
			name:   "multiple keywords",
			input:  `(data :texture 4 :cull :up)`,
			expect: `(data "__kw_texture" 4 "__kw_cull" "__kw_up")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(def end-cap :cull-face)`,
			expect: `(def end_cap "__kw_cull-face")`,
		},
		{
			name:   "negative literal preserved",
			input:  `(vtx -0.5 0 0.5)`,
			expect: `(vtx -0.5 0 0.5)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:cull-face`,
			expect: `"__kw_cull-face"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Script evaluation tests
// ---------------------------------------------------------------------------

// mustEval evaluates source and fails the test on any error.
func mustEval(t *testing.T, source string) *mesh.Mesh {
	t.Helper()
	m, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if m == nil {
		t.Fatal("expected non-nil mesh")
	}
	return m
}

// evalErr evaluates source and returns the first eval error, failing the
// test if there is none.
func evalErr(t *testing.T, source string) EvalError {
	t.Helper()
	m, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil mesh on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	return evalErrs[0]
}

func TestTopQuad(t *testing.T) {
	m := mustEval(t, `
(part "top")
(face :up)
(data :texture 3 :cull :up)
(quad (vtx -0.5 0.5 -0.5 0 0)
      (vtx -0.5 0.5 0.5 0 1)
      (vtx 0.5 0.5 0.5 1 1)
      (vtx 0.5 0.5 -0.5 1 0))
`)

	part, ok := m.LookupPart("top")
	if !ok {
		t.Fatalf("expected part %q, got %v", "top", m.PartIDs())
	}
	face, ok := part.Face(mesh.FaceUp)
	if !ok || face.Len() != 1 {
		t.Fatalf("expected one polygon on the up face")
	}
	p := face.Polygons()[0]
	if !p.IsQuad() {
		t.Error("expected a quad")
	}
	if !p.Normal().ApproxEqual(geom.V3(0, 1, 0)) {
		t.Errorf("normal = %v, want (0,1,0)", p.Normal())
	}
	d := p.Data()
	if d.Texture != 3 {
		t.Errorf("texture = %d, want 3", d.Texture)
	}
	if d.CullFace == nil || *d.CullFace != geom.Up {
		t.Errorf("cull face = %v, want up", d.CullFace)
	}
	if v := p.Vertex(2); v.U != 1 || v.V != 1 {
		t.Errorf("uv = (%g,%g), want (1,1)", v.U, v.V)
	}
}

func TestPolygonKeywordsOverrideData(t *testing.T) {
	m := mustEval(t, `
(data :texture 1)
(tri (vtx 0 0 0) (vtx 0 0 1) (vtx 1 0 0) :texture 2 :tint 5)
(tri (vtx 0 1 0) (vtx 0 1 1) (vtx 1 1 0))
`)
	polys := m.Polygons()
	if len(polys) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(polys))
	}
	if d := polys[0].Data(); d.Texture != 2 || d.Tint != 5 {
		t.Errorf("first polygon data = %+v, want texture 2 tint 5", d)
	}
	if d := polys[1].Data(); d.Texture != 1 || d.Tint != 0 {
		t.Errorf("second polygon data = %+v, want texture 1 tint 0", d)
	}
}

func TestPolygonsWithoutPartGoToMain(t *testing.T) {
	m := mustEval(t, `(tri (vtx 0 0 0) (vtx 0 0 1) (vtx 1 0 0))`)
	part, ok := m.LookupPart("main")
	if !ok {
		t.Fatalf("expected part main, got %v", m.PartIDs())
	}
	if _, ok := part.Face(mesh.FaceGeneral); !ok {
		t.Error("expected polygon on the general face")
	}
}

func TestVertexList(t *testing.T) {
	m := mustEval(t, `
(def vs (list (vtx 0 0 0) (vtx 0 0 1) (vtx 1 0 1) (vtx 1 0 0)))
(quad vs)
`)
	if m.PolygonCount() != 1 {
		t.Fatalf("expected 1 polygon, got %d", m.PolygonCount())
	}
}

func TestPostBox(t *testing.T) {
	m := mustEval(t, `
(part "post")
(box -0.125 -0.5 -0.125 0.125 0.5 0.125 :texture 1)
`)

	part := m.Part("post")
	if part.PolygonCount() != 6 {
		t.Fatalf("expected 6 polygons, got %d", part.PolygonCount())
	}
	for _, id := range []mesh.FaceID{mesh.FaceUp, mesh.FaceDown} {
		f, ok := part.Face(id)
		if !ok || f.Len() != 1 {
			t.Fatalf("expected one polygon on %v", id)
		}
		p := f.Polygons()[0]
		d, _ := id.Dir()
		if p.Data().CullFace == nil || *p.Data().CullFace != d {
			t.Errorf("%v: cull face = %v", id, p.Data().CullFace)
		}
		if !p.Normal().ApproxEqual(d.Vector()) {
			t.Errorf("%v: normal = %v, want %v", id, p.Normal(), d.Vector())
		}
	}
	general, ok := part.Face(mesh.FaceGeneral)
	if !ok || general.Len() != 4 {
		t.Fatal("expected four sides on the general face")
	}
	for _, p := range general.Polygons() {
		if p.Data().CullFace != nil {
			t.Error("interior side should not cull")
		}
		if p.Data().Texture != 1 {
			t.Errorf("texture = %d, want 1", p.Data().Texture)
		}
	}
	want := geom.B3(-0.125, -0.5, -0.125, 0.125, 0.5, 0.125)
	if !m.Bounds().ApproxEqual(want) {
		t.Errorf("bounds = %v, want %v", m.Bounds(), want)
	}
}

func TestBoxWithVariables(t *testing.T) {
	m := mustEval(t, `
(def h 0.25)
(part "slab")
(box -0.5 -0.5 -0.5 0.5 h 0.5)
`)
	part := m.Part("slab")
	for _, id := range []mesh.FaceID{mesh.FaceDown, mesh.FaceNorth, mesh.FaceSouth, mesh.FaceWest, mesh.FaceEast} {
		if _, ok := part.Face(id); !ok {
			t.Errorf("expected boundary face %v", id)
		}
	}
	if _, ok := part.Face(mesh.FaceUp); ok {
		t.Error("top at y=0.25 is not on the boundary")
	}
	if f, ok := part.Face(mesh.FaceGeneral); !ok || f.Len() != 1 {
		t.Error("expected the top on the general face")
	}
}

func TestPartsAccumulate(t *testing.T) {
	m := mustEval(t, `
(part "a")
(tri (vtx 0 0 0) (vtx 0 0 1) (vtx 1 0 0))
(part "b")
(tri (vtx 0 1 0) (vtx 0 1 1) (vtx 1 1 0))
(part "a")
(face :down)
(tri (vtx 0 -0.5 0) (vtx 1 -0.5 0) (vtx 0 -0.5 1))
`)
	ids := m.PartIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("part ids = %v, want [a b]", ids)
	}
	if n := m.Part("a").PolygonCount(); n != 2 {
		t.Errorf("part a has %d polygons, want 2", n)
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "degenerate triangle",
			source:  `(tri (vtx 0 0 0) (vtx 1 0 0) (vtx 2 0 0))`,
			wantMsg: "degenerate",
		},
		{
			name:    "too few vertices",
			source:  `(tri (vtx 0 0 0) (vtx 1 0 0))`,
			wantMsg: "requires 3 vertices",
		},
		{
			name:    "not a vertex",
			source:  `(quad 1 2 3 4)`,
			wantMsg: "expected vertex",
		},
		{
			name:    "unknown face",
			source:  `(face :sideways)`,
			wantMsg: "sideways",
		},
		{
			name:    "fractional texture",
			source:  `(data :texture 1.5)`,
			wantMsg: "expected integer",
		},
		{
			name:    "bad cull direction",
			source:  `(data :cull :inward)`,
			wantMsg: "inward",
		},
		{
			name:    "flat box",
			source:  `(box 0 0 0 1 0 1)`,
			wantMsg: "zero-volume",
		},
		{
			name:    "empty part name",
			source:  `(part "")`,
			wantMsg: "must not be empty",
		},
		{
			name:    "vtx arity",
			source:  `(vtx 1 2)`,
			wantMsg: "3 or 5 arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := evalErr(t, tt.source)
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

func TestEvaluatedMeshIsSearchable(t *testing.T) {
	m := mustEval(t, `(part "block") (box -0.5 -0.5 -0.5 0.5 0.5 0.5)`)
	hit, ok := m.IntersectRay(geom.Ray{Origin: geom.V3(0, 2, 0), Dir: geom.V3(0, -1, 0)})
	if !ok {
		t.Fatal("expected the ray to hit the cube")
	}
	if !hit.Point.ApproxEqual(geom.V3(0, 0.5, 0)) {
		t.Errorf("hit point = %v, want (0,0.5,0)", hit.Point)
	}
}
