// Package shape describes the catalog of block shapes: each shape's kind
// (how its geometry is produced and how it connects to neighbours), its
// symmetry class and its coarse occlusion mask.
package shape

import (
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// Shape is one catalog entry. Shapes are immutable after the catalog is
// built.
type Shape struct {
	ID        int
	Name      string
	Title     string
	Kind      Kind
	Symmetry  Symmetry
	Occlusion uint8
}

func (s *Shape) String() string { return s.Name }

// Table is a catalog of shapes indexed by id and by name.
type Table struct {
	shapes []*Shape
	byName map[string]*Shape
}

// NewTable builds a catalog. Ids must equal the slice index and names must
// be unique.
func NewTable(shapes []*Shape) (*Table, error) {
	for i, s := range shapes {
		if s.ID != i {
			return nil, fmt.Errorf("shape: %q has id %d at index %d", s.Name, s.ID, i)
		}
		if s.Kind == nil {
			return nil, fmt.Errorf("shape: %q has no kind", s.Name)
		}
	}
	if dups := lo.FindDuplicatesBy(shapes, func(s *Shape) string { return s.Name }); len(dups) > 0 {
		return nil, fmt.Errorf("shape: duplicate name %q", dups[0].Name)
	}
	return &Table{
		shapes: shapes,
		byName: lo.KeyBy(shapes, func(s *Shape) string { return s.Name }),
	}, nil
}

func (t *Table) ByID(id int) (*Shape, bool) {
	if id < 0 || id >= len(t.shapes) {
		return nil, false
	}
	return t.shapes[id], true
}

func (t *Table) ByName(name string) (*Shape, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Lookup is ByName with an error for unknown names.
func (t *Table) Lookup(name string) (*Shape, error) {
	if s, ok := t.byName[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// MustLookup panics on unknown names. It is meant for names fixed in code.
func (t *Table) MustLookup(name string) *Shape {
	s, err := t.Lookup(name)
	if err != nil {
		panic(err)
	}
	return s
}

// All returns the shapes in id order. The slice must not be modified.
func (t *Table) All() []*Shape { return t.shapes }

func (t *Table) Names() []string {
	return lo.Map(t.shapes, func(s *Shape, _ int) string { return s.Name })
}

func (t *Table) Len() int { return len(t.shapes) }

// Catalog returns the built-in catalog. It is built on first use.
var Catalog = sync.OnceValue(func() *Table {
	t, err := NewTable(builtinShapes())
	if err != nil {
		panic(err)
	}
	return t
})

func builtinShapes() []*Shape {
	// Model-backed kinds look their meshes up by these asset names.
	defs := []Shape{
		{Name: "cube", Title: "Cube", Kind: NewCube(), Symmetry: Quadrilateral, Occlusion: Full},
		{Name: "cladding", Title: "Cladding", Kind: NewCladding(), Symmetry: Quadrilateral},
		{Name: "roof_tile", Title: "Roof Tile", Kind: NewRoof(RoofTile), Symmetry: Unilateral, Occlusion: 0x0F},
		{Name: "roof_ridge", Title: "Roof Ridge", Kind: NewRoof(RoofRidge), Symmetry: Bilateral, Occlusion: 0x0F},
		{Name: "roof_corner", Title: "Roof Corner", Kind: NewRoof(RoofCorner), Symmetry: Unilateral, Occlusion: 0x0F},
		{Name: "roof_valley", Title: "Roof Valley", Kind: NewRoof(RoofValley), Symmetry: Bilateral, Occlusion: 0x0F},
		{Name: "roof_overhang", Title: "Roof Overhang", Kind: NewRoof(RoofOverhang), Symmetry: Unilateral},
		{Name: "stairs", Title: "Stairs", Kind: NewStairs(), Symmetry: Unilateral, Occlusion: stairsOcclusion},
		{Name: "window", Title: "Window", Kind: NewWindow(), Symmetry: Bilateral},
		{Name: "column", Title: "Column", Kind: NewModel("column", AllowUpsideDown, false), Symmetry: Quadrilateral},
		{Name: "baluster", Title: "Baluster", Kind: NewModel("baluster", 0, false), Symmetry: Quadrilateral},
		{Name: "cornice", Title: "Cornice", Kind: NewModel("cornice", AllowUpsideDown|PlaceUnderneath, true), Symmetry: Unilateral},
		{Name: "banister", Title: "Banister", Kind: NewBanister("banister"), Symmetry: Unilateral},
	}
	out := make([]*Shape, len(defs))
	for i := range defs {
		defs[i].ID = i
		out[i] = &defs[i]
	}
	return out
}
