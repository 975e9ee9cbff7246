package asset

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/chazu/gable/pkg/engine"
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
	"github.com/chazu/gable/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoAssets is the asset directory shipped with the module.
const repoAssets = "../../assets"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirShippedAssets(t *testing.T) {
	lib := NewLibrary(nil)
	require.NoError(t, lib.LoadDir(repoAssets))

	assert.Equal(t, []string{"baluster", "banister", "column", "cornice"}, lib.Names())

	column, ok := lib.Mesh("column")
	require.True(t, ok)
	assert.Equal(t, []string{"base", "shaft", "capital"}, column.PartIDs())
	assert.True(t, column.Bounds().ApproxEqual(geom.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)))
}

func TestEveryModelShapeHasAnAsset(t *testing.T) {
	lib := NewLibrary(nil)
	require.NoError(t, lib.LoadDir(repoAssets))

	for _, s := range shape.Catalog().All() {
		m, err := s.Kind.Geometry(s, lib)
		require.NoError(t, err, s.Name)
		assert.False(t, m.IsEmpty(), s.Name)
		assert.NotEmpty(t, s.Kind.CollisionBoxes(s, m), s.Name)
	}
}

func TestBanisterOffsetFromAsset(t *testing.T) {
	lib := NewLibrary(nil)
	require.NoError(t, lib.LoadDir(repoAssets))

	s := shape.Catalog().MustLookup("banister")
	o, ok := s.Kind.(shape.Offsetter)
	require.True(t, ok)
	assert.InDelta(t, 0.4375, o.PlacementOffset(s, lib), 1e-9)
}

func TestLoadDirCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.shape", `(part "p") (box -0.5 -0.5 -0.5 0.5 0 0.5)`)
	writeFile(t, dir, "flat.shape", `(tri (vtx 0 0 0) (vtx 1 0 0) (vtx 2 0 0))`)
	writeFile(t, dir, "broken.shape", `(part "p"`)
	writeFile(t, dir, "notes.txt", `not a script`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.shape"), 0o755))

	lib := NewLibrary(nil)
	err := lib.LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrInvalidAsset))
	assert.Contains(t, err.Error(), "flat")
	assert.Contains(t, err.Error(), "broken")

	assert.Equal(t, []string{"good"}, lib.Names())
}

func TestLoadDirMissing(t *testing.T) {
	err := NewLibrary(nil).LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadScriptReplaces(t *testing.T) {
	lib := NewLibrary(nil)
	eng := engine.NewEngine()
	require.NoError(t, lib.LoadScript(eng, "slab", `(box -0.5 -0.5 -0.5 0.5 0 0.5)`))
	require.NoError(t, lib.LoadScript(eng, "slab", `(box -0.5 -0.5 -0.5 0.5 0.25 0.5)`))

	m, ok := lib.Mesh("slab")
	require.True(t, ok)
	assert.InDelta(t, 0.25, m.Bounds().Max.Y, 1e-9)
	assert.Equal(t, 1, lib.Len())
}

func TestLibraryConcurrentAccess(t *testing.T) {
	lib := NewLibrary(nil)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('a' + i))
			lib.Add(name, mesh.Empty())
			_, ok := lib.Mesh(name)
			assert.True(t, ok)
			_ = lib.Names()
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, lib.Len())
}

func TestLoadOpposites(t *testing.T) {
	shipped, err := LoadOpposites(repoAssets)
	require.NoError(t, err)
	assert.Equal(t, shape.DefaultOpposites().Pairs(), shipped.Pairs())

	missing, err := LoadOpposites(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, shape.DefaultOpposites().Len(), missing.Len())

	dir := t.TempDir()
	writeFile(t, dir, OppositesFile, "pairs:\n  - [roof-lr, no-such-tag]\n")
	_, err = LoadOpposites(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shape.ErrInvalidProfile))
}
