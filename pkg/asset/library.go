// Package asset loads shape scripts from disk and serves the resulting
// meshes by name to asset-backed shape kinds.
package asset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/chazu/gable/pkg/engine"
	"github.com/chazu/gable/pkg/mesh"
	"github.com/chazu/gable/pkg/shape"
	"github.com/samber/lo"
)

// Ext is the file extension of shape scripts.
const Ext = ".shape"

// OppositesFile is the optional profile table loaded from an asset
// directory alongside the scripts.
const OppositesFile = "opposites.yaml"

// Library is a set of named meshes. It is safe for concurrent use.
type Library struct {
	mu     sync.RWMutex
	meshes map[string]*mesh.Mesh
	log    *slog.Logger
}

var _ shape.MeshSource = (*Library)(nil)

// NewLibrary returns an empty library. A nil logger discards output.
func NewLibrary(log *slog.Logger) *Library {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Library{meshes: make(map[string]*mesh.Mesh), log: log}
}

// Add registers m under name, replacing any earlier mesh of that name.
func (l *Library) Add(name string, m *mesh.Mesh) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.meshes[name] = m
}

// Mesh returns the mesh registered under name.
func (l *Library) Mesh(name string) (*mesh.Mesh, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.meshes[name]
	return m, ok
}

// Names returns the registered names, sorted.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := lo.Keys(l.meshes)
	slices.Sort(names)
	return names
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.meshes)
}

// LoadScript evaluates source with eng and registers the result as name.
func (l *Library) LoadScript(eng *engine.Engine, name, source string) error {
	m, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", mesh.ErrInvalidAsset, name, err)
	}
	if len(evalErrs) > 0 {
		return fmt.Errorf("%w: %s: %w", mesh.ErrInvalidAsset, name, engine.Join(evalErrs))
	}
	l.Add(name, m)
	l.log.Debug("loaded asset", "name", name, "parts", len(m.PartIDs()), "polygons", m.PolygonCount())
	return nil
}

// LoadDir evaluates every shape script in dir, registering each under its
// base name without the extension. Scripts are evaluated one at a time;
// an engine evaluation supersedes any still running on the same engine.
// A failing script does not stop the others: every failure is returned,
// joined, after the whole directory has been read.
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("asset: %w", err)
	}

	eng := engine.NewEngine()
	var errs []error
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		path := filepath.Join(dir, e.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("asset: %w", err))
			continue
		}
		name := strings.TrimSuffix(e.Name(), Ext)
		if err := l.LoadScript(eng, name, string(src)); err != nil {
			l.log.Warn("asset failed", "file", path, "err", err)
			errs = append(errs, err)
			continue
		}
		loaded++
	}
	l.log.Info("loaded asset directory", "dir", dir, "loaded", loaded, "failed", len(errs))
	return errors.Join(errs...)
}

// LoadOpposites reads dir/opposites.yaml if present. Without the file it
// returns the default table.
func LoadOpposites(dir string) (*shape.OppositeTable, error) {
	path := filepath.Join(dir, OppositesFile)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return shape.DefaultOpposites(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("asset: %w", err)
	}
	defer f.Close()

	t, err := shape.LoadOpposites(f, shape.KnownProfiles())
	if err != nil {
		return nil, fmt.Errorf("asset: %s: %w", path, err)
	}
	return t, nil
}
