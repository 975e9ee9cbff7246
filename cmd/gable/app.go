package main

import (
	"fmt"
	"log/slog"

	"github.com/chazu/gable/pkg/asset"
	"github.com/chazu/gable/pkg/config"
	"github.com/chazu/gable/pkg/engine"
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/kernel"
	"github.com/chazu/gable/pkg/kernel/manifold"
	"github.com/chazu/gable/pkg/kernel/sdfx"
	"github.com/chazu/gable/pkg/mesh"
	"github.com/chazu/gable/pkg/placement"
	"github.com/chazu/gable/pkg/shape"
	"github.com/chazu/gable/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App ties the shape catalog, the asset library and the placement resolver
// together behind the commands of the CLI.
type App struct {
	log      *slog.Logger
	engine   *engine.Engine
	kernel   kernel.Kernel
	catalog  *shape.Table
	assets   *asset.Library
	resolver *placement.Resolver
}

// MeshData is the JSON-serializable mesh format printed by preview.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	UVs      []float32 `json:"uvs"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of previewing a shape script.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates an App over the built-in catalog. assetDir may be empty,
// in which case asset-backed shapes have no geometry and the default
// profile table is used. k builds collision hulls; nil means sdfx at its
// default resolution.
func NewApp(log *slog.Logger, assetDir string, k kernel.Kernel) (*App, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if k == nil {
		k = sdfx.New(0)
	}
	lib := asset.NewLibrary(log)
	opposites := shape.DefaultOpposites()
	if assetDir != "" {
		if err := lib.LoadDir(assetDir); err != nil {
			return nil, err
		}
		var err error
		if opposites, err = asset.LoadOpposites(assetDir); err != nil {
			return nil, err
		}
	}
	return &App{
		log:      log,
		engine:   engine.NewEngine(),
		kernel:   k,
		catalog:  shape.Catalog(),
		assets:   lib,
		resolver: placement.NewResolver(opposites, lib),
	}, nil
}

// newKernel returns the solid backend named by the configuration.
func newKernel(cfg config.ExportConfig) (kernel.Kernel, error) {
	if cfg.Kernel == config.KernelManifold {
		return manifold.New()
	}
	return sdfx.New(cfg.Cells), nil
}

// Evaluate takes a shape script and returns its render buffers + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a mesh.
	m, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the output format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Flatten the mesh into per-part buffers.
	result.Meshes = meshData(tessellate.Tessellate(m, nil))
	return result
}

func meshData(bufs []*kernel.Mesh) []MeshData {
	out := make([]MeshData, 0, len(bufs))
	for i, b := range bufs {
		out = append(out, MeshData{
			Vertices: b.Vertices,
			Normals:  b.Normals,
			UVs:      b.UVs,
			Indices:  b.Indices,
			PartName: b.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return out
}

// PlaceRequest describes a click for the place command.
type PlaceRequest struct {
	Shape    string
	Hit      placement.Hit
	Neighbor string
	// NeighborOrientation is used when Neighbor names a shape.
	NeighborOrientation placement.Orientation
}

// Place resolves the orientation of a block placed by req.
func (a *App) Place(req PlaceRequest) (placement.Result, error) {
	s, err := a.catalog.Lookup(req.Shape)
	if err != nil {
		return placement.Result{}, err
	}
	var n *placement.Neighbor
	if req.Neighbor != "" {
		ns, err := a.catalog.Lookup(req.Neighbor)
		if err != nil {
			return placement.Result{}, fmt.Errorf("neighbor: %w", err)
		}
		if !req.NeighborOrientation.Valid() {
			return placement.Result{}, fmt.Errorf("neighbor: invalid orientation %v", req.NeighborOrientation)
		}
		n = &placement.Neighbor{Shape: ns, Orientation: req.NeighborOrientation}
	}
	res := a.resolver.Resolve(s, req.Hit, n)
	a.log.Debug("placed", "shape", s.Name, "orientation", res.Orientation.String(), "decision", res.Decision.String())
	return res, nil
}

// Oriented returns the geometry of the named shape mapped to block space
// by o, with its collision boxes.
func (a *App) Oriented(name string, o placement.Orientation) (*mesh.Mesh, []geom.Box, error) {
	s, err := a.catalog.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	if !o.Valid() {
		return nil, nil, fmt.Errorf("invalid orientation %v", o)
	}
	m, err := s.Kind.Geometry(s, a.assets)
	if err != nil {
		return nil, nil, err
	}
	t := o.Transform()
	return m.Transform(t, false), shape.BoxesFor(s, m, t), nil
}

// ExportKind selects what Export writes.
type ExportKind int

const (
	// ExportRender writes the tessellated render geometry.
	ExportRender ExportKind = iota
	// ExportCollision writes the union of the collision boxes.
	ExportCollision
	// ExportClearance writes the part of the cell the boxes leave free.
	ExportClearance
)

func (k ExportKind) String() string {
	switch k {
	case ExportRender:
		return "render"
	case ExportCollision:
		return "collision"
	case ExportClearance:
		return "clearance"
	}
	return fmt.Sprintf("ExportKind(%d)", int(k))
}

// Export writes the oriented shape to path as STL.
func (a *App) Export(name string, o placement.Orientation, path string, kind ExportKind) error {
	m, boxes, err := a.Oriented(name, o)
	if err != nil {
		return err
	}
	var bufs []*kernel.Mesh
	switch kind {
	case ExportRender:
		bufs = tessellate.Tessellate(m, nil)
	case ExportCollision, ExportClearance:
		build := kernel.Hull
		if kind == ExportClearance {
			build = kernel.Clearance
		}
		out, err := build(a.kernel, boxes)
		if err != nil {
			return err
		}
		bufs = []*kernel.Mesh{out}
	default:
		return fmt.Errorf("unknown export kind %v", kind)
	}
	if err := sdfx.SaveSTL(path, bufs...); err != nil {
		return err
	}
	a.log.Info("exported", "shape", name, "orientation", o.String(), "kind", kind.String(), "path", path, "triangles", len(sdfx.Triangles(bufs...)))
	return nil
}
