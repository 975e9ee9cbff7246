// Command gable inspects the shape catalog, resolves placements and
// exports oriented shapes as STL.
//
//	gable [-config gable.yaml] list
//	gable preview script.shape
//	gable place -shape roof_tile -face north -hit 0.2,0.1,-0.3 [-neighbor roof_ridge -nside down -nturn 1]
//	gable export -shape window -side down -turn 1 [-collision|-clearance] -o window.stl
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/chazu/gable/pkg/config"
	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/placement"
)

const usage = `usage: gable [-config file] <command> [flags]

commands:
  list     print the shape catalog
  preview  evaluate a shape script and print its render buffers as JSON
  place    resolve the orientation of a placed shape
  export   write an oriented shape as STL
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "gable:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid usage")

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gable", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	configPath := fs.String("config", "", "configuration file (default $GABLE_CONFIG)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := cfg.Logger()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	assetDir := cfg.Assets.Dir
	if cmd == "preview" || cmd == "list" {
		// Neither needs asset meshes.
		assetDir = ""
	}
	if assetDir != "" {
		if _, err := os.Stat(assetDir); err != nil {
			log.Warn("asset directory unavailable, asset-backed shapes have no geometry", "dir", assetDir, "err", err)
			assetDir = ""
		}
	}
	k, err := newKernel(cfg.Export)
	if err != nil {
		return err
	}
	app, err := NewApp(log, assetDir, k)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		return runList(app, stdout)
	case "preview":
		return runPreview(app, rest, stdout)
	case "place":
		return runPlace(app, rest, stdout)
	case "export":
		return runExport(app, rest)
	}
	fs.Usage()
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func runList(app *App, stdout io.Writer) error {
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTITLE\tSYMMETRY\tFLAGS")
	for _, s := range app.catalog.All() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%v\n", s.ID, s.Name, s.Title, s.Symmetry, s.Kind.Flags())
	}
	return w.Flush()
}

func runPreview(app *App, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: preview takes one script file", errUsage)
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	result := app.Evaluate(string(src))
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%s: %d error(s)", args[0], len(result.Errors))
	}
	return nil
}

func runPlace(app *App, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("place", flag.ContinueOnError)
	name := fs.String("shape", "", "shape to place")
	face := fs.String("face", "up", "face of the clicked block that was hit")
	hit := fs.String("hit", "0,0,0", "hit point relative to the new block's centre, x,y,z")
	reversed := fs.Bool("reversed", false, "request the alternate placement")
	neighbor := fs.String("neighbor", "", "shape of the clicked block, if shaped")
	nside := fs.String("nside", "down", "side of the clicked block")
	nturn := fs.Int("nturn", 0, "turn of the clicked block")
	noffset := fs.Float64("noffset", 0, "offset of the clicked block")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := geom.ParseDir(*face)
	if err != nil {
		return err
	}
	p, err := parseVec(*hit)
	if err != nil {
		return fmt.Errorf("hit: %w", err)
	}
	req := PlaceRequest{
		Shape:    *name,
		Hit:      placement.Hit{Face: d, Point: p, Reversed: *reversed},
		Neighbor: *neighbor,
	}
	if *neighbor != "" {
		side, err := geom.ParseDir(*nside)
		if err != nil {
			return fmt.Errorf("nside: %w", err)
		}
		req.NeighborOrientation = placement.Orientation{Side: side, Turn: *nturn, OffsetX: *noffset}
	}

	res, err := app.Place(req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s (by %s)\n", res.Orientation, res.Decision)
	return err
}

func runExport(app *App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	name := fs.String("shape", "", "shape to export")
	side := fs.String("side", "down", "side the shape rests on")
	turn := fs.Int("turn", 0, "quarter turns about the side")
	offset := fs.Float64("offset", 0, "offset along local x")
	collision := fs.Bool("collision", false, "export the collision hull instead of the render geometry")
	clearance := fs.Bool("clearance", false, "export the free space the collision hull leaves in the cell")
	out := fs.String("o", "", "output STL file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("%w: export needs -o", errUsage)
	}
	d, err := geom.ParseDir(*side)
	if err != nil {
		return err
	}
	kind := ExportRender
	switch {
	case *collision && *clearance:
		return fmt.Errorf("%w: -collision and -clearance are exclusive", errUsage)
	case *collision:
		kind = ExportCollision
	case *clearance:
		kind = ExportClearance
	}
	o := placement.Orientation{Side: d, Turn: *turn, OffsetX: *offset}
	return app.Export(*name, o, *out, kind)
}

// parseVec parses "x,y,z".
func parseVec(s string) (geom.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var f [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Vec3{}, err
		}
		f[i] = v
	}
	return geom.V3(f[0], f[1], f[2]), nil
}
