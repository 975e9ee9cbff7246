package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/gable/pkg/geom"
	"github.com/chazu/gable/pkg/mesh"
	"github.com/chazu/gable/pkg/shape"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms shape script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: end-cap -> end_cap
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVertex wraps a mesh.Vertex so it can be returned from `vtx` and
// consumed by `tri` and `quad`.
type sexpVertex struct {
	v mesh.Vertex
}

func (v *sexpVertex) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vtx %g %g %g %g %g)", v.v.Pos.X, v.v.Pos.Y, v.v.Pos.Z, v.v.U, v.v.V)
}
func (v *sexpVertex) Type() *zygo.RegisteredType { return nil }

// sexpPolygon wraps a polygon added by `tri` or `quad`.
type sexpPolygon struct {
	p *mesh.Polygon
}

func (p *sexpPolygon) SexpString(ps *zygo.PrintState) string {
	if p.p.IsTri() {
		return "(tri ...)"
	}
	return "(quad ...)"
}
func (p *sexpPolygon) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toDir converts a keyword or string to a geom.Dir.
func toDir(s zygo.Sexp) (geom.Dir, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected direction keyword: %w", err)
	}
	return geom.ParseDir(name)
}

// toFaceID converts a keyword or string to a mesh.FaceID.
func toFaceID(s zygo.Sexp) (mesh.FaceID, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected face keyword: %w", err)
	}
	return mesh.ParseFaceID(name)
}

// toVertex extracts a Vertex from a sexpVertex.
func toVertex(s zygo.Sexp) (mesh.Vertex, error) {
	if v, ok := s.(*sexpVertex); ok {
		return v.v, nil
	}
	return mesh.Vertex{}, fmt.Errorf("expected vertex, got %T (%s)", s, s.SexpString(nil))
}

// toVertices extracts vertices from positional args, flattening lists so
// that (quad (list a b c d)) and (quad a b c d) are the same.
func toVertices(args []zygo.Sexp) ([]mesh.Vertex, error) {
	var out []mesh.Vertex
	for i, a := range args {
		if _, ok := a.(*sexpVertex); !ok {
			items, err := sexpListToSlice(a)
			if err == nil {
				vs, err := toVertices(items)
				if err != nil {
					return nil, err
				}
				out = append(out, vs...)
				continue
			}
		}
		v, err := toVertex(a)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// toData reads :texture, :tint and :cull into d.
func toData(pa kwArgs, d mesh.PolygonData) (mesh.PolygonData, error) {
	if v, ok := pa.kw["texture"]; ok {
		n, err := toInt(v)
		if err != nil {
			return d, fmt.Errorf("texture: %w", err)
		}
		d.Texture = n
	}
	if v, ok := pa.kw["tint"]; ok {
		n, err := toInt(v)
		if err != nil {
			return d, fmt.Errorf("tint: %w", err)
		}
		d.Tint = n
	}
	if v, ok := pa.kw["cull"]; ok {
		if v == zygo.SexpNull {
			d.CullFace = nil
		} else {
			dir, err := toDir(v)
			if err != nil {
				return d, fmt.Errorf("cull: %w", err)
			}
			d.CullFace = mesh.Cull(dir)
		}
	}
	return d, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// script is the state shared by the builtins of one evaluation.
type script struct {
	b    *mesh.Builder
	data mesh.PolygonData
}

func (s *script) add(p *mesh.Polygon) zygo.Sexp {
	s.b.Polygon(p)
	return &sexpPolygon{p: p}
}

// registerBuiltins installs the shape script builtins into a zygomys
// environment. Polygons are accumulated into b, which the caller builds
// once the script has run.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *mesh.Builder) {
	s := &script{b: b}

	// -----------------------------------------------------------------------
	// (part "name")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}
		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		if id == "" {
			return zygo.SexpNull, fmt.Errorf("part: name must not be empty")
		}
		s.b.Part(id)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (face :north)
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("face requires exactly one face keyword")
		}
		id, err := toFaceID(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		s.b.Face(id)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (data :texture 1 :tint 0 :cull :up)
	//
	// Sets the metadata of polygons added from now on. Unnamed fields keep
	// their current value; (data) alone resets everything.
	// -----------------------------------------------------------------------
	env.AddFunction("data", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			s.data = mesh.PolygonData{}
			return zygo.SexpNull, nil
		}
		d, err := toData(parseArgs(args), s.data)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("data: %w", err)
		}
		s.data = d
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (vtx x y z) or (vtx x y z u v)
	// -----------------------------------------------------------------------
	env.AddFunction("vtx", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 && len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("vtx requires 3 or 5 arguments, got %d", len(args))
		}
		var f [5]float64
		for i, a := range args {
			v, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vtx: argument %d: %w", i, err)
			}
			f[i] = v
		}
		return &sexpVertex{v: mesh.V(f[0], f[1], f[2], f[3], f[4])}, nil
	})

	// -----------------------------------------------------------------------
	// (tri a b c :texture 1)
	// (quad a b c d :cull :north)
	//
	// Keywords override the current data for this polygon only.
	// -----------------------------------------------------------------------
	polygon := func(want int) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			vs, err := toVertices(pa.positional)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			if len(vs) != want {
				return zygo.SexpNull, fmt.Errorf("%s requires %d vertices, got %d", name, want, len(vs))
			}
			d, err := toData(pa, s.data)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			var p *mesh.Polygon
			if want == 3 {
				p, err = mesh.NewTri(vs[0], vs[1], vs[2], d)
			} else {
				p, err = mesh.NewQuad(vs[0], vs[1], vs[2], vs[3], d)
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return s.add(p), nil
		}
	}
	env.AddFunction("tri", polygon(3))
	env.AddFunction("quad", polygon(4))

	// -----------------------------------------------------------------------
	// (box x0 y0 z0 x1 y1 z1 :texture 1)
	//
	// Emits the six outward-facing sides of the box. Sides on the block
	// boundary go to their block face with a cull face, the rest to the
	// general face. The current face selection is not kept.
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 6 {
			return zygo.SexpNull, fmt.Errorf("box requires 6 coordinates, got %d", len(pa.positional))
		}
		var c [6]float64
		for i, a := range pa.positional {
			v, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: coordinate %d: %w", i, err)
			}
			c[i] = v
		}
		box := geom.B3(c[0], c[1], c[2], c[3], c[4], c[5])
		sz := box.Size()
		if sz.X <= geom.Epsilon || sz.Y <= geom.Epsilon || sz.Z <= geom.Epsilon {
			return zygo.SexpNull, fmt.Errorf("box: %w: zero-volume box", mesh.ErrDegeneratePolygon)
		}
		d, err := toData(pa, s.data)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		d.CullFace = nil
		shape.AddBox(s.b, box, d)
		return zygo.SexpNull, nil
	})
}
