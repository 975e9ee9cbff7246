// Package engine evaluates shape scripts: small Lisp programs that describe
// a mesh as vertices, polygons, faces and parts. Scripts run in a zygomys
// sandbox and produce a *mesh.Mesh.
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/gable/pkg/mesh"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in the script, or invalid
// geometry.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Join folds eval errors into one error, or nil when there are none.
func Join(errs []EvalError) error {
	if len(errs) == 0 {
		return nil
	}
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return errors.Join(out...)
}

// DefaultTimeout bounds a single evaluation unless WithTimeout says
// otherwise.
const DefaultTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine's timeout.
	// The script keeps running in the background; its mesh is dropped.
	ErrTimeout = errors.New("engine: evaluation timed out")
	// ErrSuperseded is returned by an evaluation that finished after a
	// newer one had started.
	ErrSuperseded = errors.New("engine: evaluation superseded by newer request")
)

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism. A call that starts while an
// earlier one is still running supersedes it.
type Engine struct {
	timeout time.Duration
	// run evaluates one script; tests wrap it to hold a script back.
	run func(source string) (*mesh.Mesh, []EvalError, error)

	mu         sync.Mutex
	generation uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-script limit. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout, run: evaluate}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate runs a shape script and returns the mesh it declares.
//
// Return semantics:
//   - On success: returns mesh + nil errors + nil error
//   - On parse/eval/geometry failure: returns nil mesh + eval errors + nil error
//   - On fatal failure: returns nil + nil + error (ErrTimeout, ErrSuperseded
//     or a recovered panic)
func (e *Engine) Evaluate(source string) (*mesh.Mesh, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	type result struct {
		mesh   *mesh.Mesh
		errors []EvalError
		err    error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("engine: panic during evaluation: %v", r)}
			}
		}()
		m, evalErrs, err := e.run(source)
		done <- result{mesh: m, errors: evalErrs, err: err}
	}()

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()
	select {
	case res := <-done:
		e.mu.Lock()
		stale := gen != e.generation
		e.mu.Unlock()
		if stale {
			return nil, nil, ErrSuperseded
		}
		return res.mesh, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func evaluate(source string) (*mesh.Mesh, []EvalError, error) {
	// Empty source is a valid script that produces an empty mesh.
	if strings.TrimSpace(source) == "" {
		return mesh.Empty(), nil, nil
	}

	// Sandbox mode prevents scripts from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := mesh.NewBuilder()
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	m, err := b.Build()
	if err != nil {
		return nil, []EvalError{{Message: err.Error()}}, nil
	}
	return m, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
