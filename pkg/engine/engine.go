// Package engine evaluates sketch programs written in a small Lisp.
// It wraps zygomys in a sandboxed environment and collects the sketches a
// program builds.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/sketch"
	zygo "github.com/glycerine/zygomys/zygo"
)

// DefaultCircleSegments is used for circles that do not set :segments.
const DefaultCircleSegments = 32

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
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

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	// CircleSegments is the default segment count for circles.
	CircleSegments int

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{CircleSegments: DefaultCircleSegments}
}

// Evaluate runs sketch source code and returns the sketches it built, in
// the order they were built.
//
// Return semantics:
//   - On success: returns sketches + nil errors + nil error
//   - On parse/eval failure: returns nil + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) ([]sketch.Sketch, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	segments := e.CircleSegments
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		sketches, evalErrs, err := evaluate(source, segments)
		ch <- evalResult{sketches: sketches, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func evaluate(source string, segments int) ([]sketch.Sketch, []EvalError, error) {
	// Empty source is a valid program that builds nothing.
	if strings.TrimSpace(source) == "" {
		return []sketch.Sketch{}, nil, nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	r := &recorder{sketches: []sketch.Sketch{}, segments: segments}
	registerBuiltins(env, r)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	logging.Logger().Info("evaluated source", "sketches", len(r.sketches))
	return r.sketches, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, pattern := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
