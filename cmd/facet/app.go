package main

import (
	"fmt"

	"github.com/chazu/facet/pkg/aabb"
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/kernel/sdfx"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/objects"
	"github.com/chazu/facet/pkg/sketch"
	"github.com/chazu/facet/pkg/triangulate"
	"github.com/chazu/facet/pkg/validation"
)

// App runs sketch source through evaluation, validation and meshing.
type App struct {
	// Config holds the validation tolerances.
	Config validation.Config

	// ExtrudeHeight, when positive, also extrudes every sketch into a
	// sampled solid of that height.
	ExtrudeHeight float64

	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format handed to renderers.
type MeshData struct {
	mesh.Buffers
	Color   string     `json:"color"`
	Opacity float64    `json:"opacity"`
	Bounds  aabb.Aabb3 `json:"bounds"`
}

// EvalErrorData is a JSON-serializable evaluation error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates an App with default tolerances and the sdfx kernel.
func NewApp() *App {
	return &App{
		Config: validation.DefaultConfig(),
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// Evaluate takes sketch source and returns mesh data and errors. A sketch
// that fails validation is reported and skipped; the others still mesh.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	sketches, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		logging.Logger().Error("evaluate fatal error", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	for _, s := range sketches {
		md, err := a.meshSketch(s)
		if err != nil {
			logging.Logger().Warn("sketch rejected", "sketch", s.Name, "err", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
			continue
		}
		result.Meshes = append(result.Meshes, md)

		if a.ExtrudeHeight > 0 {
			md, err := a.meshSolid(s)
			if err != nil {
				logging.Logger().Warn("extrusion failed", "sketch", s.Name, "err", err)
				result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
				continue
			}
			result.Meshes = append(result.Meshes, md)
		}
	}

	logging.Logger().Info("evaluation finished", "sketches", len(sketches), "meshes", len(result.Meshes), "errors", len(result.Errors))
	return result
}

func (a *App) meshSketch(s sketch.Sketch) (MeshData, error) {
	shape, err := s.ToShape(a.Config)
	if err != nil {
		return MeshData{}, err
	}
	return meshShape(shape, s.Name, s.Color, s.BoundingVolume())
}

func (a *App) meshSolid(s sketch.Sketch) (MeshData, error) {
	name := s.Name + "-solid"
	solid, err := a.kernel.Extrude(s.Points, a.ExtrudeHeight)
	if err != nil {
		return MeshData{}, fmt.Errorf("sketch %q: %w", s.Name, err)
	}
	face, err := a.kernel.ToFace(solid, s.Color)
	if err != nil {
		return MeshData{}, fmt.Errorf("sketch %q: %w", s.Name, err)
	}
	shape, err := validation.Validate([]objects.Face{face}, a.Config)
	if err != nil {
		return MeshData{}, fmt.Errorf("sketch %q: %w", name, err)
	}
	return meshShape(shape, name, s.Color, solid.BoundingVolume())
}

func meshShape(shape validation.Validated[[]objects.Face], name string, color mesh.Color, bounds aabb.Aabb3) (MeshData, error) {
	tris, err := triangulate.Faces(shape)
	if err != nil {
		return MeshData{}, fmt.Errorf("%s: %w", name, err)
	}
	buffers := mesh.NewBuffers(triangulate.ToMesh(tris), name)
	return MeshData{
		Buffers: *buffers,
		Color:   hexColor(color),
		Opacity: float64(color[3]) / 255,
		Bounds:  bounds,
	}, nil
}

func hexColor(c mesh.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c[0], c[1], c[2])
}
