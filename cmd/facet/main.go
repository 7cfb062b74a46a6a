// Command facet evaluates a sketch program, validates and meshes every
// sketch it builds, and prints the result.
//
// Usage:
//
//	facet -input examples/plate.facet
//	facet -input - -json < plate.facet
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chazu/facet/pkg/kernel/sdfx"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/validation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	defaults := validation.DefaultConfig()

	fs := flag.NewFlagSet("facet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "-", "sketch source file, - for stdin")
	asJSON := fs.Bool("json", false, "print meshes as JSON")
	verbose := fs.Bool("verbose", false, "log debug output to stderr")
	distinctMin := fs.Float64("distinct-min", defaults.DistinctMinDistance, "minimum distance between distinct points")
	identicalMax := fs.Float64("identical-max", defaults.IdenticalMaxDistance, "maximum distance between identical points")
	extrude := fs.Float64("extrude", 0, "also extrude each sketch to this height")
	cells := fs.Int("cells", sdfx.DefaultCells, "marching cubes resolution for extrusions")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer logging.SetLogger(nil)
	}

	source, err := readSource(*input, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "facet: %v\n", err)
		return 1
	}

	app := NewApp()
	app.Config = validation.Config{DistinctMinDistance: *distinctMin, IdenticalMaxDistance: *identicalMax}
	app.ExtrudeHeight = *extrude
	app.kernel = &sdfx.Kernel{Cells: *cells}

	result := app.Evaluate(source)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "facet: %v\n", err)
			return 1
		}
	} else {
		for _, m := range result.Meshes {
			fmt.Fprintf(stdout, "%s: %d vertices, %d triangles, color %s\n",
				m.PartName, m.VertexCount(), m.TriangleCount(), m.Color)
		}
	}

	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(stderr, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(stderr, "error: %s\n", e.Message)
		}
	}
	if len(result.Errors) > 0 {
		return 1
	}
	return 0
}

func readSource(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}
