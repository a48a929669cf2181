package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gohalfedge/internal/loader"
	"github.com/philipparndt/gohalfedge/pkg/analysis"
	"github.com/philipparndt/gohalfedge/pkg/watcher"
)

var (
	infoFormat string
	infoWatch  bool
)

// infoReport is the machine readable form of the info command
type infoReport struct {
	Name          string                      `json:"name" yaml:"name"`
	File          string                      `json:"file" yaml:"file"`
	Format        string                      `json:"format" yaml:"format"`
	RejectedFaces int                         `json:"rejectedFaces" yaml:"rejectedFaces"`
	Measurements  *analysis.MeasurementResult `json:"measurements" yaml:"measurements"`
}

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display topology and geometry information about a mesh",
	Long: `Show element counts, boundary and closedness information, the Euler
characteristic, face degrees, bounding box, surface area and edge statistics.`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "text", "Output format: text, json or yaml")
	infoCmd.Flags().BoolVarP(&infoWatch, "watch", "w", false, "Re-run whenever the file or its OpenSCAD dependencies change")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	result := loadMesh(cmd, filename)
	if err := printInfo(os.Stdout, filename, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !infoWatch {
		return
	}
	if err := watchInfo(cmd.Context(), filename, result.Sources); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error watching files: %v\n", err)
		os.Exit(1)
	}
}

func watchInfo(ctx context.Context, filename string, sources []string) error {
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(sources...); err != nil {
		return err
	}
	fmt.Printf("\nWatching %d file(s) for changes, press Ctrl+C to stop\n", len(sources))

	onChange := func(files []string) {
		for _, f := range files {
			fmt.Printf("\nFile changed: %s\n", f)
		}
		start := time.Now()

		result, err := loader.Load(ctx, filename, loadOptions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading mesh: %v\n", err)
			return
		}
		// New use/include statements bring new files into the watch set.
		if err := fw.Add(result.Sources...); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching files: %v\n", err)
		}
		if err := printInfo(os.Stdout, filename, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("\nReloaded in %.2fs\n", time.Since(start).Seconds())
	}

	return fw.Run(ctx, onChange, func(err error) {
		fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
	})
}

func printInfo(w io.Writer, filename string, result *loader.Result) error {
	measurements, err := analysis.AnalyzeMesh(result.Mesh)
	if err != nil {
		return fmt.Errorf("failed to analyze mesh: %w", err)
	}

	report := infoReport{
		Name:          result.Name,
		File:          filename,
		Format:        result.Format,
		RejectedFaces: len(result.Rejected),
		Measurements:  measurements,
	}
	return writeReport(w, infoFormat, report)
}

func writeReport(w io.Writer, format string, report infoReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		writeText(w, report)
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
	}
}

func writeText(w io.Writer, report infoReport) {
	r := report.Measurements

	fmt.Fprintln(w, "Mesh Information")
	fmt.Fprintln(w, "================")
	if report.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", report.Name)
	}
	fmt.Fprintf(w, "File: %s (%s)\n\n", report.File, report.Format)

	fmt.Fprintln(w, "Elements:")
	fmt.Fprintf(w, "  Vertices: %d (%d isolated)\n", r.VertexCount, r.IsolatedVertices)
	fmt.Fprintf(w, "  Faces: %d\n", r.FaceCount)
	fmt.Fprintf(w, "  Edges: %d\n", r.EdgeCount)
	fmt.Fprintf(w, "  Halfedges: %d\n", r.HalfedgeCount)
	if report.RejectedFaces > 0 {
		fmt.Fprintf(w, "  Rejected faces: %d\n", report.RejectedFaces)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Topology:")
	fmt.Fprintf(w, "  Closed: %t\n", r.Closed)
	fmt.Fprintf(w, "  Boundary edges: %d\n", r.BoundaryEdges)
	fmt.Fprintf(w, "  Boundary loops: %d\n", r.BoundaryLoops)
	fmt.Fprintf(w, "  Euler characteristic: %d\n", r.EulerCharacteristic)
	fmt.Fprintln(w, "  Face degrees:")
	for _, degree := range slices.Sorted(maps.Keys(r.FaceDegrees)) {
		fmt.Fprintf(w, "    %d corners: %d\n", degree, r.FaceDegrees[degree])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(r.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(r.BoundingBox.Max))
	fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(r.BoundingBox.Center()))
	fmt.Fprintf(w, "  Diagonal: %.6f units\n", r.BoundingBox.Diagonal())
	fmt.Fprintf(w, "  Surface Area: %.6f square units\n\n", r.SurfaceArea)

	fmt.Fprintln(w, "Edge Lengths:")
	fmt.Fprintf(w, "  Minimum: %.6f units\n", r.MinEdgeLength)
	fmt.Fprintf(w, "  Maximum: %.6f units\n", r.MaxEdgeLength)
	fmt.Fprintf(w, "  Average: %.6f units\n", r.AvgEdgeLength)
}
