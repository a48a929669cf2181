package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gohalfedge/internal/loader"
	"github.com/philipparndt/gohalfedge/version"
)

var loadOptions loader.Options

var rootCmd = &cobra.Command{
	Use:   "halfedge",
	Short: "Inspect the topology of polygon meshes",
	Long: `halfedge builds a half-edge structure from STL, OBJ or OpenSCAD files and
reports on its connectivity: boundaries, vertex rings, normals and invariants.
Faces that would make the surface non-manifold are rejected and reported.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&loadOptions.WeldTolerance, "weld", 0, "Merge vertices closer than this distance")
	rootCmd.PersistentFlags().BoolVar(&loadOptions.Center, "center", false, "Center the mesh on the origin")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadMesh loads filename or exits. Rejected faces are summarized on stderr.
func loadMesh(cmd *cobra.Command, filename string) *loader.Result {
	result, err := loader.Load(cmd.Context(), filename, loadOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}
	if n := len(result.Rejected); n > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d face(s) rejected, run 'halfedge check' for details\n", n)
	}
	return result
}
