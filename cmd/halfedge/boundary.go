package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gohalfedge/pkg/analysis"
)

var boundaryCmd = &cobra.Command{
	Use:   "boundary [file]",
	Short: "List the holes of a mesh",
	Long: `Trace every boundary loop and print its vertices in walking order together
with the loop length and the circle that best fits the loop.`,
	Args: cobra.ExactArgs(1),
	Run:  runBoundary,
}

func init() {
	rootCmd.AddCommand(boundaryCmd)
}

func runBoundary(cmd *cobra.Command, args []string) {
	m := loadMesh(cmd, args[0]).Mesh

	holes, err := analysis.AnalyzeHoles(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Boundary Loops")
	fmt.Println("==============")
	if len(holes) == 0 {
		fmt.Println("The mesh is closed.")
		return
	}

	for i, hole := range holes {
		fmt.Printf("\nLoop %d: %d edges, perimeter %s\n", i+1, len(hole.Vertices), analysis.FormatMeasurement(hole.Perimeter, ""))
		fmt.Printf("  Vertices: %v\n", hole.Vertices)
		if c := hole.Circle; c != nil {
			fmt.Printf("  Fitted circle: radius %s, center %s, deviation %s\n",
				analysis.FormatMeasurement(c.Radius, ""), analysis.FormatVector(c.Center), analysis.FormatMeasurement(c.StdDev, ""))
		}
	}
}
