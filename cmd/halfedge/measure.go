package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gohalfedge/pkg/analysis"
	"github.com/philipparndt/gohalfedge/pkg/geometry"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

var (
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points and between the
mesh vertices nearest to them.`,
	Args: cobra.ExactArgs(1),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) {
	m := loadMesh(cmd, args[0]).Mesh

	p1 := geometry.NewVector3(point1X, point1Y, point1Z)
	p2 := geometry.NewVector3(point2X, point2Y, point2Z)

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")

	nearest1, dist1 := analysis.FindNearestVertex(m, p1)
	nearest2, dist2 := analysis.FindNearestVertex(m, p2)

	fmt.Printf("\nPoint 1: %s\n", analysis.FormatVector(p1))
	printNearest(m, nearest1, dist1)

	fmt.Printf("\nPoint 2: %s\n", analysis.FormatVector(p2))
	printNearest(m, nearest2, dist2)

	distance := analysis.DistanceBetweenPoints(p1, p2)
	fmt.Printf("\nDirect distance: %.6f units\n", distance)

	if nearest1 == halfedge.NoVertex || nearest2 == halfedge.NoVertex {
		return
	}
	vertexDistance := analysis.DistanceBetweenPoints(m.Position(nearest1), m.Position(nearest2))
	fmt.Printf("Distance between nearest vertices: %.6f units\n", vertexDistance)

	if e, ok := m.FindEdge(nearest1, nearest2); ok {
		fmt.Printf("The nearest vertices share edge %d\n", e)
	}
}

func printNearest(m *halfedge.Mesh, v halfedge.VertexID, dist float64) {
	if v == halfedge.NoVertex {
		fmt.Println("  The mesh has no connected vertices")
		return
	}
	fmt.Printf("  Nearest vertex: #%d %s (distance: %.6f)\n", v, analysis.FormatVector(m.Position(v)), dist)
}
