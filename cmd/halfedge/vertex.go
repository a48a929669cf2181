package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gohalfedge/pkg/analysis"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

var vertexID int

var vertexCmd = &cobra.Command{
	Use:   "vertex [file]",
	Short: "Show the one-ring of a vertex",
	Long: `Walk around a vertex and list its neighbouring vertices, faces and edges
in ring order, together with its degree and whether it lies on a boundary.`,
	Args: cobra.ExactArgs(1),
	Run:  runVertex,
}

func init() {
	rootCmd.AddCommand(vertexCmd)

	vertexCmd.Flags().IntVar(&vertexID, "id", 0, "Vertex to inspect")
}

func runVertex(cmd *cobra.Command, args []string) {
	m := loadMesh(cmd, args[0]).Mesh

	if vertexID < 0 || vertexID >= m.NumVertices() {
		fmt.Fprintf(os.Stderr, "Error: vertex %d out of range (mesh has %d vertices)\n", vertexID, m.NumVertices())
		os.Exit(1)
	}
	v := halfedge.VertexID(vertexID)

	fmt.Printf("Vertex #%d\n", v)
	fmt.Println("====================")
	fmt.Printf("Position: %s\n", analysis.FormatVector(m.Position(v)))

	if m.Vertex(v).IsIsolated() {
		fmt.Println("The vertex is isolated, no face references it.")
		return
	}

	if err := printRing(m, v); err != nil {
		fmt.Fprintf(os.Stderr, "Error walking vertex ring: %v\n", err)
		os.Exit(1)
	}
}

func printRing(m *halfedge.Mesh, v halfedge.VertexID) error {
	degree, err := m.VertexDegree(v)
	if err != nil {
		return err
	}
	boundary, err := m.IsBoundaryVertex(v)
	if err != nil {
		return err
	}
	neighbors, err := m.VertexVertices(v)
	if err != nil {
		return err
	}
	faces, err := m.VertexFaces(v)
	if err != nil {
		return err
	}
	edges, err := m.VertexEdges(v)
	if err != nil {
		return err
	}
	if err := m.ComputeNormals(); err != nil {
		return err
	}

	fmt.Printf("Normal: %s\n", analysis.FormatVector(m.VertexNormal(v)))
	fmt.Printf("Degree: %d\n", degree)
	fmt.Printf("Boundary: %t\n\n", boundary)

	fmt.Printf("%-10s %-10s %-35s %-15s\n", "Neighbor", "Edge", "Position", "Length")
	for i, n := range neighbors {
		fmt.Printf("%-10d %-10d %-35s %-15.6f\n", n, edges[i], analysis.FormatVector(m.Position(n)), m.EdgeLength(edges[i]))
	}
	fmt.Printf("\nFaces: %v\n", faces)
	return nil
}
