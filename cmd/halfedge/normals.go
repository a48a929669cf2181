package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gohalfedge/pkg/analysis"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

var (
	normalsCount int
	normalsFaces bool
)

var normalsCmd = &cobra.Command{
	Use:   "normals [file]",
	Short: "Compute face and vertex normals",
	Long: `Derive face normals from vertex positions and average them into vertex
normals. Vertex normals are listed by default, --faces lists face normals.`,
	Args: cobra.ExactArgs(1),
	Run:  runNormals,
}

func init() {
	rootCmd.AddCommand(normalsCmd)

	normalsCmd.Flags().IntVarP(&normalsCount, "count", "n", 10, "Number of normals to display")
	normalsCmd.Flags().BoolVar(&normalsFaces, "faces", false, "List face normals instead of vertex normals")
}

func runNormals(cmd *cobra.Command, args []string) {
	m := loadMesh(cmd, args[0]).Mesh

	if err := m.ComputeNormals(); err != nil {
		fmt.Fprintf(os.Stderr, "Error computing normals: %v\n", err)
		os.Exit(1)
	}

	if normalsFaces {
		fmt.Printf("Face Normals (showing first %d of %d)\n", min(normalsCount, m.NumFaces()), m.NumFaces())
		fmt.Println("====================")
		fmt.Printf("%-8s %-35s %-35s\n", "Face", "Centroid", "Normal")
		for f := range min(normalsCount, m.NumFaces()) {
			id := halfedge.FaceID(f)
			centroid, err := m.FaceCentroid(id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error walking face %d: %v\n", f, err)
				os.Exit(1)
			}
			fmt.Printf("%-8d %-35s %-35s\n", f, analysis.FormatVector(centroid), analysis.FormatVector(m.FaceNormal(id)))
		}
		return
	}

	fmt.Printf("Vertex Normals (showing first %d of %d)\n", min(normalsCount, m.NumVertices()), m.NumVertices())
	fmt.Println("====================")
	fmt.Printf("%-8s %-35s %-35s\n", "Vertex", "Position", "Normal")
	for v := range min(normalsCount, m.NumVertices()) {
		id := halfedge.VertexID(v)
		normal := analysis.FormatVector(m.VertexNormal(id))
		if m.Vertex(id).IsIsolated() {
			normal = "(isolated)"
		}
		fmt.Printf("%-8d %-35s %-35s\n", v, analysis.FormatVector(m.Position(id)), normal)
	}
}
