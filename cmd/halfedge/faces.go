package main

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gohalfedge/pkg/analysis"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

var (
	faceCount    int
	faceLargest  bool
	faceSmallest bool
	faceID       int
)

type faceInfo struct {
	ID        halfedge.FaceID
	Area      float64
	Perimeter float64
	Vertices  []halfedge.VertexID
	Neighbors []halfedge.FaceID
	Boundary  bool
}

var facesCmd = &cobra.Command{
	Use:   "faces [file]",
	Short: "Analyze the faces of a mesh",
	Long:  "Display faces with their corners, area, perimeter and the faces across each of their edges.",
	Args:  cobra.ExactArgs(1),
	Run:   runFaces,
}

func init() {
	rootCmd.AddCommand(facesCmd)

	facesCmd.Flags().IntVarP(&faceCount, "count", "n", 10, "Number of faces to display")
	facesCmd.Flags().BoolVarP(&faceLargest, "largest", "l", false, "Show largest faces by area")
	facesCmd.Flags().BoolVarP(&faceSmallest, "smallest", "s", false, "Show smallest faces by area")
	facesCmd.Flags().IntVar(&faceID, "id", -1, "Show a single face")

	facesCmd.MarkFlagsMutuallyExclusive("largest", "smallest", "id")
}

func describeFace(m *halfedge.Mesh, f halfedge.FaceID) (faceInfo, error) {
	info := faceInfo{ID: f}

	var err error
	if info.Vertices, err = m.FaceVertices(f); err != nil {
		return info, err
	}
	if info.Neighbors, err = m.FaceFaces(f); err != nil {
		return info, err
	}
	if info.Boundary, err = m.IsBoundaryFace(f); err != nil {
		return info, err
	}
	if info.Area, err = m.FaceArea(f); err != nil {
		return info, err
	}

	edges, err := m.FaceEdges(f)
	if err != nil {
		return info, err
	}
	for _, e := range edges {
		info.Perimeter += m.EdgeLength(e)
	}
	return info, nil
}

func runFaces(cmd *cobra.Command, args []string) {
	m := loadMesh(cmd, args[0]).Mesh

	if faceID >= 0 {
		if faceID >= m.NumFaces() {
			fmt.Fprintf(os.Stderr, "Error: face %d out of range (mesh has %d faces)\n", faceID, m.NumFaces())
			os.Exit(1)
		}
		info, err := describeFace(m, halfedge.FaceID(faceID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error walking face %d: %v\n", faceID, err)
			os.Exit(1)
		}
		printFace(m, info)
		return
	}

	faces := make([]faceInfo, 0, m.NumFaces())
	totalArea := 0.0
	minArea := math.MaxFloat64
	maxArea := 0.0

	for f := range m.NumFaces() {
		info, err := describeFace(m, halfedge.FaceID(f))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error walking face %d: %v\n", f, err)
			os.Exit(1)
		}
		faces = append(faces, info)

		totalArea += info.Area
		minArea = math.Min(minArea, info.Area)
		maxArea = math.Max(maxArea, info.Area)
	}

	var title string
	switch {
	case faceLargest:
		sort.SliceStable(faces, func(i, j int) bool { return faces[i].Area > faces[j].Area })
		title = fmt.Sprintf("Top %d Largest Faces", min(faceCount, len(faces)))
	case faceSmallest:
		sort.SliceStable(faces, func(i, j int) bool { return faces[i].Area < faces[j].Area })
		title = fmt.Sprintf("Top %d Smallest Faces", min(faceCount, len(faces)))
	default:
		title = fmt.Sprintf("First %d Faces", min(faceCount, len(faces)))
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total faces: %d\n", len(faces))
	if len(faces) == 0 {
		return
	}
	fmt.Printf("Total surface area: %.6f square units\n", totalArea)
	fmt.Printf("Min face area: %.6f square units\n", minArea)
	fmt.Printf("Max face area: %.6f square units\n", maxArea)
	fmt.Printf("Avg face area: %.6f square units\n\n", totalArea/float64(len(faces)))

	for _, info := range faces[:min(faceCount, len(faces))] {
		printFace(m, info)
	}
}

func printFace(m *halfedge.Mesh, info faceInfo) {
	fmt.Printf("Face #%d:", info.ID)
	if info.Boundary {
		fmt.Print(" (on boundary)")
	}
	fmt.Println()
	fmt.Printf("  Area: %.6f square units\n", info.Area)
	fmt.Printf("  Perimeter: %.6f units\n", info.Perimeter)
	fmt.Printf("  Vertices: %v\n", info.Vertices)
	for _, v := range info.Vertices {
		fmt.Printf("    %d: %s\n", v, analysis.FormatVector(m.Position(v)))
	}
	fmt.Printf("  Neighbors: %v\n\n", info.Neighbors)
}
