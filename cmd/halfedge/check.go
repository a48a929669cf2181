package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/philipparndt/gohalfedge/internal/loader"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

var checkVerbose bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check that a mesh is a valid manifold surface",
	Long: `Load a mesh, report every face that could not be inserted and verify the
connectivity of the resulting half-edge structure. Exits with status 1 when
faces were rejected or the structure is inconsistent.`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "List every rejected face")
}

func runCheck(cmd *cobra.Command, args []string) {
	ok := color.New(color.FgGreen, color.Bold).SprintFunc()
	warn := color.New(color.FgYellow, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	result, err := loader.Load(cmd.Context(), args[0], loadOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}
	m := result.Mesh
	failed := false

	fmt.Printf("Mesh: %s (%d vertices, %d faces, %d edges)\n\n", result.Name, m.NumVertices(), m.NumFaces(), m.NumEdges())

	if len(result.Rejected) == 0 {
		fmt.Printf("%s all faces inserted\n", ok("OK  "))
	} else {
		failed = true
		counts := make(map[string]int)
		for _, r := range result.Rejected {
			counts[rejectionKind(r.Err)]++
		}
		fmt.Printf("%s %d face(s) rejected\n", fail("FAIL"), len(result.Rejected))
		for _, kind := range slices.Sorted(maps.Keys(counts)) {
			fmt.Printf("       %d %s\n", counts[kind], kind)
		}
		if checkVerbose {
			for _, r := range result.Rejected {
				fmt.Printf("       face %d %v: %v\n", r.Face, r.Indices, r.Err)
			}
		}
	}

	if err = m.Validate(); err != nil {
		failed = true
		fmt.Printf("%s %v\n", fail("FAIL"), err)
	} else {
		fmt.Printf("%s half-edge connectivity is consistent\n", ok("OK  "))
	}

	isolated := 0
	m.ForEachVertex(func(_ halfedge.VertexID, v halfedge.Vertex) {
		if v.IsIsolated() {
			isolated++
		}
	})
	if isolated > 0 {
		fmt.Printf("%s %d isolated vertex(es)\n", warn("WARN"), isolated)
	}

	loops, err := m.BoundaryLoops()
	switch {
	case err != nil:
		failed = true
		fmt.Printf("%s %v\n", fail("FAIL"), err)
	case len(loops) > 0:
		fmt.Printf("%s open surface with %d boundary loop(s)\n", warn("WARN"), len(loops))
	default:
		fmt.Printf("%s closed surface\n", ok("OK  "))
	}

	if failed {
		os.Exit(1)
	}
}

// rejectionKind names the reason a face was refused
func rejectionKind(err error) string {
	switch {
	case errors.Is(err, halfedge.ErrNonmanifoldEdge):
		return "non-manifold edge"
	case errors.Is(err, halfedge.ErrDegenerateFace):
		return "degenerate face"
	case errors.Is(err, halfedge.ErrAttributeLength):
		return "attribute length mismatch"
	case errors.Is(err, halfedge.ErrInvalidIndex):
		return "invalid vertex index"
	default:
		return "other"
	}
}
