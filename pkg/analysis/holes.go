package analysis

import (
	"fmt"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

// HoleInfo describes one boundary loop
type HoleInfo struct {
	Vertices  []halfedge.VertexID `json:"vertices" yaml:"vertices"`
	Perimeter float64             `json:"perimeter" yaml:"perimeter"`
	// Circle is the best circle through the loop, nil when the loop is
	// collinear.
	Circle *geometry.CircleFit `json:"circle,omitempty" yaml:"circle,omitempty"`
}

// AnalyzeHoles traces every boundary loop of m and fits a circle to it.
func AnalyzeHoles(m *halfedge.Mesh) ([]HoleInfo, error) {
	loops, err := m.BoundaryLoops()
	if err != nil {
		return nil, fmt.Errorf("failed to trace boundary: %w", err)
	}

	holes := make([]HoleInfo, 0, len(loops))
	for _, loop := range loops {
		hole := HoleInfo{Vertices: make([]halfedge.VertexID, len(loop))}
		points := make([]geometry.Vector3, len(loop))
		for k, h := range loop {
			v := m.FromVertex(h)
			hole.Vertices[k] = v
			points[k] = m.Position(v)
			hole.Perimeter += m.EdgeLength(m.Halfedge(h).Edge)
		}
		if fit, err := geometry.FitCircle(points); err == nil {
			hole.Circle = fit
		}
		holes = append(holes, hole)
	}
	return holes, nil
}
