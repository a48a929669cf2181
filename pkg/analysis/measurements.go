package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

// EdgeInfo contains information about an edge in the mesh
type EdgeInfo struct {
	Edge     halfedge.EdgeID   `json:"edge" yaml:"edge"`
	From     halfedge.VertexID `json:"from" yaml:"from"`
	To       halfedge.VertexID `json:"to" yaml:"to"`
	Start    geometry.Vector3  `json:"start" yaml:"start"`
	End      geometry.Vector3  `json:"end" yaml:"end"`
	Length   float64           `json:"length" yaml:"length"`
	Boundary bool              `json:"boundary" yaml:"boundary"`
}

// MeasurementResult contains the topology and geometry summary of a mesh
type MeasurementResult struct {
	VertexCount   int `json:"vertices" yaml:"vertices"`
	FaceCount     int `json:"faces" yaml:"faces"`
	EdgeCount     int `json:"edges" yaml:"edges"`
	HalfedgeCount int `json:"halfedges" yaml:"halfedges"`

	IsolatedVertices int `json:"isolatedVertices" yaml:"isolatedVertices"`
	BoundaryEdges    int `json:"boundaryEdges" yaml:"boundaryEdges"`
	BoundaryLoops    int `json:"boundaryLoops" yaml:"boundaryLoops"`
	// EulerCharacteristic is V - E + F counting only vertices used by a face.
	EulerCharacteristic int  `json:"eulerCharacteristic" yaml:"eulerCharacteristic"`
	Closed              bool `json:"closed" yaml:"closed"`
	// FaceDegrees maps a corner count to the number of faces having it.
	FaceDegrees map[int]int `json:"faceDegrees" yaml:"faceDegrees"`

	BoundingBox   geometry.BoundingBox `json:"boundingBox" yaml:"boundingBox"`
	Dimensions    geometry.Vector3     `json:"dimensions" yaml:"dimensions"`
	SurfaceArea   float64              `json:"surfaceArea" yaml:"surfaceArea"`
	MinEdgeLength float64              `json:"minEdgeLength" yaml:"minEdgeLength"`
	MaxEdgeLength float64              `json:"maxEdgeLength" yaml:"maxEdgeLength"`
	AvgEdgeLength float64              `json:"avgEdgeLength" yaml:"avgEdgeLength"`

	AllEdges []EdgeInfo `json:"-" yaml:"-"`
}

// AnalyzeMesh summarizes a finalized mesh
func AnalyzeMesh(m *halfedge.Mesh) (*MeasurementResult, error) {
	result := &MeasurementResult{
		VertexCount:   m.NumVertices(),
		FaceCount:     m.NumFaces(),
		EdgeCount:     m.NumEdges(),
		HalfedgeCount: m.NumHalfedges(),
		FaceDegrees:   make(map[int]int),
		BoundingBox:   geometry.NewBoundingBox(),
		AllEdges:      make([]EdgeInfo, 0, m.NumEdges()),
	}

	used := 0
	m.ForEachVertex(func(_ halfedge.VertexID, v halfedge.Vertex) {
		if v.IsIsolated() {
			result.IsolatedVertices++
			return
		}
		used++
		result.BoundingBox.Extend(v.Position)
	})
	if result.BoundingBox.IsEmpty() {
		result.BoundingBox = geometry.BoundingBox{}
	} else {
		result.Dimensions = result.BoundingBox.Size()
	}

	var err error
	m.ForEachFace(func(f halfedge.FaceID, _ halfedge.Face) {
		if err != nil {
			return
		}
		var degree int
		if degree, err = m.FaceDegree(f); err != nil {
			return
		}
		result.FaceDegrees[degree]++

		var area float64
		if area, err = m.FaceArea(f); err != nil {
			return
		}
		result.SurfaceArea += area
	})
	if err != nil {
		return nil, fmt.Errorf("failed to measure faces: %w", err)
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	m.ForEachEdge(func(e halfedge.EdgeID, _ halfedge.Edge) {
		ends := m.EdgeVertices(e)
		info := EdgeInfo{
			Edge:     e,
			From:     ends[1],
			To:       ends[0],
			Start:    m.Position(ends[1]),
			End:      m.Position(ends[0]),
			Length:   m.EdgeLength(e),
			Boundary: m.IsBoundaryEdge(e),
		}
		result.AllEdges = append(result.AllEdges, info)

		if info.Boundary {
			result.BoundaryEdges++
		}
		totalLength += info.Length
		minLength = math.Min(minLength, info.Length)
		maxLength = math.Max(maxLength, info.Length)
	})

	if len(result.AllEdges) > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(len(result.AllEdges))
	}

	loops, err := m.BoundaryLoops()
	if err != nil {
		return nil, fmt.Errorf("failed to trace boundary loops: %w", err)
	}
	result.BoundaryLoops = len(loops)

	result.EulerCharacteristic = used - result.EdgeCount + result.FaceCount
	result.Closed = result.FaceCount > 0 && result.BoundaryEdges == 0

	return result, nil
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindBoundaryEdges returns the edges that border a hole
func FindBoundaryEdges(result *MeasurementResult) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Boundary {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FindNearestVertex finds the non-isolated vertex nearest to point. It
// returns NoVertex when the mesh has no such vertex.
func FindNearestVertex(m *halfedge.Mesh, point geometry.Vector3) (halfedge.VertexID, float64) {
	nearest := halfedge.NoVertex
	minDistance := math.MaxFloat64

	m.ForEachVertex(func(id halfedge.VertexID, v halfedge.Vertex) {
		if v.IsIsolated() {
			return
		}
		if d := point.Distance(v.Position); d < minDistance {
			minDistance = d
			nearest = id
		}
	})

	return nearest, minDistance
}

// DistanceBetweenPoints calculates the distance between two arbitrary points
func DistanceBetweenPoints(p1, p2 geometry.Vector3) float64 {
	return p1.Distance(p2)
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
