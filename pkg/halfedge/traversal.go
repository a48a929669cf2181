package halfedge

import (
	"fmt"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

// OutgoingHalfedges returns the halfedges leaving v in rotational order,
// starting at its representative halfedge. Each step moves to
// opposite.next until the walk returns to the start.
//
// At a non-manifold vertex where separate fans meet only at the vertex, the
// walk covers the fan of the representative halfedge alone. Validate reports
// such meshes.
func (m *Mesh) OutgoingHalfedges(v VertexID) ([]HalfedgeID, error) {
	if !m.hasVertex(v) {
		return nil, fmt.Errorf("vertex %d: %w", v, ErrInvalidHandle)
	}
	start := m.vertices[v].Halfedge
	if start == NoHalfedge {
		return nil, fmt.Errorf("vertex %d: %w", v, ErrIsolatedVertex)
	}

	var ring []HalfedgeID
	h := start
	for {
		if m.halfedges[m.halfedges[h].Opposite].Vertex != v {
			return nil, fmt.Errorf("vertex %d: halfedge %d does not leave it: %w", v, h, ErrBrokenRing)
		}
		ring = append(ring, h)
		if len(ring) > len(m.halfedges) {
			return nil, fmt.Errorf("vertex %d: %w", v, ErrBrokenRing)
		}

		h = m.halfedges[m.halfedges[h].Opposite].Next
		if h == NoHalfedge {
			return nil, fmt.Errorf("vertex %d: unlinked halfedge in ring: %w", v, ErrBrokenRing)
		}
		if h == start {
			break
		}
	}
	return ring, nil
}

// IncomingHalfedges returns the halfedges pointing at v, matching the order
// of OutgoingHalfedges.
func (m *Mesh) IncomingHalfedges(v VertexID) ([]HalfedgeID, error) {
	ring, err := m.OutgoingHalfedges(v)
	if err != nil {
		return nil, err
	}
	for i, h := range ring {
		ring[i] = m.halfedges[h].Opposite
	}
	return ring, nil
}

// VertexVertices returns the neighbours of v in rotational order.
func (m *Mesh) VertexVertices(v VertexID) ([]VertexID, error) {
	ring, err := m.OutgoingHalfedges(v)
	if err != nil {
		return nil, err
	}
	result := make([]VertexID, len(ring))
	for i, h := range ring {
		result[i] = m.halfedges[h].Vertex
	}
	return result, nil
}

// VertexFaces returns the faces around v. Gaps on the boundary are skipped.
func (m *Mesh) VertexFaces(v VertexID) ([]FaceID, error) {
	ring, err := m.OutgoingHalfedges(v)
	if err != nil {
		return nil, err
	}
	result := make([]FaceID, 0, len(ring))
	for _, h := range ring {
		if f := m.halfedges[h].Face; f != NoFace {
			result = append(result, f)
		}
	}
	return result, nil
}

// VertexEdges returns the edges incident to v.
func (m *Mesh) VertexEdges(v VertexID) ([]EdgeID, error) {
	ring, err := m.OutgoingHalfedges(v)
	if err != nil {
		return nil, err
	}
	result := make([]EdgeID, len(ring))
	for i, h := range ring {
		result[i] = m.halfedges[h].Edge
	}
	return result, nil
}

// IsBoundaryVertex reports whether v lies on a hole.
func (m *Mesh) IsBoundaryVertex(v VertexID) (bool, error) {
	if !m.hasVertex(v) {
		return false, fmt.Errorf("vertex %d: %w", v, ErrInvalidHandle)
	}
	h := m.vertices[v].Halfedge
	if h == NoHalfedge {
		return false, fmt.Errorf("vertex %d: %w", v, ErrIsolatedVertex)
	}
	return m.halfedges[h].IsBoundary(), nil
}

// VertexDegree returns the number of edges incident to v.
func (m *Mesh) VertexDegree(v VertexID) (int, error) {
	ring, err := m.OutgoingHalfedges(v)
	if err != nil {
		return 0, err
	}
	return len(ring), nil
}

// FaceHalfedges returns the halfedge loop of f starting at its
// representative halfedge.
func (m *Mesh) FaceHalfedges(f FaceID) ([]HalfedgeID, error) {
	if !m.hasFace(f) {
		return nil, fmt.Errorf("face %d: %w", f, ErrInvalidHandle)
	}
	start := m.faces[f].Halfedge

	var loop []HalfedgeID
	h := start
	for {
		if m.halfedges[h].Face != f {
			return nil, fmt.Errorf("face %d: halfedge %d belongs to face %d: %w", f, h, m.halfedges[h].Face, ErrBrokenRing)
		}
		loop = append(loop, h)
		if len(loop) > len(m.halfedges) {
			return nil, fmt.Errorf("face %d: %w", f, ErrBrokenRing)
		}

		h = m.halfedges[h].Next
		if h == NoHalfedge {
			return nil, fmt.Errorf("face %d: unlinked halfedge in loop: %w", f, ErrBrokenRing)
		}
		if h == start {
			break
		}
	}
	return loop, nil
}

// FaceVertices returns the corners of f in loop order.
func (m *Mesh) FaceVertices(f FaceID) ([]VertexID, error) {
	loop, err := m.FaceHalfedges(f)
	if err != nil {
		return nil, err
	}
	result := make([]VertexID, len(loop))
	for i, h := range loop {
		result[i] = m.halfedges[h].Vertex
	}
	return result, nil
}

// FaceFaces returns the face across each edge of f, NoFace where the
// neighbour is a hole.
func (m *Mesh) FaceFaces(f FaceID) ([]FaceID, error) {
	loop, err := m.FaceHalfedges(f)
	if err != nil {
		return nil, err
	}
	result := make([]FaceID, len(loop))
	for i, h := range loop {
		result[i] = m.halfedges[m.halfedges[h].Opposite].Face
	}
	return result, nil
}

// FaceEdges returns the edges of f in loop order.
func (m *Mesh) FaceEdges(f FaceID) ([]EdgeID, error) {
	loop, err := m.FaceHalfedges(f)
	if err != nil {
		return nil, err
	}
	result := make([]EdgeID, len(loop))
	for i, h := range loop {
		result[i] = m.halfedges[h].Edge
	}
	return result, nil
}

// IsBoundaryFace reports whether any edge of f borders a hole.
func (m *Mesh) IsBoundaryFace(f FaceID) (bool, error) {
	loop, err := m.FaceHalfedges(f)
	if err != nil {
		return false, err
	}
	for _, h := range loop {
		if m.halfedges[m.halfedges[h].Opposite].IsBoundary() {
			return true, nil
		}
	}
	return false, nil
}

// FaceCentroid returns the unweighted mean of the corner positions of f.
func (m *Mesh) FaceCentroid(f FaceID) (geometry.Vector3, error) {
	corners, err := m.FaceVertices(f)
	if err != nil {
		return geometry.Vector3{}, err
	}
	points := make([]geometry.Vector3, len(corners))
	for i, v := range corners {
		points[i] = m.vertices[v].Position
	}
	return geometry.Mean(points...), nil
}

// FaceDegree returns the number of corners of f.
func (m *Mesh) FaceDegree(f FaceID) (int, error) {
	loop, err := m.FaceHalfedges(f)
	if err != nil {
		return 0, err
	}
	return len(loop), nil
}

// EdgeHalfedges returns the representative halfedge of e and its opposite.
func (m *Mesh) EdgeHalfedges(e EdgeID) [2]HalfedgeID {
	m.mustEdge(e)
	h := m.edges[e].Halfedge
	return [2]HalfedgeID{h, m.halfedges[h].Opposite}
}

// EdgeVertices returns the heads of both halfedges of e.
func (m *Mesh) EdgeVertices(e EdgeID) [2]VertexID {
	hs := m.EdgeHalfedges(e)
	return [2]VertexID{m.halfedges[hs[0]].Vertex, m.halfedges[hs[1]].Vertex}
}

// EdgeFaces returns the faces of both halfedges of e. Either may be NoFace.
func (m *Mesh) EdgeFaces(e EdgeID) [2]FaceID {
	hs := m.EdgeHalfedges(e)
	return [2]FaceID{m.halfedges[hs[0]].Face, m.halfedges[hs[1]].Face}
}

// IsBoundaryEdge reports whether either side of e is a hole.
func (m *Mesh) IsBoundaryEdge(e EdgeID) bool {
	hs := m.EdgeHalfedges(e)
	return m.halfedges[hs[0]].IsBoundary() || m.halfedges[hs[1]].IsBoundary()
}

// EdgeMidpoint returns the midpoint of the two endpoint positions of e.
func (m *Mesh) EdgeMidpoint(e EdgeID) geometry.Vector3 {
	vs := m.EdgeVertices(e)
	return m.vertices[vs[0]].Position.Add(m.vertices[vs[1]].Position).Mul(0.5)
}

// EdgeLength returns the distance between the endpoints of e.
func (m *Mesh) EdgeLength(e EdgeID) float64 {
	vs := m.EdgeVertices(e)
	return m.vertices[vs[0]].Position.Distance(m.vertices[vs[1]].Position)
}

// FromVertex returns the vertex h leaves.
func (m *Mesh) FromVertex(h HalfedgeID) VertexID {
	m.mustHalfedge(h)
	return m.halfedges[m.halfedges[h].Opposite].Vertex
}

// IsBoundaryHalfedge reports whether h has no face.
func (m *Mesh) IsBoundaryHalfedge(h HalfedgeID) bool {
	m.mustHalfedge(h)
	return m.halfedges[h].IsBoundary()
}
