package halfedge

import "fmt"

// Validate checks the structural invariants of the mesh and returns the
// first violation found, wrapped in ErrInvariant.
func (m *Mesh) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
	}

	for i, v := range m.vertices {
		if v.ID != i {
			return fail("vertex %d has id %d", i, v.ID)
		}
		if v.Halfedge != NoHalfedge && m.FromVertex(v.Halfedge) != VertexID(i) {
			return fail("vertex %d representative halfedge %d does not leave it", i, v.Halfedge)
		}
	}

	for i, f := range m.faces {
		if f.ID != i {
			return fail("face %d has id %d", i, f.ID)
		}
		if _, err := m.FaceHalfedges(FaceID(i)); err != nil {
			return fail("%v", err)
		}
	}

	for i, e := range m.edges {
		if e.ID != i {
			return fail("edge %d has id %d", i, e.ID)
		}
		h := m.halfedges[e.Halfedge]
		if h.Edge != EdgeID(i) || m.halfedges[h.Opposite].Edge != EdgeID(i) {
			return fail("edge %d halfedges reference another edge", i)
		}
	}

	for i, h := range m.halfedges {
		id := HalfedgeID(i)
		if h.ID != i {
			return fail("halfedge %d has id %d", i, h.ID)
		}
		if h.Opposite == id || m.halfedges[h.Opposite].Opposite != id {
			return fail("halfedge %d opposite is not an involution", i)
		}

		from := m.halfedges[h.Opposite].Vertex
		if found, ok := m.halfedgeIndex[edgeKey{From: int(from), To: int(h.Vertex)}]; !ok || found != id {
			return fail("halfedge %d is not the unique halfedge (%d, %d)", i, from, h.Vertex)
		}

		if h.Next == NoHalfedge || h.Prev == NoHalfedge {
			return fail("halfedge %d is not linked", i)
		}
		if m.halfedges[h.Next].Prev != id || m.halfedges[h.Prev].Next != id {
			return fail("halfedge %d next/prev are not inverse", i)
		}
		if m.halfedges[h.Next].Face != h.Face {
			return fail("halfedge %d and its next belong to different loops", i)
		}

		if h.IsBoundary() {
			if !m.halfedges[m.vertices[from].Halfedge].IsBoundary() {
				return fail("boundary vertex %d references interior halfedge", from)
			}
			if !m.halfedges[m.edges[h.Edge].Halfedge].IsBoundary() {
				return fail("boundary edge %d references interior halfedge", h.Edge)
			}
		}
	}

	return nil
}

// BoundaryLoops returns the closed loops of boundary halfedges, one per
// hole, each in next order. A closed mesh has none.
func (m *Mesh) BoundaryLoops() ([][]HalfedgeID, error) {
	visited := make([]bool, len(m.halfedges))
	var loops [][]HalfedgeID

	for i, h := range m.halfedges {
		if !h.IsBoundary() || visited[i] {
			continue
		}

		start := HalfedgeID(i)
		var loop []HalfedgeID
		cur := start
		for {
			if visited[cur] || !m.halfedges[cur].IsBoundary() {
				return nil, fmt.Errorf("boundary loop at halfedge %d: %w", start, ErrBrokenRing)
			}
			visited[cur] = true
			loop = append(loop, cur)

			cur = m.halfedges[cur].Next
			if cur == NoHalfedge {
				return nil, fmt.Errorf("boundary loop at halfedge %d: unlinked halfedge: %w", start, ErrBrokenRing)
			}
			if cur == start {
				break
			}
		}
		loops = append(loops, loop)
	}
	return loops, nil
}
