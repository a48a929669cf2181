package halfedge

// InitIDs numbers every element. Vertex ids equal their index and cover the
// range up to the largest index seen, including placeholders. Faces are
// numbered in insertion order, edges and halfedges in creation order.
// After InitIDs the builder rejects new faces.
func (b *Builder) InitIDs() error {
	if b.idsAssigned {
		return ErrAlreadyInitialized
	}
	m := b.mesh

	for i := range m.vertices {
		m.vertices[i].ID = i
	}
	for i := range m.faces {
		m.faces[i].ID = i
	}
	for i := range m.edges {
		m.edges[i].ID = i
	}
	for i := range m.halfedges {
		m.halfedges[i].ID = i
	}

	b.idsAssigned = true
	return nil
}

// InitBoundaries makes boundary vertices and edges reference a boundary
// halfedge and links boundary halfedges into closed loops around holes.
// It must run after InitIDs.
func (b *Builder) InitBoundaries() error {
	if !b.idsAssigned {
		return ErrNotInitialized
	}
	if b.boundariesLinked {
		return ErrAlreadyInitialized
	}
	m := b.mesh

	for i, h := range m.halfedges {
		if !h.IsBoundary() {
			continue
		}
		from := m.halfedges[h.Opposite].Vertex
		m.vertices[from].Halfedge = HalfedgeID(i)
		m.edges[h.Edge].Halfedge = HalfedgeID(i)
	}

	for i, h := range m.halfedges {
		if !h.IsBoundary() {
			continue
		}
		next := m.vertices[h.Vertex].Halfedge
		mustHold("boundary halfedge points at an isolated vertex", next != NoHalfedge)
		m.halfedges[i].Next = next
		m.halfedges[next].Prev = HalfedgeID(i)
	}

	b.boundariesLinked = true
	return nil
}

// Mesh returns the finalized mesh. Both InitIDs and InitBoundaries must
// have run.
func (b *Builder) Mesh() (*Mesh, error) {
	if !b.idsAssigned || !b.boundariesLinked {
		return nil, ErrNotInitialized
	}
	return b.mesh, nil
}

// Finalize runs whichever finalization passes have not run yet and returns
// the finalized mesh.
func (b *Builder) Finalize() (*Mesh, error) {
	if !b.idsAssigned {
		if err := b.InitIDs(); err != nil {
			return nil, err
		}
	}
	if !b.boundariesLinked {
		if err := b.InitBoundaries(); err != nil {
			return nil, err
		}
	}
	return b.Mesh()
}
