package halfedge

import (
	"fmt"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

// Builder assembles a mesh face by face. A Builder is not safe for
// concurrent use. Once ids are assigned no further faces can be added.
type Builder struct {
	mesh *Mesh

	idsAssigned      bool
	boundariesLinked bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{mesh: newMesh()}
}

// CornerOption attaches per-corner payloads to a face.
type CornerOption func(*corners)

type corners struct {
	normals      []geometry.Vector3
	texCoords    []TexCoord
	hasNormals   bool
	hasTexCoords bool
}

// WithNormals attaches one normal per face corner.
func WithNormals(normals []geometry.Vector3) CornerOption {
	return func(c *corners) {
		c.normals = normals
		c.hasNormals = true
	}
}

// WithTexCoords attaches one texture coordinate per face corner.
func WithTexCoords(texCoords []TexCoord) CornerOption {
	return func(c *corners) {
		c.texCoords = texCoords
		c.hasTexCoords = true
	}
}

// NumVertices returns the size of the vertex arena so far.
func (b *Builder) NumVertices() int { return b.mesh.NumVertices() }

// NumFaces returns the number of faces added so far.
func (b *Builder) NumFaces() int { return b.mesh.NumFaces() }

// NumEdges returns the number of edges created so far.
func (b *Builder) NumEdges() int { return b.mesh.NumEdges() }

// NumHalfedges returns the number of halfedges created so far.
func (b *Builder) NumHalfedges() int { return b.mesh.NumHalfedges() }

// SetPosition sets the position of the vertex with the given index, creating
// the vertex slot if no face has referenced it yet.
func (b *Builder) SetPosition(index int, p geometry.Vector3) error {
	if index < 0 {
		return &FaceError{Kind: ErrInvalidIndex, Index: index}
	}
	b.mesh.ensureVertex(index)
	b.mesh.vertices[index].Position = p
	return nil
}

// AddFace inserts a face whose corners are the given vertex indices in
// order. On error the mesh is left unchanged and the returned error wraps
// ErrFinalized, ErrDegenerateFace, ErrInvalidIndex, ErrAttributeLength or
// ErrNonmanifoldEdge.
func (b *Builder) AddFace(indices []int, opts ...CornerOption) (FaceID, error) {
	var c corners
	for _, opt := range opts {
		opt(&c)
	}

	if err := b.checkFace(indices, &c); err != nil {
		return NoFace, err
	}

	return b.mesh.insertFace(indices, &c), nil
}

func (b *Builder) checkFace(indices []int, c *corners) error {
	if b.idsAssigned {
		return ErrFinalized
	}

	n := len(indices)
	if n < 3 {
		return &FaceError{Kind: ErrDegenerateFace, Got: n, Want: 3}
	}

	seen := make(map[int]struct{}, n)
	for _, i := range indices {
		if i < 0 {
			return &FaceError{Kind: ErrInvalidIndex, Index: i}
		}
		if _, dup := seen[i]; dup {
			return &FaceError{Kind: ErrDegenerateFace, Index: i}
		}
		seen[i] = struct{}{}
	}

	if c.hasNormals && len(c.normals) != n {
		return &FaceError{Kind: ErrAttributeLength, Attribute: "normals", Got: len(c.normals), Want: n}
	}
	if c.hasTexCoords && len(c.texCoords) != n {
		return &FaceError{Kind: ErrAttributeLength, Attribute: "texcoords", Got: len(c.texCoords), Want: n}
	}

	for k := range n {
		i, j := indices[k], indices[(k+1)%n]
		if h, ok := b.mesh.halfedgeIndex[edgeKey{From: i, To: j}]; ok && !b.mesh.halfedges[h].IsBoundary() {
			return &FaceError{Kind: ErrNonmanifoldEdge, From: i, To: j}
		}
	}
	return nil
}

// insertFace wires a validated face into the arenas.
func (m *Mesh) insertFace(indices []int, c *corners) FaceID {
	n := len(indices)
	face := FaceID(len(m.faces))
	m.faces = append(m.faces, Face{ID: -1, Halfedge: NoHalfedge})

	loop := make([]HalfedgeID, n)
	for k := range n {
		i, j := indices[k], indices[(k+1)%n]
		m.ensureVertex(i)
		m.ensureVertex(j)

		hij, hji, e := m.halfedgePair(i, j)

		m.vertices[i].Halfedge = hij
		m.vertices[j].Halfedge = hji

		mustHold("halfedge already owned by a face", m.halfedges[hij].IsBoundary())
		m.halfedges[hij].Face = face
		m.edges[e].Halfedge = hij
		m.faces[face].Halfedge = hij
		loop[k] = hij
	}

	for k := range n {
		h, next := loop[k], loop[(k+1)%n]
		m.halfedges[h].Next = next
		m.halfedges[next].Prev = h
	}

	for k, h := range loop {
		if c.hasNormals {
			m.halfedges[h].Normal = c.normals[k]
			m.halfedges[h].HasNormal = true
		}
		if c.hasTexCoords {
			m.halfedges[h].TexCoord = c.texCoords[k]
			m.halfedges[h].HasTexCoord = true
		}
	}

	return face
}

// halfedgePair returns the halfedges i->j and j->i and their edge, creating
// all three the first time the pair {i, j} is seen.
func (m *Mesh) halfedgePair(i, j int) (HalfedgeID, HalfedgeID, EdgeID) {
	ij := edgeKey{From: i, To: j}
	ji := edgeKey{From: j, To: i}

	if e, ok := m.edgeIndex[undirected(i, j)]; ok {
		hij, okij := m.halfedgeIndex[ij]
		hji, okji := m.halfedgeIndex[ji]
		mustHold(fmt.Sprintf("edge (%d, %d) without both halfedges", i, j), okij && okji)
		return hij, hji, e
	}

	e := EdgeID(len(m.edges))
	hij := HalfedgeID(len(m.halfedges))
	hji := hij + 1

	m.halfedges = append(m.halfedges,
		newHalfedge(VertexID(j), e, hji),
		newHalfedge(VertexID(i), e, hij),
	)
	m.edges = append(m.edges, Edge{ID: -1, Halfedge: hij})

	m.halfedgeIndex[ij] = hij
	m.halfedgeIndex[ji] = hji
	m.edgeIndex[undirected(i, j)] = e

	return hij, hji, e
}

// ensureVertex grows the vertex arena so that index is addressable. Slots
// created on the way are placeholders until a face references them.
func (m *Mesh) ensureVertex(index int) {
	for len(m.vertices) <= index {
		m.vertices = append(m.vertices, newVertex())
	}
}
