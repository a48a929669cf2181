package halfedge

import "github.com/philipparndt/gohalfedge/pkg/geometry"

// VertexID is a handle into the vertex arena of a mesh. It equals the vertex
// index used when adding faces.
type VertexID int

// FaceID is a handle into the face arena of a mesh.
type FaceID int

// EdgeID is a handle into the edge arena of a mesh.
type EdgeID int

// HalfedgeID is a handle into the halfedge arena of a mesh.
type HalfedgeID int

// Sentinel handles for absent adjacency.
const (
	NoVertex   VertexID   = -1
	NoFace     FaceID     = -1
	NoEdge     EdgeID     = -1
	NoHalfedge HalfedgeID = -1
)

// TexCoord is a per-corner texture coordinate. The mesh stores it verbatim.
type TexCoord struct {
	U, V float64
}

// Vertex is a mesh vertex.
type Vertex struct {
	// ID is -1 until ids are assigned.
	ID       int
	Position geometry.Vector3
	Normal   geometry.Vector3
	// Halfedge is an outgoing halfedge, or NoHalfedge for isolated vertices.
	// On boundary vertices it is a boundary halfedge once boundaries are linked.
	Halfedge HalfedgeID
}

// IsIsolated reports whether no face references the vertex.
func (v Vertex) IsIsolated() bool {
	return v.Halfedge == NoHalfedge
}

// Face is a polygon of three or more corners.
type Face struct {
	ID       int
	Halfedge HalfedgeID
	Normal   geometry.Vector3
}

// Edge is an undirected edge shared by two opposite halfedges.
type Edge struct {
	ID       int
	Halfedge HalfedgeID
}

// Halfedge is one direction of an edge. Vertex is the vertex it points to.
type Halfedge struct {
	ID       int
	Vertex   VertexID
	Face     FaceID
	Edge     EdgeID
	Next     HalfedgeID
	Prev     HalfedgeID
	Opposite HalfedgeID

	// Per-corner payloads of the corner this halfedge leaves.
	Normal      geometry.Vector3
	TexCoord    TexCoord
	HasNormal   bool
	HasTexCoord bool
}

// IsBoundary reports whether the halfedge has no face.
func (h Halfedge) IsBoundary() bool {
	return h.Face == NoFace
}

func newVertex() Vertex {
	return Vertex{ID: -1, Halfedge: NoHalfedge}
}

func newHalfedge(head VertexID, edge EdgeID, opposite HalfedgeID) Halfedge {
	return Halfedge{
		ID:       -1,
		Vertex:   head,
		Face:     NoFace,
		Edge:     edge,
		Next:     NoHalfedge,
		Prev:     NoHalfedge,
		Opposite: opposite,
	}
}
