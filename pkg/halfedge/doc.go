// Package halfedge builds a half-edge representation of a polygonal surface
// mesh from per-face vertex index lists and answers adjacency queries on it.
//
// # Lifecycle
//
// A mesh is built in two phases:
//  1. Create a Builder with NewBuilder and call AddFace for every face.
//     Rejected faces leave the builder unchanged.
//  2. Call Finalize (or InitIDs followed by InitBoundaries, then Mesh) to
//     obtain a *Mesh. The builder accepts no faces afterwards.
//
// Faces may be arbitrary polygons and the surface may have holes. Every
// directed edge may belong to at most one face; non-manifold input is
// rejected with ErrNonmanifoldEdge.
//
// # Handles
//
// Elements live in arenas owned by the mesh and refer to each other through
// integer handles (VertexID, FaceID, EdgeID, HalfedgeID). Vertex handles
// equal the indices passed to AddFace; indices never referenced by a face
// become isolated placeholder vertices.
//
// # Thread Safety
//
// Builder is not safe for concurrent use. A finalized Mesh may be queried
// from multiple goroutines as long as nobody calls ComputeNormals or
// SetPosition at the same time.
package halfedge
