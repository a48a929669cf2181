package halfedge

import (
	"maps"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	twoTriangles = [][]int{{0, 1, 2}, {0, 2, 3}}

	// 3x3 grid of vertices, four quads, one hole around the outside.
	//
	//	6 7 8
	//	3 4 5
	//	0 1 2
	gridFaces = [][]int{{0, 1, 4, 3}, {1, 2, 5, 4}, {3, 4, 7, 6}, {4, 5, 8, 7}}

	cubeFaces = [][]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4}, // front
		{1, 2, 6, 5}, // right
		{2, 3, 7, 6}, // back
		{3, 0, 4, 7}, // left
	}
	cubePoints = []geometry.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
)

func buildMesh(t *testing.T, faces [][]int, points ...geometry.Vector3) *Mesh {
	t.Helper()
	b := NewBuilder()
	for i, p := range points {
		require.NoError(t, b.SetPosition(i, p))
	}
	for _, f := range faces {
		_, err := b.AddFace(f)
		require.NoError(t, err, "AddFace(%v)", f)
	}
	m, err := b.Finalize()
	require.NoError(t, err)
	return m
}

func gridPoints() []geometry.Vector3 {
	points := make([]geometry.Vector3, 0, 9)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			points = append(points, geometry.NewVector3(float64(x), float64(y), 0))
		}
	}
	return points
}

// snapshot deep-copies the builder's arenas and lookup tables, so a rejected
// insertion can be checked for leaving no trace at all.
func snapshot(b *Builder) Mesh {
	return Mesh{
		vertices:      slices.Clone(b.mesh.vertices),
		faces:         slices.Clone(b.mesh.faces),
		edges:         slices.Clone(b.mesh.edges),
		halfedges:     slices.Clone(b.mesh.halfedges),
		halfedgeIndex: maps.Clone(b.mesh.halfedgeIndex),
		edgeIndex:     maps.Clone(b.mesh.edgeIndex),
	}
}

// isRotation reports whether got equals want up to a cyclic shift.
func isRotation(got []VertexID, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for shift := range want {
		match := true
		for i := range want {
			if int(got[i]) != want[(i+shift)%len(want)] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func checkInvariants(t *testing.T, m *Mesh) {
	t.Helper()
	require.NoError(t, m.Validate())

	m.ForEachHalfedge(func(id HalfedgeID, h Halfedge) {
		assert.Equal(t, id, m.Halfedge(h.Opposite).Opposite, "opposite of opposite of %d", id)
		if !h.IsBoundary() {
			assert.Equal(t, id, m.Halfedge(h.Next).Prev, "next.prev of %d", id)
			assert.Equal(t, id, m.Halfedge(h.Prev).Next, "prev.next of %d", id)
		}
	})
	assert.Equal(t, 2*m.NumEdges(), m.NumHalfedges())
}

func TestTwoTrianglesSharingEdge(t *testing.T) {
	m := buildMesh(t, twoTriangles)

	assert.Equal(t, 2, m.NumFaces())
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 5, m.NumEdges())

	e, ok := m.FindEdge(0, 2)
	require.True(t, ok)
	hs := m.EdgeHalfedges(e)
	assert.NotEqual(t, hs[0], hs[1])
	assert.ElementsMatch(t, []VertexID{0, 2}, m.EdgeVertices(e))
	assert.ElementsMatch(t, []FaceID{0, 1}, m.EdgeFaces(e))
	assert.False(t, m.IsBoundaryEdge(e))

	h02, ok := m.FindHalfedge(0, 2)
	require.True(t, ok)
	h20, ok := m.FindHalfedge(2, 0)
	require.True(t, ok)
	assert.Equal(t, FaceID(1), m.Halfedge(h02).Face)
	assert.Equal(t, FaceID(0), m.Halfedge(h20).Face)

	checkInvariants(t, m)
}

func TestAddFaceRejectsNonmanifoldEdge(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddFace([]int{0, 1, 2})
	require.NoError(t, err)
	_, err = b.AddFace([]int{2, 1, 4})
	require.NoError(t, err)
	before := snapshot(b)

	f, err := b.AddFace([]int{0, 1, 3})
	require.ErrorIs(t, err, ErrNonmanifoldEdge)
	assert.Equal(t, NoFace, f)

	var faceErr *FaceError
	require.ErrorAs(t, err, &faceErr)
	assert.Equal(t, 0, faceErr.From)
	assert.Equal(t, 1, faceErr.To)
	assert.Equal(t, before, snapshot(b))

	// The reversed orientation is fine: it claims 1->0, not 0->1.
	_, err = b.AddFace([]int{1, 0, 3})
	require.NoError(t, err)

	m, err := b.Finalize()
	require.NoError(t, err)
	checkInvariants(t, m)
}

func TestAddFaceRejectsAttributeLength(t *testing.T) {
	tests := []struct {
		name string
		opt  CornerOption
	}{
		{"normals", WithNormals([]geometry.Vector3{{Z: 1}, {Z: 1}})},
		{"texcoords", WithTexCoords([]TexCoord{{U: 0, V: 0}, {U: 1, V: 0}, {U: 1, V: 1}, {U: 0, V: 1}})},
		{"empty normals", WithNormals([]geometry.Vector3{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			_, err := b.AddFace([]int{0, 2, 3})
			require.NoError(t, err)
			before := snapshot(b)

			_, err = b.AddFace([]int{0, 1, 2}, tt.opt)
			require.ErrorIs(t, err, ErrAttributeLength)
			assert.Equal(t, before, snapshot(b))
		})
	}
}

func TestAddFaceRejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    error
	}{
		{"empty", nil, ErrDegenerateFace},
		{"two corners", []int{0, 1}, ErrDegenerateFace},
		{"repeated corner", []int{0, 1, 1}, ErrDegenerateFace},
		{"repeated non-adjacent corner", []int{0, 1, 0, 2}, ErrDegenerateFace},
		{"negative index", []int{0, -1, 2}, ErrInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			_, err := b.AddFace([]int{5, 6, 7})
			require.NoError(t, err)
			before := snapshot(b)

			_, err = b.AddFace(tt.indices)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, snapshot(b))
		})
	}
}

func TestFaceCountMatchesSuccessfulInsertions(t *testing.T) {
	input := [][]int{
		{0, 1, 2},
		{0, 1, 2}, // duplicate orientation
		{2, 1, 3},
		{0, 2, 4, 5},
		{1, 3},    // too small
		{3, 1, 6}, // 3->1 is still free
		{1, 3, 7}, // 1->3 is taken
	}

	b := NewBuilder()
	succeeded := 0
	for _, f := range input {
		if _, err := b.AddFace(f); err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 4, succeeded)
	assert.Equal(t, succeeded, b.NumFaces())

	m, err := b.Finalize()
	require.NoError(t, err)
	checkInvariants(t, m)
}

func TestFaceLoopRecoversIndices(t *testing.T) {
	faces := append(append([][]int{}, gridFaces...), []int{9, 10, 11, 12, 13})
	m := buildMesh(t, faces)

	for i, want := range faces {
		got, err := m.FaceVertices(FaceID(i))
		require.NoError(t, err)
		assert.True(t, isRotation(got, want), "face %d: got %v, want rotation of %v", i, got, want)

		degree, err := m.FaceDegree(FaceID(i))
		require.NoError(t, err)
		assert.Equal(t, len(want), degree)
	}
}

func TestInvariantsHold(t *testing.T) {
	tests := []struct {
		name  string
		faces [][]int
	}{
		{"two triangles", twoTriangles},
		{"grid", gridFaces},
		{"cube", cubeFaces},
		{"tetrahedron", [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}}},
		{"disjoint", [][]int{{0, 1, 2}, {5, 6, 7, 8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkInvariants(t, buildMesh(t, tt.faces))
		})
	}
}

func TestBoundaryLoops(t *testing.T) {
	m := buildMesh(t, gridFaces)

	loops, err := m.BoundaryLoops()
	require.NoError(t, err)
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 8)

	boundary := 0
	m.ForEachHalfedge(func(id HalfedgeID, h Halfedge) {
		if !h.IsBoundary() {
			return
		}
		boundary++

		seen := map[HalfedgeID]bool{}
		cur := id
		for {
			require.False(t, seen[cur], "halfedge %d visited twice", cur)
			seen[cur] = true
			cur = m.Halfedge(cur).Next
			if cur == id {
				break
			}
		}
		assert.Len(t, seen, 8)
	})
	assert.Equal(t, 8, boundary)

	cube := buildMesh(t, cubeFaces)
	loops, err = cube.BoundaryLoops()
	require.NoError(t, err)
	assert.Empty(t, loops)
}

func TestBoundaryRepresentatives(t *testing.T) {
	m := buildMesh(t, gridFaces)

	for _, v := range []VertexID{0, 1, 2, 3, 5, 6, 7, 8} {
		onBoundary, err := m.IsBoundaryVertex(v)
		require.NoError(t, err)
		assert.True(t, onBoundary, "vertex %d", v)
	}
	onBoundary, err := m.IsBoundaryVertex(4)
	require.NoError(t, err)
	assert.False(t, onBoundary)

	m.ForEachEdge(func(id EdgeID, e Edge) {
		if m.IsBoundaryEdge(id) {
			assert.True(t, m.IsBoundaryHalfedge(e.Halfedge), "edge %d", id)
		}
	})
}

func TestVertexRing(t *testing.T) {
	m := buildMesh(t, gridFaces, gridPoints()...)

	neighbours, err := m.VertexVertices(4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []VertexID{1, 3, 5, 7}, neighbours)

	faces, err := m.VertexFaces(4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []FaceID{0, 1, 2, 3}, faces)

	degree, err := m.VertexDegree(0)
	require.NoError(t, err)
	assert.Equal(t, 2, degree)

	faces, err = m.VertexFaces(0)
	require.NoError(t, err)
	assert.Equal(t, []FaceID{0}, faces)

	degree, err = m.VertexDegree(1)
	require.NoError(t, err)
	assert.Equal(t, 3, degree)

	outgoing, err := m.OutgoingHalfedges(4)
	require.NoError(t, err)
	incoming, err := m.IncomingHalfedges(4)
	require.NoError(t, err)
	edges, err := m.VertexEdges(4)
	require.NoError(t, err)
	for i, h := range outgoing {
		assert.Equal(t, VertexID(4), m.FromVertex(h))
		assert.Equal(t, m.Halfedge(h).Opposite, incoming[i])
		assert.Equal(t, m.Halfedge(h).Edge, edges[i])
	}

	require.NoError(t, m.ComputeNormals())
	assert.True(t, m.VertexNormal(4).ApproxEqual(geometry.NewVector3(0, 0, 1), 1e-12))
}

func TestInitIDsFillsPlaceholders(t *testing.T) {
	m := buildMesh(t, [][]int{{0, 2, 3}})

	require.Equal(t, 4, m.NumVertices())
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, m.Vertex(VertexID(i)).ID)
	}
	assert.True(t, m.Vertex(1).IsIsolated())

	_, err := m.OutgoingHalfedges(1)
	assert.ErrorIs(t, err, ErrIsolatedVertex)
	_, err = m.IsBoundaryVertex(1)
	assert.ErrorIs(t, err, ErrIsolatedVertex)
	_, err = m.OutgoingHalfedges(7)
	assert.ErrorIs(t, err, ErrInvalidHandle)

	m.ForEachHalfedge(func(id HalfedgeID, h Halfedge) {
		assert.Equal(t, int(id), h.ID)
	})
	m.ForEachEdge(func(id EdgeID, e Edge) {
		assert.Equal(t, int(id), e.ID)
	})
}

func TestFinalizationOrder(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddFace([]int{0, 1, 2})
	require.NoError(t, err)

	_, err = b.Mesh()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, b.InitBoundaries(), ErrNotInitialized)

	require.NoError(t, b.InitIDs())
	assert.ErrorIs(t, b.InitIDs(), ErrAlreadyInitialized)

	_, err = b.AddFace([]int{2, 1, 3})
	assert.ErrorIs(t, err, ErrFinalized)
	assert.Equal(t, 1, b.NumFaces())

	_, err = b.Mesh()
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, b.InitBoundaries())
	assert.ErrorIs(t, b.InitBoundaries(), ErrAlreadyInitialized)

	m, err := b.Mesh()
	require.NoError(t, err)
	again, err := b.Finalize()
	require.NoError(t, err)
	assert.Same(t, m, again)
	checkInvariants(t, m)
}

func TestCornerPayloads(t *testing.T) {
	indices := []int{4, 7, 9}
	normals := []geometry.Vector3{{X: 1}, {Y: 1}, {Z: 1}}
	texCoords := []TexCoord{{U: 0, V: 0}, {U: 1, V: 0}, {U: 0, V: 1}}

	b := NewBuilder()
	_, err := b.AddFace(indices, WithNormals(normals), WithTexCoords(texCoords))
	require.NoError(t, err)
	m, err := b.Finalize()
	require.NoError(t, err)

	for k := range indices {
		h, ok := m.FindHalfedge(VertexID(indices[k]), VertexID(indices[(k+1)%3]))
		require.True(t, ok)
		he := m.Halfedge(h)
		assert.True(t, he.HasNormal)
		assert.True(t, he.HasTexCoord)
		assert.Equal(t, normals[k], he.Normal)
		assert.Equal(t, texCoords[k], he.TexCoord)
	}

	h, ok := m.FindHalfedge(7, 4)
	require.True(t, ok)
	assert.False(t, m.Halfedge(h).HasNormal)
}

func TestFaceQueries(t *testing.T) {
	points := []geometry.Vector3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	m := buildMesh(t, twoTriangles, points...)

	neighbours, err := m.FaceFaces(0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []FaceID{NoFace, NoFace, 1}, neighbours)

	onBoundary, err := m.IsBoundaryFace(0)
	require.NoError(t, err)
	assert.True(t, onBoundary)

	centroid, err := m.FaceCentroid(0)
	require.NoError(t, err)
	assert.True(t, centroid.ApproxEqual(geometry.NewVector3(2.0/3, 1.0/3, 0), 1e-12), "centroid %v", centroid)

	edges, err := m.FaceEdges(1)
	require.NoError(t, err)
	assert.Len(t, edges, 3)

	e, ok := m.FindEdge(2, 0)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(0.5, 0.5, 0), m.EdgeMidpoint(e))
	assert.InDelta(t, math.Sqrt2, m.EdgeLength(e), 1e-12)

	area, err := m.FaceArea(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, area, 1e-12)

	_, err = m.FaceHalfedges(5)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestComputeNormalsPlanarQuad(t *testing.T) {
	points := []geometry.Vector3{
		{X: 0, Y: 0, Z: 2}, {X: 3, Y: 0, Z: 2}, {X: 3, Y: 2, Z: 2}, {X: 0, Y: 2, Z: 2},
	}
	m := buildMesh(t, [][]int{{0, 1, 2, 3}}, points...)
	require.NoError(t, m.ComputeNormals())

	up := geometry.NewVector3(0, 0, 1)
	assert.True(t, m.FaceNormal(0).ApproxEqual(up, 1e-12), "face normal %v", m.FaceNormal(0))
	for v := VertexID(0); v < 4; v++ {
		assert.True(t, m.VertexNormal(v).ApproxEqual(up, 1e-12), "vertex %d normal %v", v, m.VertexNormal(v))
	}

	area, err := m.FaceArea(0)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, area, 1e-12)
}

func TestComputeNormalsCube(t *testing.T) {
	m := buildMesh(t, cubeFaces, cubePoints...)
	require.NoError(t, m.ComputeNormals())

	want := []geometry.Vector3{
		{Z: -1}, {Z: 1}, {Y: -1}, {X: 1}, {Y: 1}, {X: -1},
	}
	for f, n := range want {
		assert.True(t, m.FaceNormal(FaceID(f)).ApproxEqual(n, 1e-12), "face %d normal %v", f, m.FaceNormal(FaceID(f)))
	}

	// Every cube corner touches three faces, so its normal points along the
	// diagonal away from the centre.
	centre := geometry.NewVector3(0.5, 0.5, 0.5)
	for v, p := range cubePoints {
		diagonal := p.Sub(centre).Normalize()
		assert.True(t, m.VertexNormal(VertexID(v)).ApproxEqual(diagonal, 1e-12), "vertex %d normal %v", v, m.VertexNormal(VertexID(v)))
	}
}

func TestComputeNormalsSkipsIsolatedVertices(t *testing.T) {
	points := []geometry.Vector3{
		{X: 0, Y: 0}, {X: 5, Y: 5, Z: 5}, {X: 1, Y: 0}, {X: 0, Y: 1},
	}
	m := buildMesh(t, [][]int{{0, 2, 3}}, points...)
	require.NoError(t, m.ComputeNormals())

	assert.True(t, m.VertexNormal(1).IsZero())
	assert.True(t, m.VertexNormal(0).ApproxEqual(geometry.NewVector3(0, 0, 1), 1e-12))
}

func TestSetPosition(t *testing.T) {
	m := buildMesh(t, twoTriangles)

	require.NoError(t, m.SetPosition(3, geometry.NewVector3(1, 2, 3)))
	assert.Equal(t, geometry.NewVector3(1, 2, 3), m.Position(3))
	assert.ErrorIs(t, m.SetPosition(4, geometry.Vector3{}), ErrInvalidHandle)

	b := NewBuilder()
	assert.ErrorIs(t, b.SetPosition(-1, geometry.Vector3{}), ErrInvalidIndex)
}

func TestConcurrentQueries(t *testing.T) {
	m := buildMesh(t, cubeFaces, cubePoints...)

	var wg sync.WaitGroup
	errs := make(chan error, m.NumVertices()+m.NumFaces())
	for v := 0; v < m.NumVertices(); v++ {
		wg.Add(1)
		go func(v VertexID) {
			defer wg.Done()
			if _, err := m.VertexFaces(v); err != nil {
				errs <- err
			}
		}(VertexID(v))
	}
	for f := 0; f < m.NumFaces(); f++ {
		wg.Add(1)
		go func(f FaceID) {
			defer wg.Done()
			if _, err := m.FaceCentroid(f); err != nil {
				errs <- err
			}
		}(FaceID(f))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestAccessorsPanicOnInvalidHandle(t *testing.T) {
	m := buildMesh(t, twoTriangles)

	assert.Panics(t, func() { m.Vertex(99) })
	assert.Panics(t, func() { m.Face(-1) })
	assert.Panics(t, func() { m.EdgeHalfedges(NoEdge) })
	assert.Panics(t, func() { m.FromVertex(HalfedgeID(m.NumHalfedges())) })
}

func TestOutgoingHalfedgesCoversOneFanAtPinchedVertex(t *testing.T) {
	// Two triangles touching only at vertex 0.
	m := buildMesh(t, [][]int{{0, 1, 2}, {0, 3, 4}})

	ring, err := m.OutgoingHalfedges(0)
	require.NoError(t, err)
	assert.Len(t, ring, 2)
	for _, h := range ring {
		assert.Equal(t, VertexID(0), m.FromVertex(h))
	}

	assert.Error(t, m.Validate())
}
