// Package loader reads STL, OBJ and OpenSCAD files into finalized
// half-edge meshes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
	"github.com/philipparndt/gohalfedge/pkg/obj"
	"github.com/philipparndt/gohalfedge/pkg/openscad"
	"github.com/philipparndt/gohalfedge/pkg/stl"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported file type (expected .stl, .obj or .scad)")

// Options control how a file is turned into a mesh
type Options struct {
	// WeldTolerance merges vertices closer than this distance. Zero only
	// merges exactly equal positions.
	WeldTolerance float64
	// Center translates the mesh so its bounding box is centred on the origin.
	Center bool
}

// Rejection records a face the mesh refused
type Rejection struct {
	// Face is the position of the face in the source file.
	Face    int
	Indices []int
	Err     error
}

// Result is a loaded mesh together with what was dropped on the way
type Result struct {
	Name   string
	Format string
	Mesh   *halfedge.Mesh
	// Rejected lists faces refused by the mesh, in file order.
	Rejected []Rejection
	// Sources lists the files the mesh was built from, for watch mode.
	Sources []string
}

// Load reads path and builds a mesh from it. Faces the mesh rejects are
// reported in Result.Rejected rather than failing the load.
func Load(ctx context.Context, path string, opts Options) (*Result, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return fromSTL(model, path, opts)

	case ".obj":
		model, err := obj.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OBJ file: %w", err)
		}
		return fromOBJ(model, path, opts)

	case ".scad":
		return loadSCAD(ctx, path, opts)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func loadSCAD(ctx context.Context, path string, opts Options) (*Result, error) {
	renderer := openscad.NewRenderer(filepath.Dir(path))

	deps, err := renderer.ResolveDependencies(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	tmp, err := os.CreateTemp("", "halfedge-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := renderer.RenderToSTL(ctx, filepath.Base(path), tmp.Name()); err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}

	result, err := fromSTL(model, path, opts)
	if err != nil {
		return nil, err
	}
	result.Format = "scad"
	result.Sources = deps
	return result, nil
}

func fromSTL(model *stl.Model, path string, opts Options) (*Result, error) {
	indexed := model.Indexed()
	points, remap := weld(indexed.Points, opts.WeldTolerance)

	result := &Result{Name: modelName(model.Name, path), Format: "stl", Sources: []string{path}}
	b := halfedge.NewBuilder()

	for i, tri := range indexed.Faces {
		indices := []int{remap[tri[0]], remap[tri[1]], remap[tri[2]]}
		var corners []halfedge.CornerOption
		if n := indexed.Normals[i]; !n.IsZero() {
			corners = append(corners, halfedge.WithNormals([]geometry.Vector3{n, n, n}))
		}
		result.addFace(b, i, indices, corners...)
	}

	mesh, err := finish(b, points, opts)
	if err != nil {
		return nil, err
	}
	result.Mesh = mesh
	return result, nil
}

func fromOBJ(model *obj.Model, path string, opts Options) (*Result, error) {
	points, remap := weld(model.Positions, opts.WeldTolerance)

	result := &Result{Name: modelName(model.Name, path), Format: "obj", Sources: []string{path}}
	b := halfedge.NewBuilder()

	for i, face := range model.Faces {
		indices := make([]int, len(face.Vertices))
		for k, v := range face.Vertices {
			indices[k] = remap[v]
		}

		var corners []halfedge.CornerOption
		if face.Normals != nil {
			normals := make([]geometry.Vector3, len(face.Normals))
			for k, n := range face.Normals {
				normals[k] = model.Normals[n]
			}
			corners = append(corners, halfedge.WithNormals(normals))
		}
		if face.TexCoords != nil {
			uvs := make([]halfedge.TexCoord, len(face.TexCoords))
			for k, t := range face.TexCoords {
				uvs[k] = halfedge.TexCoord{U: model.TexCoords[t][0], V: model.TexCoords[t][1]}
			}
			corners = append(corners, halfedge.WithTexCoords(uvs))
		}
		result.addFace(b, i, indices, corners...)
	}

	mesh, err := finish(b, points, opts)
	if err != nil {
		return nil, err
	}
	result.Mesh = mesh
	return result, nil
}

func (r *Result) addFace(b *halfedge.Builder, face int, indices []int, opts ...halfedge.CornerOption) {
	if _, err := b.AddFace(indices, opts...); err != nil {
		r.Rejected = append(r.Rejected, Rejection{Face: face, Indices: indices, Err: err})
	}
}

// finish stores positions and finalizes the builder. Positions are set for
// every source point so unreferenced points become isolated vertices.
func finish(b *halfedge.Builder, points []geometry.Vector3, opts Options) (*halfedge.Mesh, error) {
	var offset geometry.Vector3
	if opts.Center && len(points) > 0 {
		bbox := geometry.NewBoundingBox()
		for _, p := range points {
			bbox.Extend(p)
		}
		offset = bbox.Center()
	}

	for i, p := range points {
		if err := b.SetPosition(i, p.Sub(offset)); err != nil {
			return nil, fmt.Errorf("failed to set position %d: %w", i, err)
		}
	}

	mesh, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("failed to finalize mesh: %w", err)
	}
	return mesh, nil
}

// weld merges points that fall into the same tolerance cell. It returns
// the merged points and, for every input point, its index in the result.
func weld(points []geometry.Vector3, tolerance float64) ([]geometry.Vector3, []int) {
	remap := make([]int, len(points))
	if tolerance <= 0 {
		for i := range remap {
			remap[i] = i
		}
		return points, remap
	}

	type cell [3]int64
	cells := make(map[cell]int)
	merged := make([]geometry.Vector3, 0, len(points))
	for i, p := range points {
		key := cell{
			int64(math.Round(p.X / tolerance)),
			int64(math.Round(p.Y / tolerance)),
			int64(math.Round(p.Z / tolerance)),
		}
		if j, ok := cells[key]; ok {
			remap[i] = j
			continue
		}
		cells[key] = len(merged)
		remap[i] = len(merged)
		merged = append(merged, p)
	}
	return merged, remap
}

func modelName(name, path string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
