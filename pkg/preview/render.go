// Package preview rasterizes a half-edge mesh into a flat-shaded image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
	"github.com/philipparndt/gohalfedge/pkg/halfedge"
)

// Options control the rendered image
type Options struct {
	Width  int
	Height int
	// Yaw and Pitch orient the camera, in radians.
	Yaw   float64
	Pitch float64

	Background color.RGBA
	Surface    color.RGBA
	// Boundary draws edges next to a hole in this colour when its alpha is
	// non-zero.
	Boundary color.RGBA
}

// DefaultOptions returns a three-quarter view with holes outlined in red
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Yaw:        math.Pi / 4,
		Pitch:      math.Pi / 6,
		Background: color.RGBA{30, 30, 30, 255},
		Surface:    color.RGBA{200, 200, 210, 255},
		Boundary:   color.RGBA{230, 60, 60, 255},
	}
}

// Render draws m with one flat colour per face, shaded by how directly the
// face looks at the camera. Polygons are fan-triangulated from their first
// corner. Render stores fresh normals in m.
func Render(m *halfedge.Mesh, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if err := m.ComputeNormals(); err != nil {
		return nil, fmt.Errorf("failed to compute normals: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	bbox := geometry.NewBoundingBox()
	m.ForEachVertex(func(_ halfedge.VertexID, v halfedge.Vertex) {
		if !v.IsIsolated() {
			bbox.Extend(v.Position)
		}
	})
	if m.NumFaces() == 0 {
		return img, nil
	}

	camera := NewCamera(bbox, opts.Yaw, opts.Pitch)
	width, height := float64(opts.Width), float64(opts.Height)

	zbuffer := make([]float64, opts.Width*opts.Height)
	for i := range zbuffer {
		zbuffer[i] = math.MaxFloat64
	}

	project := func(v halfedge.VertexID) screenPoint {
		x, y, z := camera.Project(m.Position(v), width, height)
		return screenPoint{x: x, y: y, z: z}
	}

	var err error
	m.ForEachFace(func(f halfedge.FaceID, face halfedge.Face) {
		if err != nil {
			return
		}
		var corners []halfedge.VertexID
		if corners, err = m.FaceVertices(f); err != nil {
			return
		}

		col := shade(opts.Surface, camera.Facing(face.Normal))
		first := project(corners[0])
		for k := 1; k+1 < len(corners); k++ {
			fillTriangleWithDepth(img, zbuffer, first, project(corners[k]), project(corners[k+1]), col)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize faces: %w", err)
	}

	if opts.Boundary.A != 0 {
		m.ForEachEdge(func(e halfedge.EdgeID, _ halfedge.Edge) {
			if !m.IsBoundaryEdge(e) {
				return
			}
			ends := m.EdgeVertices(e)
			p, q := project(ends[0]), project(ends[1])
			drawLine(img, int(p.x), int(p.y), int(q.x), int(q.y), opts.Boundary)
		})
	}

	return img, nil
}

// shade scales base by a Lambert term with a small ambient floor. Faces
// seen from behind are shaded by the absolute cosine.
func shade(base color.RGBA, facing float64) color.RGBA {
	intensity := 0.25 + 0.75*math.Abs(facing)
	return color.RGBA{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
		A: base.A,
	}
}

// FormatFromPath derives the image format from a file extension
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("unsupported image format %q (expected .png, .bmp or .tiff)", ext)
	}
}

// Encode writes img in the named format
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save writes img to path, choosing the format from the extension
func Save(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
