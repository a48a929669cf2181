// Package obj reads polygon meshes from Wavefront OBJ files.
//
// Only geometry statements are interpreted: v, vt, vn and f. Grouping,
// smoothing and material statements are skipped.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

// Face is one polygon. All indices are zero based. TexCoords and Normals
// are nil when the face does not reference them, otherwise they have one
// entry per vertex.
type Face struct {
	Vertices  []int
	TexCoords []int
	Normals   []int
}

// Model holds the attribute pools and faces of an OBJ file
type Model struct {
	Name      string
	Positions []geometry.Vector3
	TexCoords [][2]float64
	Normals   []geometry.Vector3
	Faces     []Face
}

// Parse reads an OBJ file
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses OBJ data from a reader
func Read(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := &Model{}
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "o":
			if len(fields) > 1 && model.Name == "" {
				model.Name = strings.Join(fields[1:], " ")
			}
		case "v":
			var p geometry.Vector3
			if p, err = parseVector(fields[1:]); err == nil {
				model.Positions = append(model.Positions, p)
			}
		case "vn":
			var n geometry.Vector3
			if n, err = parseVector(fields[1:]); err == nil {
				model.Normals = append(model.Normals, n)
			}
		case "vt":
			var uv [2]float64
			if uv, err = parseTexCoord(fields[1:]); err == nil {
				model.TexCoords = append(model.TexCoords, uv)
			}
		case "f":
			var f Face
			if f, err = model.parseFace(fields[1:]); err == nil {
				model.Faces = append(model.Faces, f)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	if len(fields) < 3 {
		return geometry.Vector3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q", fields[i])
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func parseTexCoord(fields []string) ([2]float64, error) {
	var uv [2]float64
	if len(fields) < 1 {
		return uv, fmt.Errorf("texture coordinate without values")
	}
	for i := 0; i < 2 && i < len(fields); i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return uv, fmt.Errorf("invalid texture coordinate %q", fields[i])
		}
		uv[i] = v
	}
	return uv, nil
}

// parseFace reads corners of the form v, v/vt, v//vn or v/vt/vn.
func (m *Model) parseFace(corners []string) (Face, error) {
	var f Face
	if len(corners) < 3 {
		return f, fmt.Errorf("face needs at least 3 vertices, got %d", len(corners))
	}

	for k, corner := range corners {
		parts := strings.Split(corner, "/")
		if len(parts) > 3 {
			return f, fmt.Errorf("invalid face corner %q", corner)
		}

		v, err := resolveIndex(parts[0], len(m.Positions))
		if err != nil {
			return f, fmt.Errorf("face corner %q: %w", corner, err)
		}
		f.Vertices = append(f.Vertices, v)

		hasTex := len(parts) > 1 && parts[1] != ""
		hasNormal := len(parts) > 2 && parts[2] != ""
		if k > 0 && (hasTex != (f.TexCoords != nil) || hasNormal != (f.Normals != nil)) {
			return f, fmt.Errorf("face corner %q: corners reference different attributes", corner)
		}

		if hasTex {
			vt, err := resolveIndex(parts[1], len(m.TexCoords))
			if err != nil {
				return f, fmt.Errorf("face corner %q: %w", corner, err)
			}
			f.TexCoords = append(f.TexCoords, vt)
		}
		if hasNormal {
			vn, err := resolveIndex(parts[2], len(m.Normals))
			if err != nil {
				return f, fmt.Errorf("face corner %q: %w", corner, err)
			}
			f.Normals = append(f.Normals, vn)
		}
	}
	return f, nil
}

// resolveIndex converts a one based, possibly negative OBJ index into a
// zero based index into a pool of the given size.
func resolveIndex(s string, size int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	switch {
	case i > 0 && i <= size:
		return i - 1, nil
	case i < 0 && -i <= size:
		return size + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range for %d elements", i, size)
	}
}
