package geometry

// Triangle is one STL facet: three corners and the normal stored with them
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// Corners returns the three corners in winding order
func (t Triangle) Corners() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// GeometricNormal computes the unit normal from the winding order
func (t Triangle) GeometricNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// FacetNormal returns the stored normal, falling back to the geometric
// normal when the file left it zero.
func (t Triangle) FacetNormal() Vector3 {
	if t.Normal.IsZero() {
		return t.GeometricNormal()
	}
	return t.Normal
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

