package geometry

import (
	"errors"
	"math"
)

// ErrCollinear is returned when points do not span a plane.
var ErrCollinear = errors.New("points are collinear")

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of fit (quality measure)
}

// PolygonNormal returns the unit normal of a closed polygon using Newell's
// method. The result is zero for degenerate polygons.
func PolygonNormal(points []Vector3) Vector3 {
	var n Vector3
	for i, p := range points {
		q := points[(i+1)%len(points)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n.Normalize()
}

// FitCircle fits a circle to an ordered ring of points, such as the corners
// of a hole. The plane is the Newell plane of the ring.
//
// The circle passes through three points spread evenly around the ring
// using the determinant formula:
//
//	D = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//	cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//	cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
func FitCircle(points []Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, errors.New("need at least 3 points to fit a circle")
	}

	normal := PolygonNormal(points)
	if normal.IsZero() {
		return nil, ErrCollinear
	}

	// In-plane basis anchored at the mean of the ring
	origin := Mean(points...)
	axis := NewVector3(1, 0, 0)
	if math.Abs(normal.X) > 0.9 {
		axis = NewVector3(0, 1, 0)
	}
	u := normal.Cross(axis).Normalize()
	v := normal.Cross(u)

	points2D := make([][2]float64, len(points))
	for i, p := range points {
		d := p.Sub(origin)
		points2D[i] = [2]float64{d.Dot(u), d.Dot(v)}
	}

	n := len(points2D)
	x1, y1 := points2D[0][0], points2D[0][1]
	x2, y2 := points2D[n/3][0], points2D[n/3][1]
	x3, y3 := points2D[2*n/3][0], points2D[2*n/3][1]

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, ErrCollinear
	}

	x1sq := x1*x1 + y1*y1
	x2sq := x2*x2 + y2*y2
	x3sq := x3*x3 + y3*y3

	cx := (x1sq*(y2-y3) + x2sq*(y3-y1) + x3sq*(y1-y2)) / D
	cy := (x1sq*(x3-x2) + x2sq*(x1-x3) + x3sq*(x2-x1)) / D

	radius := math.Hypot(x1-cx, y1-cy)

	// Fit quality over every point, not just the three used
	var sumError float64
	for _, p := range points2D {
		dist := math.Hypot(p[0]-cx, p[1]-cy)
		sumError += (dist - radius) * (dist - radius)
	}

	return &CircleFit{
		Center: origin.Add(u.Mul(cx)).Add(v.Mul(cy)),
		Radius: radius,
		Normal: normal,
		StdDev: math.Sqrt(sumError / float64(n)),
	}, nil
}
