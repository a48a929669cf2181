package preview

import (
	"math"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

// Camera orbits a target point and projects world positions to pixels
type Camera struct {
	Target   geometry.Vector3
	FOV      float64 // Field of view in radians
	Distance float64
	Yaw      float64 // Rotation around the vertical axis
	Pitch    float64 // Elevation above the horizontal plane

	toEye   mat4.T
	right   vec3.T
	up      vec3.T
	forward vec3.T
}

// NewCamera creates a camera framing bbox from the given angles
func NewCamera(bbox geometry.BoundingBox, yaw, pitch float64) *Camera {
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance <= 0 {
		distance = 1
	}

	c := &Camera{
		Target:   bbox.Center(),
		FOV:      math.Pi / 4, // 45 degrees
		Distance: distance,
	}
	c.Rotate(yaw, pitch)
	return c
}

// Position returns the eye position
func (c *Camera) Position() geometry.Vector3 {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)

	return c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate sets the orbit angles and rebuilds the view basis
func (c *Camera) Rotate(yaw, pitch float64) {
	// Clamp pitch to keep the up vector well defined
	maxAngle := math.Pi/2 - 0.1
	c.Yaw = yaw
	c.Pitch = math.Max(-maxAngle, math.Min(maxAngle, pitch))

	eye := toVec3(c.Position())
	target := toVec3(c.Target)
	worldUp := vec3.T{0, 1, 0}

	c.toEye = mat4.Ident
	offset := vec3.T{-eye[0], -eye[1], -eye[2]}
	c.toEye.SetTranslation(&offset)

	c.forward = vec3.Sub(&target, &eye)
	c.forward.Normalize()
	c.right = vec3.Cross(&c.forward, &worldUp)
	c.right.Normalize()
	c.up = vec3.Cross(&c.right, &c.forward)
	c.up.Normalize()
}

// Project maps a world position to screen coordinates and its depth along
// the view direction
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	p := toVec3(point)
	relative := c.toEye.MulVec3(&p)

	x := vec3.Dot(&relative, &c.right)
	y := vec3.Dot(&relative, &c.up)
	z := vec3.Dot(&relative, &c.forward)

	// Perspective projection
	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Facing returns the cosine between a normal and the direction towards the
// camera, used for flat shading
func (c *Camera) Facing(normal geometry.Vector3) float64 {
	n := toVec3(normal)
	return -vec3.Dot(&n, &c.forward)
}

func toVec3(v geometry.Vector3) vec3.T {
	return vec3.T{v.X, v.Y, v.Z}
}
