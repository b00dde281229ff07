package viewer

import (
	gomath "math"

	"github.com/Faultbox/minipaint/pkg/math"
)

// orbitCamera orbits a center point; mouse drag changes the spherical
// angles, the wheel changes distance.
type orbitCamera struct {
	Center math.Vec3

	Distance float32
	Pitch    float32 // radians
	Yaw      float32 // radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

func newOrbitCamera() *orbitCamera {
	return &orbitCamera{
		Distance:        5.0,
		Pitch:           0.4,
		Yaw:             0.6,
		MinDistance:     0.05,
		MaxDistance:     10000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.008,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *orbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *orbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation from a mouse drag delta.
func (c *orbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates distance from a scroll wheel delta.
func (c *orbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds frames the given bounding box. Miniature STLs vary from
// millimeter to meter scale, so everything derives from the box diagonal.
func (c *orbitCamera) FitToBounds(min, max [3]float32) {
	c.Center = math.Vec3{
		X: (min[0] + max[0]) / 2,
		Y: (min[1] + max[1]) / 2,
		Z: (min[2] + max[2]) / 2,
	}

	diag := math.Vec3{
		X: max[0] - min[0],
		Y: max[1] - min[1],
		Z: max[2] - min[2],
	}.Length()
	if diag == 0 {
		diag = 1
	}

	c.Distance = diag * 1.8
	c.MinDistance = diag * 0.1
	c.MaxDistance = diag * 20
	c.Pitch = 0.4
	c.Yaw = 0.6
}
