package lvexplorer

import "math"

// Camera describes the perspective viewing transform.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVY float64 // radians
	Near float64
	Far  float64
}

// NewCamera returns the viewer's starting camera, looking at the origin
// from outside the Local Volume.
func NewCamera() Camera {
	return Camera{
		Position: V3(10, 10, 20),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FOVY:     60 * math.Pi / 180,
		Near:     0.1,
		Far:      2000,
	}
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the perspective projection matrix for a target aspect.
func (c Camera) Projection(aspect float64) Mat4 {
	fov := c.FOVY
	if fov == 0 {
		fov = 1.0
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// OrbitController provides orbit/zoom interactions around a fixed target,
// with damped motion. It does not depend on any input system: the front end
// feeds it deltas and calls Update once per frame.
type OrbitController struct {
	Target Vec3
	Yaw    float64
	Pitch  float64
	Radius float64

	MinRadius float64
	MaxRadius float64

	// Damping is the per-frame fraction of pending motion applied.
	// Zero means motion is applied immediately.
	Damping float64

	velYaw    float64
	velPitch  float64
	velRadius float64
}

// NewOrbitController starts the orbit where the default camera sits.
func NewOrbitController() *OrbitController {
	pos := NewCamera().Position
	return &OrbitController{
		Radius:    pos.Len(),
		Yaw:       math.Atan2(pos.X, pos.Z),
		Pitch:     math.Asin(pos.Y / pos.Len()),
		MinRadius: 1,
		MaxRadius: 500,
		Damping:   0.15,
	}
}

// Rotate queues a yaw/pitch delta in radians.
func (c *OrbitController) Rotate(deltaYaw, deltaPitch float64) {
	c.velYaw += deltaYaw
	c.velPitch += deltaPitch
}

// Zoom queues a radius delta.
func (c *OrbitController) Zoom(delta float64) {
	c.velRadius += delta
}

// Update applies the damped pending motion. Call once per frame.
func (c *OrbitController) Update() {
	d := c.Damping
	if d <= 0 || d > 1 {
		d = 1
	}
	c.Yaw += c.velYaw * d
	c.Pitch += c.velPitch * d
	c.Radius += c.velRadius * d
	c.velYaw *= 1 - d
	c.velPitch *= 1 - d
	c.velRadius *= 1 - d

	// Keep the camera off the poles and inside the radius bounds.
	const maxPitch = math.Pi/2 - 0.01
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

// Apply positions the camera on the orbit sphere.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	cosP := math.Cos(c.Pitch)
	offset := V3(
		r*cosP*math.Sin(c.Yaw),
		r*math.Sin(c.Pitch),
		r*cosP*math.Cos(c.Yaw),
	)
	cam.Position = c.Target.Add(offset)
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}
