package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bloxown/bo3-scene/engine/graph"
)

// FlyControls is a simple freecam driving a PerspectiveCamera.
type FlyControls struct {
	Camera  *graph.PerspectiveCamera
	WorldUp mgl32.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

// NewFlyControls attaches controls to cam looking with yaw/pitch (degrees).
// A yaw of -90 looks down -Z.
func NewFlyControls(cam *graph.PerspectiveCamera, yaw, pitch float32) *FlyControls {
	c := &FlyControls{
		Camera:      cam,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         yaw,
		Pitch:       pitch,
		Speed:       5.0,
		Sensitivity: 0.1,
	}
	c.updateCameraVectors()
	return c
}

// ProcessKeyboard moves the camera using WASD booleans and delta time (seconds).
func (c *FlyControls) ProcessKeyboard(forward, backward, left, right bool, deltaTime float32) {
	velocity := c.Speed * deltaTime
	pos := c.Camera.Position
	if forward {
		pos = pos.Add(c.front.Mul(velocity))
	}
	if backward {
		pos = pos.Sub(c.front.Mul(velocity))
	}
	if left {
		pos = pos.Sub(c.right.Mul(velocity))
	}
	if right {
		pos = pos.Add(c.right.Mul(velocity))
	}
	c.Camera.Position = pos
}

// ProcessMouse adjusts yaw/pitch from mouse delta (dx,dy) in pixels.
func (c *FlyControls) ProcessMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity

	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}

	c.updateCameraVectors()
}

// Front returns the current viewing direction.
func (c *FlyControls) Front() mgl32.Vec3 {
	return c.front
}

// recompute front/right/up from yaw/pitch and write the camera rotation
func (c *FlyControls) updateCameraVectors() {
	yawRad := float64(c.Yaw) * math.Pi / 180.0
	pitchRad := float64(c.Pitch) * math.Pi / 180.0

	fx := float32(math.Cos(yawRad) * math.Cos(pitchRad))
	fy := float32(math.Sin(pitchRad))
	fz := float32(math.Sin(yawRad) * math.Cos(pitchRad))

	c.front = mgl32.Vec3{fx, fy, fz}.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()

	// camera basis: +X right, +Y up, -Z front
	basis := mgl32.Mat4FromCols(
		c.right.Vec4(0),
		c.up.Vec4(0),
		c.front.Mul(-1).Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
	c.Camera.Rotation = mgl32.Mat4ToQuat(basis).Normalize()
}
