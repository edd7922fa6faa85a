package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bloxown/bo3-scene/engine/graph"
)

func TestInitialOrientation(t *testing.T) {
	cam := graph.NewPerspectiveCamera(45, 1, 0.1, 100)
	c := NewFlyControls(cam, -90, 0)

	if !c.Front().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("front = %v, want -Z", c.Front())
	}
	got := cam.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("camera forward = %v, want -Z", got)
	}
}

func TestKeyboardMovesAlongFront(t *testing.T) {
	cam := graph.NewPerspectiveCamera(45, 1, 0.1, 100)
	c := NewFlyControls(cam, 0, 0) // looking down +X
	c.ProcessKeyboard(true, false, false, false, 0.5)
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{2.5, 0, 0}, 1e-5) {
		t.Errorf("position = %v", cam.Position)
	}
	c.ProcessKeyboard(false, false, false, true, 1)
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{2.5, 0, 5}, 1e-5) {
		t.Errorf("position after strafe = %v", cam.Position)
	}

	forward := cam.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	if !forward.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("camera forward = %v, want +X", forward)
	}
}

func TestPitchClamped(t *testing.T) {
	cam := graph.NewPerspectiveCamera(45, 1, 0.1, 100)
	c := NewFlyControls(cam, -90, 0)
	c.ProcessMouse(0, -10000)
	if c.Pitch != 89 {
		t.Errorf("pitch = %v, want 89", c.Pitch)
	}
	c.ProcessMouse(0, 10000)
	if c.Pitch != -89 {
		t.Errorf("pitch = %v, want -89", c.Pitch)
	}
}
