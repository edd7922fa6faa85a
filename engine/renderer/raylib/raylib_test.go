package raylib

import (
	"image/color"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func TestFrameClearColor(t *testing.T) {
	c := color.RGBA{10, 20, 30, 255}
	if got := frameClearColor(true, c); got != rl.NewColor(10, 20, 30, 255) {
		t.Errorf("explicit clear = %v", got)
	}
	if got := frameClearColor(false, c); got != rl.Blank {
		t.Errorf("frame without clear = %v, want transparent black", got)
	}
}

func TestAxisAngle(t *testing.T) {
	axis, angle := axisAngle(mgl32.QuatIdent())
	if angle != 0 || axis != (rl.Vector3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("identity = %v %v", axis, angle)
	}
	axis, angle = axisAngle(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	if !mgl32.FloatEqualThreshold(angle, 90, 1e-3) || !mgl32.FloatEqualThreshold(axis.Z, 1, 1e-5) {
		t.Errorf("90 about Z = %v %v", axis, angle)
	}
}
