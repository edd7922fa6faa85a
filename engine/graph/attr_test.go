package graph

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "red", want: color.RGBA{255, 0, 0, 255}},
		{in: "Red", want: color.RGBA{255, 0, 0, 255}},
		{in: "#000", want: color.RGBA{0, 0, 0, 255}},
		{in: "#0a0B0c", want: color.RGBA{10, 11, 12, 255}},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "notacolor", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCommonAttrs(t *testing.T) {
	g := NewGroup()
	steps := map[string]any{
		"name":     "root",
		"position": []float64{1, 2, 3},
		"scale":    2,
		"visible":  false,
		"rotation": mgl32.Vec3{0, 90, 0},
		"custom":   42,
	}
	for k, v := range steps {
		if err := g.SetAttr(k, v); err != nil {
			t.Fatalf("SetAttr(%q) = %v", k, err)
		}
	}
	if g.GetName() != "root" {
		t.Errorf("name = %q", g.GetName())
	}
	if g.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("position = %v", g.Position)
	}
	if g.Scale != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("scale = %v", g.Scale)
	}
	if g.Visible {
		t.Error("visible = true")
	}
	if v, ok := g.GetAttr("custom"); !ok || v != 42 {
		t.Errorf("custom = %v, %v", v, ok)
	}
	if !g.Rotation.ApproxEqualThreshold(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}), 1e-5) {
		t.Errorf("rotation = %v", g.Rotation)
	}
}

func TestAttrTypeErrors(t *testing.T) {
	tests := []struct {
		obj   Object
		key   string
		value any
	}{
		{NewGroup(), "name", 3},
		{NewGroup(), "position", "up"},
		{NewGroup(), "visible", "yes"},
		{NewAmbientLight(color.RGBA{}, 1), "intensity", "bright"},
		{NewAmbientLight(color.RGBA{}, 1), "color", 12},
		{NewPerspectiveCamera(50, 1, 0.1, 100), "fov", "wide"},
		{NewPart(), "size", []float64{1, 2}},
		{NewModel(""), "path", 1},
		{NewScene(), "background", "nope"},
	}
	for _, tt := range tests {
		err := tt.obj.SetAttr(tt.key, tt.value)
		if !errors.Is(err, ErrAttrType) {
			t.Errorf("%s.SetAttr(%q, %v) = %v, want ErrAttrType", tt.obj.GetClassName(), tt.key, tt.value, err)
		}
	}
}

func TestClassAttrs(t *testing.T) {
	light := NewAmbientLight(color.RGBA{}, 0)
	_ = light.SetAttr("color", "red")
	_ = light.SetAttr("intensity", 0.5)
	if light.Color != (color.RGBA{255, 0, 0, 255}) || light.Intensity != 0.5 {
		t.Errorf("light = %v %v", light.Color, light.Intensity)
	}

	cam := NewPerspectiveCamera(50, 1, 0.1, 100)
	_ = cam.SetAttr("fov", 75)
	_ = cam.SetAttr("far", 1000.0)
	if v, _ := cam.GetAttr("fov"); v != float32(75) {
		t.Errorf("fov = %v", v)
	}
	if cam.Far != 1000 {
		t.Errorf("far = %v", cam.Far)
	}

	part := NewPart()
	_ = part.SetAttr("color", mgl32.Vec3{0, 1, 0})
	_ = part.SetAttr("primitive", PrimitiveSphere)
	if part.Color != (color.RGBA{0, 255, 0, 255}) || part.Primitive != PrimitiveSphere {
		t.Errorf("part = %v %v", part.Color, part.Primitive)
	}

	scene := NewScene()
	if _, ok := scene.GetAttr("background"); ok {
		t.Error("unset background reported as set")
	}
	_ = scene.SetAttr("background", "#102030")
	if v, ok := scene.GetAttr("background"); !ok || v != (color.RGBA{16, 32, 48, 255}) {
		t.Errorf("background = %v", v)
	}
}
