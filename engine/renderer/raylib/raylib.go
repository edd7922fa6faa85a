// Package raylib implements renderer.Surface on top of raylib.
package raylib

import (
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bloxown/bo3-scene/engine/renderer"
	"github.com/bloxown/bo3-scene/internal/logger"
)

// Surface is a raylib window. All methods must be called from the goroutine
// that called Open, which must be locked to its OS thread.
type Surface struct {
	queue  []renderer.Primitive
	models []renderer.ModelDraw

	cubeModel   rl.Model
	sphereModel rl.Model
	planeModel  rl.Model

	files  map[string]rl.Model
	failed map[string]bool
	open   bool
}

var _ renderer.Surface = (*Surface)(nil)

func New() *Surface {
	return &Surface{
		files:  make(map[string]rl.Model),
		failed: make(map[string]bool),
	}
}

// Open creates the window and verifies the GL context by loading GL entry
// points through go-gl.
func (s *Surface) Open(title string, width, height, targetFPS int) error {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("open window: %w", renderer.ErrNoContext)
	}
	if err := gl.Init(); err != nil {
		rl.CloseWindow()
		return fmt.Errorf("load GL functions: %v: %w", err, renderer.ErrNoContext)
	}
	logger.Get().Info("GL context created",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	if targetFPS > 0 {
		rl.SetTargetFPS(int32(targetFPS))
	}

	s.cubeModel = rl.LoadModelFromMesh(rl.GenMeshCube(1.0, 1.0, 1.0))
	s.sphereModel = rl.LoadModelFromMesh(rl.GenMeshSphere(0.5, 16, 16))
	s.planeModel = rl.LoadModelFromMesh(rl.GenMeshPlane(1.0, 1.0, 1, 1))
	s.open = true
	return nil
}

func (s *Surface) Ready() bool {
	if !s.open || !rl.IsWindowReady() {
		return false
	}
	w, h := s.Size()
	return w > 0 && h > 0
}

func (s *Surface) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (s *Surface) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Resize changes the window size when it differs from the current one.
func (s *Surface) Resize(width, height int) {
	if w, h := s.Size(); w == width && h == height {
		return
	}
	rl.SetWindowSize(width, height)
}

// BeginFrame starts drawing. raylib keeps the previous frame's colour and
// depth buffers, so a frame that is not cleared explicitly still starts from
// transparent black.
func (s *Surface) BeginFrame(clear bool, c color.RGBA) {
	rl.BeginDrawing()
	rl.ClearBackground(frameClearColor(clear, c))
	s.queue = s.queue[:0]
	s.models = s.models[:0]
}

func (s *Surface) PushPrimitive(p renderer.Primitive) {
	s.queue = append(s.queue, p)
}

func (s *Surface) PushModel(m renderer.ModelDraw) {
	s.models = append(s.models, m)
}

func (s *Surface) EndFrame(v renderer.View) {
	cam := rl.Camera{
		Position:   vec3(v.Position),
		Target:     vec3(v.Target),
		Up:         vec3(v.Up),
		Fovy:       v.Fovy,
		Projection: rl.CameraPerspective,
	}
	rl.BeginMode3D(cam)

	for _, prim := range s.queue {
		var model rl.Model
		switch prim.Type {
		case "cube":
			model = s.cubeModel
		case "sphere":
			model = s.sphereModel
		case "plane":
			model = s.planeModel
		default:
			continue
		}
		axis, angle := axisAngle(prim.Rotation)
		rl.DrawModelEx(model, vec3(prim.Position), axis, angle, vec3(prim.Size), toColor(prim.Color))
	}

	for _, m := range s.models {
		model, ok := s.model(m.Path)
		if !ok {
			continue
		}
		axis, angle := axisAngle(m.Rotation)
		rl.DrawModelEx(model, vec3(m.Position), axis, angle, vec3(m.Scale), toColor(m.Tint))
	}

	rl.EndMode3D()
	rl.EndDrawing()

	s.queue = s.queue[:0]
	s.models = s.models[:0]
}

// model loads path once and caches it. Files that fail to load are logged
// once and skipped afterwards.
func (s *Surface) model(path string) (rl.Model, bool) {
	if m, ok := s.files[path]; ok {
		return m, true
	}
	if s.failed[path] {
		return rl.Model{}, false
	}
	m := rl.LoadModel(path)
	if m.MeshCount == 0 {
		logger.Get().Warn("could not load model file", "path", path)
		s.failed[path] = true
		return rl.Model{}, false
	}
	s.files[path] = m
	return m, true
}

func (s *Surface) Close() {
	if !s.open {
		return
	}
	for path, m := range s.files {
		rl.UnloadModel(m)
		delete(s.files, path)
	}
	rl.UnloadModel(s.cubeModel)
	rl.UnloadModel(s.sphereModel)
	rl.UnloadModel(s.planeModel)
	rl.CloseWindow()
	s.open = false
}

func frameClearColor(clear bool, c color.RGBA) rl.Color {
	if !clear {
		return rl.Blank
	}
	return toColor(c)
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// axisAngle converts q to raylib's axis + angle in degrees.
func axisAngle(q mgl32.Quat) (rl.Vector3, float32) {
	q = q.Normalize()
	w := mgl32.Clamp(q.W, -1, 1)
	angle := 2 * float32(math.Acos(float64(w)))
	sin := float32(math.Sqrt(float64(1 - w*w)))
	if sin < 1e-6 {
		return rl.Vector3{X: 0, Y: 1, Z: 0}, 0
	}
	axis := q.V.Mul(1 / sin)
	return vec3(axis), mgl32.RadToDeg(angle)
}
