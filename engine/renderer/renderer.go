// Package renderer turns a scene graph into draw calls for a Backend.
package renderer

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bloxown/bo3-scene/engine/graph"
)

// ErrNoContext is returned by Surface.Open when no GL context could be created.
var ErrNoContext = errors.New("renderer: could not create GL context")

// Primitive is one solid to draw, in world space.
type Primitive struct {
	Position mgl32.Vec3
	Size     mgl32.Vec3
	Rotation mgl32.Quat
	Color    color.RGBA
	Type     string
}

// ModelDraw is one model file to draw, in world space.
type ModelDraw struct {
	Path     string
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Quat
	Tint     color.RGBA
}

// View describes the camera for a frame.
type View struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32
	Near     float32
	Far      float32
}

// Backend receives one frame at a time: BeginFrame, any number of pushes,
// then EndFrame.
type Backend interface {
	BeginFrame(clear bool, c color.RGBA)
	PushPrimitive(p Primitive)
	PushModel(m ModelDraw)
	EndFrame(v View)
}

// Resizer is implemented by backends whose drawing surface can be resized.
type Resizer interface {
	Resize(width, height int)
}

// Surface is a window with a GL context that can also draw.
type Surface interface {
	Backend
	// Open creates the window and its GL context. It returns an error
	// wrapping ErrNoContext when the context is unavailable.
	Open(title string, width, height, targetFPS int) error
	// Ready reports whether the surface has a usable on-screen size.
	Ready() bool
	// Size returns the on-screen size in logical pixels.
	Size() (width, height int)
	ShouldClose() bool
	Close()
}

// Renderer draws a scene from a camera.
type Renderer struct {
	backend Backend

	pixelRatio float32
	autoClear  bool
	clearColor color.RGBA
	clearAlpha float32
	width      int
	height     int

	primCount  int
	modelCount int
	lightCount int
}

// New returns a renderer bound to b with auto-clear on, pixel ratio 1 and
// an opaque black clear colour.
func New(b Backend) *Renderer {
	return &Renderer{
		backend:    b,
		pixelRatio: 1,
		autoClear:  true,
		clearColor: color.RGBA{0, 0, 0, 255},
		clearAlpha: 1,
	}
}

// SetPixelRatio records the device pixel ratio reported by DrawingBufferSize.
// It does not resize the backend; surfaces size their own framebuffers.
// Non-positive ratios reset it to 1.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
}

func (r *Renderer) PixelRatio() float32 {
	return r.pixelRatio
}

func (r *Renderer) SetAutoClear(v bool) {
	r.autoClear = v
}

func (r *Renderer) AutoClear() bool {
	return r.autoClear
}

// SetClearColor sets the colour used when clearing; alpha is in [0,1].
func (r *Renderer) SetClearColor(c color.Color, alpha float32) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	r.clearColor = rgba
	r.clearAlpha = mgl32.Clamp(alpha, 0, 1)
}

func (r *Renderer) ClearColor() (color.RGBA, float32) {
	return r.clearColor, r.clearAlpha
}

// SetSize sets the logical size and resizes the backend's surface when it
// supports it. The drawing buffer is the logical size times the pixel ratio.
func (r *Renderer) SetSize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	if rs, ok := r.backend.(Resizer); ok {
		rs.Resize(width, height)
	}
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// DrawingBufferSize is the size scaled by the pixel ratio.
func (r *Renderer) DrawingBufferSize() (int, int) {
	return int(float32(r.width) * r.pixelRatio), int(float32(r.height) * r.pixelRatio)
}

func (r *Renderer) GetPrimCount() int {
	return r.primCount
}

func (r *Renderer) GetModelCount() int {
	return r.modelCount
}

func (r *Renderer) GetLCount() int {
	return r.lightCount
}

// Render draws scene as seen from cam. World matrices are refreshed first.
// Invisible objects hide their whole subtree. Ambient lights tint every
// primitive and model; with no lights colours are drawn unlit.
func (r *Renderer) Render(scene graph.Object, cam *graph.PerspectiveCamera) {
	scene.UpdateMatrixWorld()
	if cam.GetParent() == nil {
		cam.UpdateMatrixWorld()
	}

	var prims []Primitive
	var models []ModelDraw
	var ambient mgl32.Vec3
	lights := 0

	scene.Traverse(func(o graph.Object) bool {
		if !o.Base().Visible {
			return false
		}
		switch obj := o.(type) {
		case *graph.AmbientLight:
			c := colorVec(obj.Color).Mul(obj.Intensity)
			ambient = ambient.Add(c)
			lights++
		case *graph.Part:
			if obj.Primitive == graph.PrimitiveMesh {
				// geometry belongs to the enclosing Model
				return true
			}
			pos, rot, scale := graph.Decompose(obj.MatrixWorld())
			prims = append(prims, Primitive{
				Position: pos,
				Size:     mulVec(scale, obj.Size),
				Rotation: rot,
				Color:    obj.Color,
				Type:     obj.Primitive,
			})
		case *graph.Model:
			if obj.Path == "" {
				return true
			}
			pos, rot, scale := graph.Decompose(obj.MatrixWorld())
			models = append(models, ModelDraw{
				Path:     obj.Path,
				Position: pos,
				Scale:    scale,
				Rotation: rot,
				Tint:     obj.Tint,
			})
		}
		return true
	})

	if lights > 0 {
		for i := range prims {
			prims[i].Color = shade(prims[i].Color, ambient)
		}
		for i := range models {
			models[i].Tint = shade(models[i].Tint, ambient)
		}
	}

	clear := r.autoClear
	clearColor := r.clearColor
	clearColor.A = uint8(r.clearAlpha*255 + 0.5)
	if s, ok := scene.(*graph.Scene); ok && s.Background != nil {
		clear = true
		clearColor = *s.Background
	}

	r.backend.BeginFrame(clear, clearColor)
	for _, p := range prims {
		r.backend.PushPrimitive(p)
	}
	for _, m := range models {
		r.backend.PushModel(m)
	}
	r.backend.EndFrame(viewOf(cam))

	r.primCount = len(prims)
	r.modelCount = len(models)
	r.lightCount = lights
}

func viewOf(cam *graph.PerspectiveCamera) View {
	world := cam.MatrixWorld()
	pos := world.Col(3).Vec3()
	forward := world.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
	up := world.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	return View{
		Position: pos,
		Target:   pos.Add(forward),
		Up:       up,
		Fovy:     cam.Fov,
		Near:     cam.Near,
		Far:      cam.Far,
	}
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func colorVec(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func shade(c color.RGBA, light mgl32.Vec3) color.RGBA {
	lit := mulVec(colorVec(c), light)
	return color.RGBA{
		R: uint8(mgl32.Clamp(lit[0], 0, 1)*255 + 0.5),
		G: uint8(mgl32.Clamp(lit[1], 0, 1)*255 + 0.5),
		B: uint8(mgl32.Clamp(lit[2], 0, 1)*255 + 0.5),
		A: c.A,
	}
}
