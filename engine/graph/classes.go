package graph

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the root of a renderable graph.
type Scene struct {
	Object3D
	// Background overrides the renderer clear colour when non-nil.
	Background *color.RGBA
}

func NewScene() *Scene {
	s := &Scene{}
	s.Init(s, "Scene")
	return s
}

func (s *Scene) SetAttr(key string, value any) error {
	if key == "background" {
		c, err := toColor(value)
		if err != nil {
			return attrErr(key, value)
		}
		s.Background = &c
		return nil
	}
	return s.Object3D.SetAttr(key, value)
}

func (s *Scene) GetAttr(key string) (any, bool) {
	if key == "background" {
		if s.Background == nil {
			return nil, false
		}
		return *s.Background, true
	}
	return s.Object3D.GetAttr(key)
}

// Group only groups its children.
type Group struct {
	Object3D
}

func NewGroup() *Group {
	g := &Group{}
	g.Init(g, "Group")
	return g
}

// AmbientLight lights every object equally.
type AmbientLight struct {
	Object3D
	Color     color.RGBA
	Intensity float32
}

func NewAmbientLight(c color.RGBA, intensity float32) *AmbientLight {
	l := &AmbientLight{Color: c, Intensity: intensity}
	l.Init(l, "AmbientLight")
	return l
}

func (l *AmbientLight) SetAttr(key string, value any) error {
	switch key {
	case "color":
		c, err := toColor(value)
		if err != nil {
			return attrErr(key, value)
		}
		l.Color = c
	case "intensity":
		f, err := toFloat32(value)
		if err != nil {
			return attrErr(key, value)
		}
		l.Intensity = f
	default:
		return l.Object3D.SetAttr(key, value)
	}
	return nil
}

func (l *AmbientLight) GetAttr(key string) (any, bool) {
	switch key {
	case "color":
		return l.Color, true
	case "intensity":
		return l.Intensity, true
	}
	return l.Object3D.GetAttr(key)
}

// PerspectiveCamera projects with a vertical field of view in degrees.
type PerspectiveCamera struct {
	Object3D
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{Fov: fov, Aspect: aspect, Near: near, Far: far}
	c.Init(c, "PerspectiveCamera")
	return c
}

// ProjectionMatrix returns the perspective projection for the current parameters.
func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// ViewMatrix is the inverse of the camera's world matrix.
func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return c.MatrixWorld().Inv()
}

func (c *PerspectiveCamera) SetAttr(key string, value any) error {
	var dst *float32
	switch key {
	case "fov":
		dst = &c.Fov
	case "aspect":
		dst = &c.Aspect
	case "near":
		dst = &c.Near
	case "far":
		dst = &c.Far
	case "lookAt":
		v, err := toVec3(value)
		if err != nil {
			return attrErr(key, value)
		}
		c.LookAt(v)
		return nil
	default:
		return c.Object3D.SetAttr(key, value)
	}
	f, err := toFloat32(value)
	if err != nil {
		return attrErr(key, value)
	}
	*dst = f
	return nil
}

func (c *PerspectiveCamera) GetAttr(key string) (any, bool) {
	switch key {
	case "fov":
		return c.Fov, true
	case "aspect":
		return c.Aspect, true
	case "near":
		return c.Near, true
	case "far":
		return c.Far, true
	}
	return c.Object3D.GetAttr(key)
}

// Part is a primitive solid drawn by the renderer.
type Part struct {
	Object3D
	Primitive string
	Size      mgl32.Vec3
	Color     color.RGBA
}

// Primitive kinds understood by the renderer.
const (
	PrimitiveCube   = "cube"
	PrimitiveSphere = "sphere"
	PrimitivePlane  = "plane"
	PrimitiveMesh   = "mesh"
)

func NewPart() *Part {
	p := &Part{
		Primitive: PrimitiveCube,
		Size:      mgl32.Vec3{1, 1, 1},
		Color:     color.RGBA{255, 255, 255, 255},
	}
	p.Init(p, "Part")
	return p
}

func (p *Part) SetAttr(key string, value any) error {
	switch key {
	case "primitive":
		s, ok := value.(string)
		if !ok {
			return attrErr(key, value)
		}
		p.Primitive = s
	case "size":
		v, err := toVec3(value)
		if err != nil {
			return attrErr(key, value)
		}
		p.Size = v
	case "color":
		c, err := toColor(value)
		if err != nil {
			return attrErr(key, value)
		}
		p.Color = c
	default:
		return p.Object3D.SetAttr(key, value)
	}
	return nil
}

func (p *Part) GetAttr(key string) (any, bool) {
	switch key {
	case "primitive":
		return p.Primitive, true
	case "size":
		return p.Size, true
	case "color":
		return p.Color, true
	}
	return p.Object3D.GetAttr(key)
}

// Model draws a model file. Its children, when loaded from glTF, mirror the
// file's node hierarchy.
type Model struct {
	Object3D
	Path string
	Tint color.RGBA
}

func NewModel(path string) *Model {
	m := &Model{Path: path, Tint: color.RGBA{255, 255, 255, 255}}
	m.Init(m, "Model")
	return m
}

func (m *Model) SetAttr(key string, value any) error {
	switch key {
	case "path":
		s, ok := value.(string)
		if !ok {
			return attrErr(key, value)
		}
		m.Path = s
	case "color":
		c, err := toColor(value)
		if err != nil {
			return attrErr(key, value)
		}
		m.Tint = c
	default:
		return m.Object3D.SetAttr(key, value)
	}
	return nil
}

func (m *Model) GetAttr(key string) (any, bool) {
	switch key {
	case "path":
		return m.Path, true
	case "color":
		return m.Tint, true
	}
	return m.Object3D.GetAttr(key)
}
