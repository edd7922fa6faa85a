// Package engine drives a render loop over a scene graph.
//
// An Engine is created Uninitialized. Start waits for its surface to report
// a usable size, configures the renderer and moves it to Running; from then
// on every Frame drains finished asset loads and renders the scene.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bloxown/bo3-scene/engine/asset"
	"github.com/bloxown/bo3-scene/engine/graph"
	"github.com/bloxown/bo3-scene/engine/renderer"
	"github.com/bloxown/bo3-scene/internal/logger"
)

// ErrNoContext is returned by New when the surface cannot create a GL context.
var ErrNoContext = renderer.ErrNoContext

// ErrNoSurface is returned by New when no surface was configured.
var ErrNoSurface = errors.New("engine: no surface configured")

// State is the engine lifecycle state.
type State int

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Running:
		return "Running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Engine owns a scene, a camera, a surface and a renderer.
// It is not safe for concurrent use; keep it on the goroutine that opened
// the surface.
type Engine struct {
	scene    graph.Object
	camera   *graph.PerspectiveCamera
	surface  renderer.Surface
	renderer *renderer.Renderer
	loader   *asset.Loader

	cfg    Config
	state  State
	frames uint64
}

// New stores scene and camera, adds the camera to the scene, opens the
// surface and binds a renderer to it with auto-clear enabled.
func New(scene graph.Object, camera *graph.PerspectiveCamera, opts ...Option) (*Engine, error) {
	e := &Engine{
		scene:  scene,
		camera: camera,
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.surface == nil {
		return nil, ErrNoSurface
	}

	if err := scene.Add(camera); err != nil {
		return nil, fmt.Errorf("add camera to scene: %w", err)
	}

	if err := e.surface.Open(e.cfg.Title, e.cfg.Width, e.cfg.Height, e.cfg.TargetFPS); err != nil {
		if errors.Is(err, renderer.ErrNoContext) {
			return nil, err
		}
		return nil, fmt.Errorf("open surface: %v: %w", err, ErrNoContext)
	}
	e.renderer = renderer.New(e.surface)
	e.renderer.SetAutoClear(true)
	return e, nil
}

// Scene returns the scene root.
func (e *Engine) Scene() graph.Object { return e.scene }

// Camera returns the camera.
func (e *Engine) Camera() *graph.PerspectiveCamera { return e.camera }

// Renderer returns the renderer bound to the surface.
func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Frames returns how many frames were rendered.
func (e *Engine) Frames() uint64 { return e.frames }

// Start blocks until the surface is ready, then configures the renderer and
// enters Running. Calling Start on a running engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	if e.state == Running {
		return nil
	}
	if !e.surface.Ready() {
		poll := e.cfg.ReadyPoll
		if poll <= 0 {
			poll = 10 * time.Millisecond
		}
		ticker := time.NewTicker(poll)
		defer ticker.Stop()
		for !e.surface.Ready() {
			select {
			case <-ctx.Done():
				return fmt.Errorf("wait for surface: %w", ctx.Err())
			case <-ticker.C:
			}
		}
	}

	e.renderer.SetPixelRatio(e.cfg.PixelRatio)
	e.renderer.SetAutoClear(false)
	clear := e.cfg.ClearColor
	if clear == nil {
		clear = DefaultConfig().ClearColor
	}
	e.renderer.SetClearColor(clear, e.cfg.ClearAlpha)
	e.resize(false)

	e.state = Running
	w, h := e.renderer.Size()
	bw, bh := e.renderer.DrawingBufferSize()
	logger.Get().Info("renderer initialized",
		"width", w, "height", h,
		"pixel_ratio", e.renderer.PixelRatio(),
		"buffer_width", bw, "buffer_height", bh,
	)
	return nil
}

// Frame runs one tick: attach finished loads, follow the surface size and
// render. Panics raised while rendering are not recovered.
func (e *Engine) Frame() {
	if e.loader != nil {
		e.loader.Drain()
	}
	e.resize(true)
	e.renderer.Render(e.scene, e.camera)
	e.frames++
}

// Run starts the engine if needed and renders frames until the surface asks
// to close or ctx is done. Frame pacing is left to the surface.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Start(ctx); err != nil {
		return err
	}
	for !e.surface.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Frame()
	}
	return nil
}

// Close releases the surface and cancels outstanding asset loads.
func (e *Engine) Close() {
	if e.loader != nil {
		e.loader.Close()
	}
	e.surface.Close()
}

// resize keeps the renderer in step with the surface. When aspect is set and
// the size changed, the camera aspect is overwritten with the new ratio; the
// first sizing in Start keeps the aspect the camera was built with.
func (e *Engine) resize(aspect bool) {
	w, h := e.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if cw, ch := e.renderer.Size(); cw == w && ch == h {
		return
	}
	e.renderer.SetSize(w, h)
	if aspect {
		e.camera.Aspect = float32(w) / float32(h)
	}
}
