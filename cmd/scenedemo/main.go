package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bloxown/bo3-scene/engine"
	"github.com/bloxown/bo3-scene/engine/asset"
	"github.com/bloxown/bo3-scene/engine/build"
	"github.com/bloxown/bo3-scene/engine/camera"
	"github.com/bloxown/bo3-scene/engine/graph"
	rlsurface "github.com/bloxown/bo3-scene/engine/renderer/raylib"
)

func init() {
	// raylib requires OS thread for window and OpenGL
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 800, "window width")
	height := flag.Int("height", 600, "window height")
	fps := flag.Int("fps", 60, "target frames per second")
	title := flag.String("title", "bo3-scene", "window title")
	gltfPath := flag.String("gltf", "", "optional .gltf/.glb file to load into the scene")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	loader := asset.NewLoader()

	// Large floor and a 3x3x3 grid of cubes
	grid := build.Group(build.Attrs{"name": "grid", "position": mgl32.Vec3{0, 0, -5}})
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				build.Part(
					build.Args{graph.PrimitiveCube},
					build.Attrs{
						"name":     fmt.Sprintf("cube%d%d%d", x+1, y+1, z+1),
						"position": mgl32.Vec3{float32(x) * 2, float32(y) * 2, float32(z) * 2},
						"color":    mgl32.Vec3{float32(x+1) / 2, float32(y+1) / 2, float32(z+1) / 2},
					},
				).AppendTo(grid)
			}
		}
	}

	scene := build.Scene(
		build.AmbientLight(build.Args{"white", 1.0}),
		build.Part(build.Attrs{
			"name":     "floor",
			"position": mgl32.Vec3{0, -5, -5},
			"size":     mgl32.Vec3{100, 1, 100},
			"color":    "green",
		}),
		build.Part(build.Args{graph.PrimitiveSphere}, build.Attrs{
			"name":     "sun",
			"position": mgl32.Vec3{0, 10, -5},
			"color":    "red",
		}),
		grid,
	)
	if *gltfPath != "" {
		build.GLTF(loader, *gltfPath, build.Attrs{"name": "asset"}).AppendTo(scene)
	}
	if err := scene.Err(); err != nil {
		log.Fatalf("build scene: %v", err)
	}

	cam := build.PerspectiveCamera(build.Args{45, float64(*width) / float64(*height), 0.1, 100.0},
		build.Attrs{"name": "camera", "position": mgl32.Vec3{0, 0, 3}},
	).Object().(*graph.PerspectiveCamera)
	controls := camera.NewFlyControls(cam, -90.0, 0.0)

	surface := rlsurface.New()
	eng, err := engine.New(scene.Object(), cam,
		engine.WithSurface(surface),
		engine.WithLoader(loader),
		engine.WithTitle(*title),
		engine.WithSize(*width, *height),
		engine.WithTargetFPS(*fps),
	)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := eng.Start(ctx); err != nil {
		log.Fatalf("start engine: %v", err)
	}

	spin := grid.Object()
	for !surface.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		dt := rl.GetFrameTime()
		if dt <= 0 {
			dt = 0.0001
		}

		// Keyboard input (WASD)
		forward := rl.IsKeyDown(rl.KeyW)
		backward := rl.IsKeyDown(rl.KeyS)
		left := rl.IsKeyDown(rl.KeyA)
		right := rl.IsKeyDown(rl.KeyD)
		controls.ProcessKeyboard(forward, backward, left, right, dt)
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			delta := rl.GetMouseDelta()
			controls.ProcessMouse(delta.X, delta.Y)
		}

		spin.Base().Rotation = mgl32.QuatRotate(float32(rl.GetTime()), mgl32.Vec3{0, 1, 0})

		eng.Frame()
	}
}
