package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/bloxown/bo3-scene/engine"
	"github.com/bloxown/bo3-scene/engine/asset"
	"github.com/bloxown/bo3-scene/engine/build"
	"github.com/bloxown/bo3-scene/engine/graph"
)

func main() {
	find := flag.String("find", "", "dot-separated path to look up after loading, e.g. Scene.asset.car.body")
	timeout := flag.Duration("timeout", 30*time.Second, "load timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.gltf|file.glb...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	loader := asset.NewLoader(
		asset.WithEventBuffer(flag.NArg()),
		asset.WithLoadFunc(func(ctx context.Context, path string) (graph.Object, error) {
			ctx, cancel := context.WithTimeout(ctx, *timeout)
			defer cancel()
			return asset.LoadGLTF(ctx, path)
		}),
	)
	defer loader.Close()

	scene := build.Scene()
	for _, path := range flag.Args() {
		build.GLTF(loader, path, build.Attrs{"name": "asset"}).AppendTo(scene)
	}
	loader.Wait()
	attached := loader.Drain()

	scene.Object().PrintHierarchy(os.Stdout, 0)
	log.Printf("attached %d of %d assets, %d objects",
		attached, flag.NArg(), len(scene.Object().GetDescendants()))

	if *find != "" {
		obj := graph.FindByPath(scene.Object(), *find)
		if obj == nil {
			log.Fatalf("%s: not found", *find)
		}
		b := obj.Base()
		b.UpdateMatrixWorld()
		fmt.Printf("%s (%s) position=%v world=%v\n", obj.GetFullName(), obj.GetClassName(), b.Position, b.WorldPosition())
	}
}
