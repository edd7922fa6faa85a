package asset

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/bloxown/bo3-scene/engine/graph"
	"github.com/bloxown/bo3-scene/internal/logger"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := logger.Get()
	t.Cleanup(func() { logger.Set(orig) })
	var buf bytes.Buffer
	logger.Set(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestAttachSuccess(t *testing.T) {
	captureLog(t)
	sub := graph.NewGroup()
	sub.SetName("sub")
	l := NewLoader(WithLoadFunc(func(ctx context.Context, path string) (graph.Object, error) {
		return sub, nil
	}))
	defer l.Close()

	placeholder := graph.NewGroup()
	l.Attach(placeholder, "thing.glb")
	if n := len(placeholder.GetChildren()); n != 0 {
		t.Fatalf("placeholder mutated before Drain: %d children", n)
	}
	l.Wait()
	if n := l.Drain(); n != 1 {
		t.Fatalf("Drain = %d, want 1", n)
	}
	children := placeholder.GetChildren()
	if len(children) != 1 || children[0] != graph.Object(sub) {
		t.Errorf("placeholder children = %v, want [sub]", children)
	}
	if n := l.Drain(); n != 0 {
		t.Errorf("second Drain = %d, want 0", n)
	}
}

func TestAttachFailureIsLogged(t *testing.T) {
	buf := captureLog(t)
	l := NewLoader(WithLoadFunc(func(ctx context.Context, path string) (graph.Object, error) {
		return nil, errors.New("boom")
	}))
	defer l.Close()

	placeholder := graph.NewGroup()
	l.Attach(placeholder, "missing.glb")
	l.Wait()
	l.Drain()

	if n := len(placeholder.GetChildren()); n != 0 {
		t.Errorf("placeholder has %d children, want 0", n)
	}
	out := buf.String()
	if !strings.Contains(out, "could not load gltf") || !strings.Contains(out, "boom") {
		t.Errorf("log output = %q", out)
	}
}

func TestCloseUnblocksPendingLoads(t *testing.T) {
	captureLog(t)
	l := NewLoader(
		WithEventBuffer(1),
		WithLoadFunc(func(ctx context.Context, path string) (graph.Object, error) {
			return graph.NewGroup(), nil
		}),
	)
	p := graph.NewGroup()
	for i := 0; i < 3; i++ {
		l.Attach(p, "x")
	}
	// at least two loads cannot fit the channel; Close must still return
	l.Close()
	if n := l.Drain(); n > 1 {
		t.Errorf("Drain after Close = %d, want at most 1", n)
	}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0"},
		Scene: gltf.Index(0),
		Scenes: []*gltf.Scene{
			{Name: "main", Nodes: []int{0}},
		},
		Nodes: []*gltf.Node{
			{
				Name:        "body",
				Children:    []int{1, 2},
				Translation: [3]float64{1, 2, 3},
				Rotation:    [4]float64{0, 0, 0, 1},
				Scale:       [3]float64{2, 2, 2},
			},
			{
				Name:        "wheel",
				Mesh:        gltf.Index(0),
				Translation: [3]float64{0, -1, 0},
				Rotation:    [4]float64{0, 0, 0, 1},
				Scale:       [3]float64{1, 1, 1},
			},
			{
				Rotation: [4]float64{0, 0, 0, 1},
				Scale:    [3]float64{1, 1, 1},
			},
		},
		Meshes: []*gltf.Mesh{
			{Name: "wheelMesh"},
		},
	}
	path := filepath.Join(t.TempDir(), "car.gltf")
	if err := gltf.Save(doc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGLTF(t *testing.T) {
	path := writeFixture(t)
	obj, err := LoadGLTF(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	model, ok := obj.(*graph.Model)
	if !ok {
		t.Fatalf("root is %T, want *graph.Model", obj)
	}
	if model.Path != path || model.GetName() != "car" {
		t.Errorf("model = %q %q", model.Path, model.GetName())
	}

	body := model.FindFirstChild("body")
	if body == nil {
		t.Fatal("body node missing")
	}
	if body.Base().Position != (mgl32.Vec3{1, 2, 3}) || body.Base().Scale != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("body transform = %v %v", body.Base().Position, body.Base().Scale)
	}
	wheel, ok := body.FindFirstChild("wheel").(*graph.Part)
	if !ok {
		t.Fatalf("wheel is %T, want *graph.Part", body.FindFirstChild("wheel"))
	}
	if wheel.Primitive != graph.PrimitiveMesh {
		t.Errorf("wheel primitive = %q", wheel.Primitive)
	}
	if v, _ := wheel.GetAttr("mesh"); v != "wheelMesh" {
		t.Errorf("wheel mesh = %v", v)
	}
	if body.FindFirstChild("node2") == nil {
		t.Error("unnamed node should be called node2")
	}

	model.UpdateMatrixWorld()
	if got := wheel.WorldPosition(); !got.ApproxEqual(mgl32.Vec3{1, 0, 3}) {
		t.Errorf("wheel world position = %v", got)
	}
}

func TestLoadGLTFErrors(t *testing.T) {
	if _, err := LoadGLTF(context.Background(), filepath.Join(t.TempDir(), "nope.glb")); err == nil {
		t.Error("missing file should fail")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadGLTF(ctx, "whatever.glb"); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled ctx = %v", err)
	}
}

func TestBuildModelRejectsRepeatedNode(t *testing.T) {
	doc := &gltf.Document{
		Scenes: []*gltf.Scene{{Nodes: []int{0, 0}}},
		Nodes:  []*gltf.Node{{Name: "a"}},
	}
	if _, err := buildModel(doc, "x.gltf"); err == nil {
		t.Error("repeated node should fail")
	}
}

func TestApplyTransformMatrix(t *testing.T) {
	m := mgl32.Translate3D(4, 5, 6).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))).Mul4(mgl32.Scale3D(3, 3, 3))
	n := &gltf.Node{}
	for i, v := range m {
		n.Matrix[i] = float64(v)
	}
	g := graph.NewGroup()
	applyTransform(g.Base(), n)
	if !g.Position.ApproxEqual(mgl32.Vec3{4, 5, 6}) {
		t.Errorf("position = %v", g.Position)
	}
	if !g.Scale.ApproxEqualThreshold(mgl32.Vec3{3, 3, 3}, 1e-4) {
		t.Errorf("scale = %v", g.Scale)
	}
	if !g.LocalMatrix().ApproxEqualThreshold(m, 1e-4) {
		t.Errorf("LocalMatrix = %v, want %v", g.LocalMatrix(), m)
	}
}
