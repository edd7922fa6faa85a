package asset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/bloxown/bo3-scene/engine/graph"
)

// LoadGLTF reads a .gltf or .glb file and returns a *graph.Model whose
// children mirror the default scene's node hierarchy. Nodes that reference a
// mesh become "mesh" Parts; the rest become Groups.
func LoadGLTF(ctx context.Context, path string) (graph.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildModel(doc, path)
}

func buildModel(doc *gltf.Document, path string) (*graph.Model, error) {
	model := graph.NewModel(path)
	model.SetName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	if len(doc.Scenes) == 0 {
		return model, nil
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("gltf %s: default scene %d out of range", path, sceneIdx)
	}

	// glTF node graphs are trees; visited guards against malformed files.
	visited := make(map[int]bool)
	for _, idx := range doc.Scenes[sceneIdx].Nodes {
		child, err := buildNode(doc, idx, visited)
		if err != nil {
			return nil, fmt.Errorf("gltf %s: %w", path, err)
		}
		if err := model.Add(child); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func buildNode(doc *gltf.Document, idx int, visited map[int]bool) (graph.Object, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	if visited[idx] {
		return nil, fmt.Errorf("node %d referenced twice", idx)
	}
	visited[idx] = true
	n := doc.Nodes[idx]

	var obj graph.Object
	if n.Mesh != nil {
		p := graph.NewPart()
		p.Primitive = graph.PrimitiveMesh
		if *n.Mesh >= 0 && *n.Mesh < len(doc.Meshes) {
			if name := doc.Meshes[*n.Mesh].Name; name != "" {
				p.UserData()["mesh"] = name
			}
		}
		obj = p
	} else {
		obj = graph.NewGroup()
	}
	if n.Name != "" {
		obj.SetName(n.Name)
	} else {
		obj.SetName(fmt.Sprintf("node%d", idx))
	}
	applyTransform(obj.Base(), n)

	for _, c := range n.Children {
		child, err := buildNode(doc, c, visited)
		if err != nil {
			return nil, err
		}
		if err := obj.Add(child); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// applyTransform copies the node's TRS, decomposing Matrix when one is given.
func applyTransform(b *graph.Object3D, n *gltf.Node) {
	if n.Matrix != gltf.DefaultMatrix && n.Matrix != ([16]float64{}) {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		b.Position, b.Rotation, b.Scale = graph.Decompose(m)
		return
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	b.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	b.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	b.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}
