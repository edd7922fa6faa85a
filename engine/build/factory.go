package build

import (
	"fmt"

	"github.com/bloxown/bo3-scene/engine/asset"
	"github.com/bloxown/bo3-scene/engine/graph"
)

// Factory creates nodes from the classes of a registry.
type Factory struct {
	Registry *graph.Registry
}

// NewFactory returns a factory over reg, or over the built-in classes when
// reg is nil.
func NewFactory(reg *graph.Registry) *Factory {
	if reg == nil {
		reg = graph.NewRegistry()
	}
	return &Factory{Registry: reg}
}

var defaultFactory = NewFactory(nil)

// Create constructs class and appends the remaining arguments. When args[0]
// is an Args value its elements are passed to the constructor and it is not
// appended. The node is returned together with the first append error.
func (f *Factory) Create(class string, args ...any) (*Node, error) {
	ctorArgs, rest := splitArgs(args)

	obj, err := f.Registry.Create(class, ctorArgs...)
	if err != nil {
		return nil, err
	}
	n := Wrap(obj)
	n.Append(rest...)
	return n, n.Err()
}

// MustCreate is like Create but panics when the class is unknown or its
// constructor rejects the arguments. Append errors stay on the node.
func (f *Factory) MustCreate(class string, args ...any) *Node {
	ctorArgs, rest := splitArgs(args)
	obj, err := f.Registry.Create(class, ctorArgs...)
	if err != nil {
		panic(fmt.Errorf("build: %w", err))
	}
	return Wrap(obj).Append(rest...)
}

// splitArgs separates a leading Args value from the values to append.
func splitArgs(args []any) (Args, []any) {
	if len(args) > 0 {
		if a, ok := args[0].(Args); ok {
			return a, args[1:]
		}
	}
	return nil, args
}

// Create uses the built-in classes.
func Create(class string, args ...any) (*Node, error) {
	return defaultFactory.Create(class, args...)
}

// MustCreate uses the built-in classes.
func MustCreate(class string, args ...any) *Node {
	return defaultFactory.MustCreate(class, args...)
}

func Scene(args ...any) *Node             { return MustCreate("Scene", args...) }
func Group(args ...any) *Node             { return MustCreate("Group", args...) }
func AmbientLight(args ...any) *Node      { return MustCreate("AmbientLight", args...) }
func PerspectiveCamera(args ...any) *Node { return MustCreate("PerspectiveCamera", args...) }
func Part(args ...any) *Node              { return MustCreate("Part", args...) }
func Model(args ...any) *Node             { return MustCreate("Model", args...) }

// GLTF returns an empty Group right away and asks loader to attach the
// asset at path to it. Load failures are logged by the loader, never returned.
func GLTF(loader *asset.Loader, path string, args ...any) *Node {
	group := Group(args...)
	loader.Attach(group.Object(), path)
	return group
}
