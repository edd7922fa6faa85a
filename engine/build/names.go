package build

import (
	"fmt"

	"github.com/bloxown/bo3-scene/engine/graph"
)

// GraphClass binds a short factory name to a class.
type GraphClass struct {
	Class string
	Name  string
}

// GraphClasses lists the classes reachable by short name.
var GraphClasses = []GraphClass{
	{Class: "Scene", Name: "scene"},
	{Class: "Group", Name: "group"},
	{Class: "AmbientLight", Name: "ambientLight"},
	{Class: "PerspectiveCamera", Name: "perspectiveCamera"},
	{Class: "Part", Name: "part"},
	{Class: "Model", Name: "model"},
}

// FactoryFunc builds a node of a bound class.
type FactoryFunc func(args ...any) *Node

// Funcs returns one factory function per GraphClasses entry, keyed by short
// name, creating from reg (the built-in classes when reg is nil).
func Funcs(reg *graph.Registry) map[string]FactoryFunc {
	f := NewFactory(reg)
	out := make(map[string]FactoryFunc, len(GraphClasses))
	for _, gc := range GraphClasses {
		class := gc.Class
		out[gc.Name] = func(args ...any) *Node {
			return f.MustCreate(class, args...)
		}
	}
	return out
}

// ByName creates a node from a short name such as "group".
func ByName(name string, args ...any) (*Node, error) {
	for _, gc := range GraphClasses {
		if gc.Name == name {
			return Create(gc.Class, args...)
		}
	}
	return nil, fmt.Errorf("%w: short name %q", graph.ErrUnknownClass, name)
}
