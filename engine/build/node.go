// Package build assembles scene graphs by chaining constructor calls.
//
//	scene := build.Scene(
//		build.AmbientLight(build.Args{"white", 0.4}),
//		build.Group(build.Attrs{"name": "rig", "position": mgl32.Vec3{0, 1, 0}},
//			build.Part(build.Attrs{"color": "red"}),
//		),
//	)
//	build.Part().AppendTo(scene.Child("rig"))
//
// A leading Args value is forwarded to the class constructor. Every other
// argument is handed to Append: Attrs are merged into the object, nodes and
// graph objects become children, nil is ignored.
package build

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/bloxown/bo3-scene/engine/graph"
)

// ErrBadAppend is recorded when Append receives a value it cannot attach.
var ErrBadAppend = errors.New("build: cannot append value")

// Args holds positional constructor arguments. It is only honoured as the
// first argument of a factory call.
type Args []any

// Attrs is an attribute bag merged shallowly into an object.
type Attrs map[string]any

// Node wraps a graph object with chaining helpers. The first error raised
// while appending is kept and reported by Err.
type Node struct {
	obj graph.Object
	err error
}

// Wrap returns a Node around an existing object.
func Wrap(obj graph.Object) *Node {
	return &Node{obj: obj}
}

// Object returns the wrapped graph object.
func (n *Node) Object() graph.Object {
	return n.obj
}

// Err returns the first append error, if any.
func (n *Node) Err() error {
	return n.err
}

func (n *Node) fail(err error) {
	if n.err == nil {
		n.err = err
	}
}

// AppendTo adds n to parent's children and returns n.
func (n *Node) AppendTo(parent *Node) *Node {
	if parent == nil {
		return n
	}
	if err := parent.obj.Add(n.obj); err != nil {
		n.fail(err)
	}
	return n
}

// AppendToObject adds n to a raw graph object and returns n.
func (n *Node) AppendToObject(parent graph.Object) *Node {
	if parent == nil {
		return n
	}
	if err := parent.Add(n.obj); err != nil {
		n.fail(err)
	}
	return n
}

// Append attaches each item in order and returns n. nil items are skipped,
// Attrs and map[string]any are merged as attributes, *Node and graph.Object
// values are added as children. Anything else records ErrBadAppend.
func (n *Node) Append(items ...any) *Node {
	for _, item := range items {
		n.append(item)
	}
	return n
}

func (n *Node) append(item any) {
	switch v := item.(type) {
	case nil:
	case Attrs:
		n.SetAttrs(v)
	case map[string]any:
		n.SetAttrs(v)
	case *Node:
		if v == nil {
			return
		}
		n.AppendChild(v)
	case graph.Object:
		if isNilObject(v) {
			return
		}
		if err := n.obj.Add(v); err != nil {
			n.fail(err)
		}
	default:
		n.fail(fmt.Errorf("%w: %T", ErrBadAppend, item))
	}
}

// AppendChild adds child to n's children and returns n.
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil {
		return n
	}
	if err := n.obj.Add(child.obj); err != nil {
		n.fail(err)
	}
	return n
}

// SetAttrs merges attrs into the wrapped object and returns n. Keys are
// applied in sorted order, except lookAt which goes last so it sees the
// final position.
func (n *Node) SetAttrs(attrs map[string]any) *Node {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == "lookAt") != (keys[j] == "lookAt") {
			return keys[j] == "lookAt"
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if err := n.obj.SetAttr(k, attrs[k]); err != nil {
			n.fail(fmt.Errorf("%s: %w", n.obj.GetClassName(), err))
		}
	}
	return n
}

// Attr reads an attribute of the wrapped object.
func (n *Node) Attr(key string) (any, bool) {
	return n.obj.GetAttr(key)
}

// Children wraps the object's children.
func (n *Node) Children() []*Node {
	children := n.obj.GetChildren()
	out := make([]*Node, len(children))
	for i, c := range children {
		out[i] = Wrap(c)
	}
	return out
}

// Child returns the first direct child called name, or nil.
func (n *Node) Child(name string) *Node {
	if c := n.obj.FindFirstChild(name); c != nil {
		return Wrap(c)
	}
	return nil
}

// isNilObject reports typed-nil pointers stored in a graph.Object.
func isNilObject(o graph.Object) bool {
	rv := reflect.ValueOf(o)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
