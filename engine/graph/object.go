// Package graph implements the scene graph: a tree of objects with local
// transforms, cached world matrices and per-class attributes.
package graph

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrCycle is returned when adding an object would make it its own ancestor.
var ErrCycle = errors.New("graph: object cannot be a descendant of itself")

// Object is the interface all scene graph classes implement.
// Embed *Object3D to get the tree and transform behaviour.
type Object interface {
	// Basic
	GetName() string
	SetName(string)
	GetClassName() string

	// Parent/child management
	GetParent() Object
	GetChildren() []Object
	Add(child Object) error
	Remove(child Object)
	RemoveFromParent()
	FindFirstChild(name string) Object
	FindFirstChildOfClass(className string) Object

	// Recursive helpers
	GetFullName() string
	GetDescendants() []Object
	GetAllOfType(className string) []Object
	Traverse(fn func(Object) bool)
	PrintHierarchy(w io.Writer, depth int)

	// Transform
	Base() *Object3D
	UpdateMatrixWorld()

	// Attributes
	SetAttr(key string, value any) error
	GetAttr(key string) (any, bool)
}

// Object3D is the default Object implementation. Classes embed it and call
// Init with themselves so recursive helpers can hand out the concrete type.
// A zero Object3D that was never initialised still works, but reports itself
// as *Object3D.
type Object3D struct {
	mu        sync.Mutex // protects parent and children
	name      string
	className string
	parent    Object
	children  []Object
	this      Object

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Visible  bool

	matrixWorld mgl32.Mat4
	userData    map[string]any
}

// Init sets the defaults and records this as the concrete object embedding b.
// Classes defined outside this package call it from their constructor:
//
//	type Lamp struct{ graph.Object3D }
//
//	func NewLamp() *Lamp {
//		l := &Lamp{}
//		l.Init(l, "Lamp")
//		return l
//	}
func (b *Object3D) Init(this Object, className string) {
	b.name = className
	b.className = className
	b.children = make([]Object, 0)
	b.this = this
	b.Rotation = mgl32.QuatIdent()
	b.Scale = mgl32.Vec3{1, 1, 1}
	b.Visible = true
	b.matrixWorld = mgl32.Ident4()
	b.userData = make(map[string]any)
}

// self returns the concrete object, or b when Init was never called.
func (b *Object3D) self() Object {
	if b.this != nil {
		return b.this
	}
	return b
}

// Base returns the embedded Object3D.
func (b *Object3D) Base() *Object3D {
	return b
}

// --- Basic getters/setters ---
func (b *Object3D) GetName() string {
	return b.name
}

func (b *Object3D) SetName(name string) {
	b.name = name
}

func (b *Object3D) GetClassName() string {
	return b.className
}

// UserData holds attributes the class does not model itself.
func (b *Object3D) UserData() map[string]any {
	if b.userData == nil {
		b.userData = make(map[string]any)
	}
	return b.userData
}

// --- Parent & children ---
func (b *Object3D) GetParent() Object {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.parent
}

func (b *Object3D) GetChildren() []Object {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]Object, len(b.children))
	copy(cp, b.children)
	return cp
}

// Add makes child a child of b, detaching it from its previous parent first.
// Adding a nil object or b itself is a no-op.
func (b *Object3D) Add(child Object) error {
	if child == nil || child.Base() == b {
		return nil
	}
	for p := b.self(); p != nil; p = p.GetParent() {
		if p.Base() == child.Base() {
			return fmt.Errorf("add %s to %s: %w", child.GetName(), b.name, ErrCycle)
		}
	}

	child.RemoveFromParent()

	cb := child.Base()
	cb.mu.Lock()
	cb.parent = b.self()
	cb.mu.Unlock()

	b.mu.Lock()
	b.children = append(b.children, child)
	b.mu.Unlock()
	return nil
}

// Remove detaches child if it is a direct child of b.
func (b *Object3D) Remove(child Object) {
	if child == nil {
		return
	}
	if !b.removeChild(child) {
		return
	}
	cb := child.Base()
	cb.mu.Lock()
	cb.parent = nil
	cb.mu.Unlock()
}

// RemoveFromParent detaches b from its parent, if any.
func (b *Object3D) RemoveFromParent() {
	if p := b.GetParent(); p != nil {
		p.Remove(b.self())
	}
}

func (b *Object3D) removeChild(child Object) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for idx, c := range b.children {
		if c.Base() == child.Base() {
			b.children = append(b.children[:idx], b.children[idx+1:]...)
			return true
		}
	}
	return false
}

func (b *Object3D) FindFirstChild(name string) Object {
	for _, c := range b.GetChildren() {
		if c.GetName() == name {
			return c
		}
	}
	return nil
}

func (b *Object3D) FindFirstChildOfClass(className string) Object {
	for _, c := range b.GetChildren() {
		if c.GetClassName() == className {
			return c
		}
	}
	return nil
}

// --- full name ---
func (b *Object3D) GetFullName() string {
	p := b.GetParent()
	if p == nil {
		return b.name
	}
	return p.GetFullName() + "." + b.name
}

// GetDescendants returns children, grandchildren and so on in depth-first order.
func (b *Object3D) GetDescendants() []Object {
	var descendants []Object
	for _, child := range b.GetChildren() {
		descendants = append(descendants, child)
		descendants = append(descendants, child.GetDescendants()...)
	}
	return descendants
}

// GetAllOfType returns every object of className in the subtree, b included.
func (b *Object3D) GetAllOfType(className string) []Object {
	var result []Object
	b.Traverse(func(o Object) bool {
		if o.GetClassName() == className {
			result = append(result, o)
		}
		return true
	})
	return result
}

// Traverse calls fn for b and its descendants, parents first.
// Returning false from fn skips that object's subtree.
func (b *Object3D) Traverse(fn func(Object) bool) {
	if !fn(b.self()) {
		return
	}
	for _, c := range b.GetChildren() {
		c.Traverse(fn)
	}
}

// PrintHierarchy writes the subtree rooted at b, one object per line.
func (b *Object3D) PrintHierarchy(w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s (%s)\n", indent, b.GetName(), b.GetClassName())
	for _, child := range b.GetChildren() {
		child.PrintHierarchy(w, depth+1)
	}
}

// FindByPath resolves a dot-separated path such as "Scene.Rig.Camera".
// The first segment may name root itself or one of its children.
func FindByPath(root Object, path string) Object {
	if root == nil || path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	cur := root
	if cur.GetName() != parts[0] {
		cur = root.FindFirstChild(parts[0])
	}
	for _, part := range parts[1:] {
		if cur == nil {
			return nil
		}
		cur = cur.FindFirstChild(part)
	}
	return cur
}
