package graph

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"sync"
)

var (
	// ErrUnknownClass is returned for class names with no registered constructor.
	ErrUnknownClass = errors.New("graph: unknown class")
	// ErrTooManyArgs is returned when a constructor gets more arguments than it takes.
	ErrTooManyArgs = errors.New("graph: too many constructor arguments")
)

// Constructor builds a new object from positional constructor arguments.
// Constructors must return a non-nil Object when err is nil.
type Constructor func(args ...any) (Object, error)

// builtin is the fixed class table every Registry starts from.
var builtin = map[string]Constructor{
	"Scene":             newSceneArgs,
	"Group":             newGroupArgs,
	"AmbientLight":      newAmbientLightArgs,
	"PerspectiveCamera": newPerspectiveCameraArgs,
	"Part":              newPartArgs,
	"Model":             newModelArgs,
}

// Registry maps class names to constructors.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]Constructor
}

// NewRegistry returns a registry holding the built-in classes.
func NewRegistry() *Registry {
	r := &Registry{classes: make(map[string]Constructor, len(builtin))}
	for name, ctor := range builtin {
		r.classes[name] = ctor
	}
	return r
}

// RegisterClass registers ctor under className, replacing any previous entry.
func (r *Registry) RegisterClass(className string, ctor Constructor) error {
	if className == "" || ctor == nil {
		return errors.New("graph: invalid className or constructor")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[className] = ctor
	return nil
}

// Create constructs className with args.
func (r *Registry) Create(className string, args ...any) (Object, error) {
	r.mu.RLock()
	ctor, ok := r.classes[className]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, className)
	}
	obj, err := ctor(args...)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", className, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("construct %s: constructor returned nil", className)
	}
	return obj, nil
}

// ListRegistered returns the registered class names, sorted.
func (r *Registry) ListRegistered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for k := range r.classes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func maxArgs(args []any, n int) error {
	if len(args) > n {
		return fmt.Errorf("%w: got %d, want at most %d", ErrTooManyArgs, len(args), n)
	}
	return nil
}

func newSceneArgs(args ...any) (Object, error) {
	if err := maxArgs(args, 0); err != nil {
		return nil, err
	}
	return NewScene(), nil
}

func newGroupArgs(args ...any) (Object, error) {
	if err := maxArgs(args, 0); err != nil {
		return nil, err
	}
	return NewGroup(), nil
}

// AmbientLight(color, intensity)
func newAmbientLightArgs(args ...any) (Object, error) {
	if err := maxArgs(args, 2); err != nil {
		return nil, err
	}
	l := NewAmbientLight(color.RGBA{255, 255, 255, 255}, 1)
	keys := []string{"color", "intensity"}
	for i, a := range args {
		if err := l.SetAttr(keys[i], a); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// PerspectiveCamera(fov, aspect, near, far)
func newPerspectiveCameraArgs(args ...any) (Object, error) {
	if err := maxArgs(args, 4); err != nil {
		return nil, err
	}
	c := NewPerspectiveCamera(50, 1, 0.1, 2000)
	keys := []string{"fov", "aspect", "near", "far"}
	for i, a := range args {
		if err := c.SetAttr(keys[i], a); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Part(primitive, size, color)
func newPartArgs(args ...any) (Object, error) {
	if err := maxArgs(args, 3); err != nil {
		return nil, err
	}
	p := NewPart()
	keys := []string{"primitive", "size", "color"}
	for i, a := range args {
		if err := p.SetAttr(keys[i], a); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Model(path)
func newModelArgs(args ...any) (Object, error) {
	if err := maxArgs(args, 1); err != nil {
		return nil, err
	}
	m := NewModel("")
	if len(args) == 1 {
		if err := m.SetAttr("path", args[0]); err != nil {
			return nil, err
		}
	}
	return m, nil
}
