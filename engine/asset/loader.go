// Package asset loads external 3D assets in the background and attaches them
// to placeholder nodes on the goroutine that owns the scene graph.
package asset

import (
	"context"
	"sync"

	"github.com/bloxown/bo3-scene/engine/graph"
	"github.com/bloxown/bo3-scene/internal/logger"
)

// LoadFunc loads the asset at path into a sub-scene.
type LoadFunc func(ctx context.Context, path string) (graph.Object, error)

// Loaded is emitted for every successful load.
type Loaded struct {
	Path        string
	Placeholder graph.Object
	Root        graph.Object
}

// Loader runs loads in goroutines. Results are queued on Events and only
// attached when the owner of the graph calls Drain, so the graph is never
// mutated from a load goroutine.
type Loader struct {
	load LoadFunc

	// Events carries finished loads; consume it through Drain.
	Events chan Loaded

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Loader.
type Option func(*Loader)

// WithLoadFunc replaces the default glTF loader.
func WithLoadFunc(fn LoadFunc) Option {
	return func(l *Loader) {
		if fn != nil {
			l.load = fn
		}
	}
}

// WithEventBuffer sets the capacity of Events. Defaults to 64.
func WithEventBuffer(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.Events = make(chan Loaded, n)
		}
	}
}

// NewLoader creates a loader using LoadGLTF unless overridden.
func NewLoader(opts ...Option) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		load:   LoadGLTF,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.Events == nil {
		l.Events = make(chan Loaded, 64)
	}
	return l
}

// Attach starts loading path and returns immediately. On success the loaded
// root is queued for placeholder; on failure the error is logged and the
// placeholder is left untouched.
func (l *Loader) Attach(placeholder graph.Object, path string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		root, err := l.load(l.ctx, path)
		if err != nil {
			logger.Get().Error("could not load gltf", "path", path, "error", err)
			return
		}
		if root == nil {
			return
		}
		select {
		case l.Events <- Loaded{Path: path, Placeholder: placeholder, Root: root}:
		case <-l.ctx.Done():
		}
	}()
}

// Drain attaches every queued load to its placeholder without blocking and
// returns how many were attached. Call it from the goroutine that owns the graph.
func (l *Loader) Drain() int {
	n := 0
	for {
		select {
		case ev := <-l.Events:
			if err := ev.Placeholder.Add(ev.Root); err != nil {
				logger.Get().Error("could not attach gltf", "path", ev.Path, "error", err)
				continue
			}
			logger.Get().Debug("attached gltf", "path", ev.Path, "placeholder", ev.Placeholder.GetFullName())
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every started load has either failed or been queued.
// Loads block while Events is full, so drain concurrently when starting more
// loads than the buffer holds.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels outstanding loads and waits for their goroutines.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
