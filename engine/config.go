package engine

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/bloxown/bo3-scene/engine/asset"
	"github.com/bloxown/bo3-scene/engine/renderer"
	"github.com/bloxown/bo3-scene/internal/logger"
)

// Config holds the engine settings.
type Config struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int

	// Applied when the engine starts running.
	PixelRatio float32
	ClearColor color.Color
	ClearAlpha float32

	// ReadyPoll is how often Start checks the surface for readiness.
	ReadyPoll time.Duration
}

// DefaultConfig returns an 800x600 window at 60 FPS, pixel ratio 1 and a
// transparent black clear colour.
func DefaultConfig() Config {
	return Config{
		Title:      "bo3-scene",
		Width:      800,
		Height:     600,
		TargetFPS:  60,
		PixelRatio: 1,
		ClearColor: color.Black,
		ClearAlpha: 0,
		ReadyPoll:  10 * time.Millisecond,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithSurface sets the window the engine opens and draws to. Required.
func WithSurface(s renderer.Surface) Option {
	return func(e *Engine) { e.surface = s }
}

// WithLoader sets the asset loader drained every frame.
func WithLoader(l *asset.Loader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(e *Engine) { e.cfg = c }
}

func WithTitle(title string) Option {
	return func(e *Engine) { e.cfg.Title = title }
}

func WithSize(width, height int) Option {
	return func(e *Engine) { e.cfg.Width, e.cfg.Height = width, height }
}

func WithTargetFPS(fps int) Option {
	return func(e *Engine) { e.cfg.TargetFPS = fps }
}

func WithPixelRatio(ratio float32) Option {
	return func(e *Engine) { e.cfg.PixelRatio = ratio }
}

// SetLogger configures the logger used by the engine and its sub-packages.
// It defaults to slog.Default(); pass nil to silence logging.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logger.Get()
}
