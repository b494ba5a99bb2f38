// Package clockface assembles the shader clock: it fetches the shader pair,
// builds the program, uploads the quad and drives redraws from the clock.
package clockface

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kjkrol/glclock/pkg/asset"
	"github.com/kjkrol/glclock/pkg/clock"
	"github.com/kjkrol/glclock/pkg/gfx"
)

// Options configures Setup.
type Options struct {
	Assets       asset.Source
	VertexPath   string
	FragmentPath string
	// Clear is the color the surface is cleared to on resize.
	Clear  [4]float32
	Logger *slog.Logger
}

// Face owns the program and quad and draws one clock sample at a time.
type Face struct {
	ctx      gfx.Context
	program  *gfx.Program
	geometry *gfx.Geometry
	clear    [4]float32
	size     mgl32.Vec2
	logger   *slog.Logger
}

// Setup runs the startup sequence: wait for both shader texts, compile,
// link, upload the quad and size the viewport. Any failure aborts before
// the next step and releases what was already created.
func Setup(ctx context.Context, gctx gfx.Context, width, height int, opts Options) (*Face, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pair, err := asset.LoadPair(ctx, opts.Assets, logger, opts.VertexPath, opts.FragmentPath)
	if err != nil {
		return nil, fmt.Errorf("load shaders: %w", err)
	}

	program, err := gfx.BuildProgram(gctx, logger, pair.Vertex, pair.Fragment)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}

	f := &Face{
		ctx:      gctx,
		program:  program,
		geometry: gfx.UploadQuad(gctx, program),
		clear:    opts.Clear,
		logger:   logger,
	}
	f.Resize(width, height)
	logger.Info("clock face ready", "width", width, "height", height)
	return f, nil
}

func (f *Face) Program() *gfx.Program {
	return f.program
}

// Size returns the resolution last pushed to the shader.
func (f *Face) Size() (int, int) {
	return int(f.size.X()), int(f.size.Y())
}

// Resize sets the viewport, clears the surface and pushes the resolution
// uniform.
func (f *Face) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	f.size = mgl32.Vec2{float32(width), float32(height)}
	f.ctx.Viewport(0, 0, width, height)
	f.ctx.ClearColor(f.clear[0], f.clear[1], f.clear[2], f.clear[3])
	f.ctx.Clear()

	f.program.Use()
	f.geometry.Bind()
	f.ctx.Uniform2f(f.program.Resolution, f.size.X(), f.size.Y())
	f.logger.Debug("surface resized", "width", width, "height", height)
}

// Draw pushes s to the time uniform and draws the quad. Binding is repeated
// every call; it is idempotent.
func (f *Face) Draw(s clock.Sample) {
	f.program.Use()
	f.geometry.Bind()
	t := s.Vec3()
	f.ctx.Uniform3f(f.program.Time, t.X(), t.Y(), t.Z())
	f.geometry.Draw()
}

func (f *Face) Close() {
	f.geometry.Close()
	f.program.Close()
}
