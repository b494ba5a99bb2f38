// Package app wires configuration, assets, a surface and the clock face
// together for the command entry points.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kjkrol/glclock/assets"
	"github.com/kjkrol/glclock/internal/config"
	"github.com/kjkrol/glclock/pkg/asset"
	"github.com/kjkrol/glclock/pkg/clock"
	"github.com/kjkrol/glclock/pkg/clockface"
	"github.com/kjkrol/glclock/pkg/gfx"
)

// AssetSource picks where shaders come from: HTTP when a base URL is set,
// a directory when one is set, the embedded pair otherwise.
func AssetSource(cfg config.ShadersConfig) asset.Source {
	switch {
	case cfg.BaseURL != "":
		return asset.NewHTTP(cfg.BaseURL)
	case cfg.Dir != "":
		return asset.NewFS(os.DirFS(cfg.Dir))
	default:
		return asset.NewFS(assets.FS)
	}
}

// Run performs the startup sequence on surface and drives the clock until
// ctx is done or the surface closes. Startup errors abort before the loop.
func Run(ctx context.Context, surface gfx.Surface, cfg config.Config, src asset.Source, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	width, height := surface.Size()

	face, err := clockface.Setup(ctx, surface.Context(), width, height, clockface.Options{
		Assets:       src,
		VertexPath:   cfg.Shaders.Vertex,
		FragmentPath: cfg.Shaders.Fragment,
		Clear:        cfg.Render.Clear,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer face.Close()
	surface.OnResize(face.Resize)

	loop := clockface.NewLoop(face, clock.System, cfg.Render.Tick.Duration(), cfg.Driver(), logger)
	logger.Info("clock running", "driver", loop.Driver().String(), "tick", cfg.Render.Tick.Duration())

	err = surface.Run(ctx, loop)
	ticks, frames := loop.Stats()
	logger.Info("clock stopped", "ticks", ticks, "frames", frames)
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
