//go:build js && wasm

// Command clock-wasm draws the clock face on a page canvas through WebGL2.
// Shaders are fetched from the serving origin.
package main

import (
	"context"
	"os"
	"syscall/js"

	"github.com/kjkrol/glclock/internal/app"
	"github.com/kjkrol/glclock/internal/config"
	"github.com/kjkrol/glclock/internal/logging"
	"github.com/kjkrol/glclock/internal/platform"
)

const canvasID = "app"

func main() {
	cfg := config.Default()
	if origin := js.Global().Get("location").Get("origin"); origin.Type() == js.TypeString {
		cfg.Shaders.BaseURL = origin.String()
	}
	if q := js.Global().Get("location").Get("search"); q.Type() == js.TypeString {
		params := js.Global().Get("URLSearchParams").New(q)
		if d := params.Call("get", "driver"); d.Type() == js.TypeString {
			cfg.Render.Driver = d.String()
		}
	}
	logger := logging.New(cfg.Log, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return
	}

	surface, err := platform.NewCanvas(canvasID, platform.WindowConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}, logger)
	if err != nil {
		logger.Error("bind canvas", "err", err)
		return
	}
	defer surface.Close()

	if err := app.Run(context.Background(), surface, cfg, app.AssetSource(cfg.Shaders), logger); err != nil {
		logger.Error("clock failed", "err", err)
	}
}
