//go:build !js

package platform

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/kjkrol/glclock/internal/renderer"
	"github.com/kjkrol/glclock/pkg/gfx"
)

func init() {
	// glfw and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type glfwWindow struct {
	window     *glfw.Window
	ctx        gfx.Context
	width      int
	height     int
	onResize   func(width, height int)
	frameDelay time.Duration // paces Run when vsync is off
	logger     *slog.Logger
}

const defaultRefresh = time.Second / 60

// NewWindow opens a window with a current OpenGL 3.3 core context. It must be
// called from the main goroutine.
func NewWindow(conf WindowConfig, logger *slog.Logger) (gfx.Surface, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if conf.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	gctx, err := renderer.NewGL()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	w := &glfwWindow{window: window, ctx: gctx, logger: logger}
	if !conf.VSync {
		w.frameDelay = defaultRefresh
	}
	w.width, w.height = window.GetFramebufferSize()
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	logger.Info("window opened", "gl", renderer.Version(), "width", w.width, "height", w.height)
	return w, nil
}

func (w *glfwWindow) Context() gfx.Context {
	return w.ctx
}

func (w *glfwWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *glfwWindow) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

// Run serializes both triggers on one frame loop: the driver decides per
// refresh whether the tick is due.
func (w *glfwWindow) Run(ctx context.Context, d gfx.Driver) error {
	nextFrame := time.Now()
	for !w.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if w.frameDelay > 0 {
			if wait := time.Until(nextFrame); wait > 0 {
				glfw.WaitEventsTimeout(wait.Seconds())
				continue
			}
			nextFrame = time.Now().Add(w.frameDelay)
		}
		glfw.PollEvents()
		d.Step()
		w.window.SwapBuffers()
	}
	w.logger.Info("window closed")
	return nil
}

func (w *glfwWindow) Close() {
	if w.window == nil {
		return
	}
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
}
