//go:build js && wasm

package platform

import (
	"context"
	"errors"
	"log/slog"
	"syscall/js"

	"github.com/kjkrol/glclock/internal/renderer"
	"github.com/kjkrol/glclock/pkg/gfx"
)

type canvasSurface struct {
	canvas   js.Value
	ctx      gfx.Context
	width    int
	height   int
	onResize func(width, height int)
	logger   *slog.Logger

	funcs []js.Func
}

// NewCanvas binds to the canvas with the given element id, creating one
// sized from conf when the page has none, and obtains a WebGL2 context.
func NewCanvas(id string, conf WindowConfig, logger *slog.Logger) (gfx.Surface, error) {
	if logger == nil {
		logger = slog.Default()
	}
	doc := js.Global().Get("document")
	if conf.Title != "" {
		doc.Set("title", conf.Title)
	}

	canvas := doc.Call("getElementById", id)
	if canvas.IsNull() {
		canvas = doc.Call("createElement", "canvas")
		canvas.Set("id", id)
		canvas.Set("width", conf.Width)
		canvas.Set("height", conf.Height)
		doc.Get("body").Call("appendChild", canvas)
	}

	glValue := canvas.Call("getContext", "webgl2")
	if glValue.IsNull() || glValue.IsUndefined() {
		return nil, errors.New("webgl2 is not available")
	}
	gctx, err := renderer.NewWebGL(glValue)
	if err != nil {
		return nil, err
	}

	s := &canvasSurface{
		canvas: canvas,
		ctx:    gctx,
		width:  canvas.Get("width").Int(),
		height: canvas.Get("height").Int(),
		logger: logger,
	}
	logger.Info("canvas bound", "id", id, "width", s.width, "height", s.height)
	return s, nil
}

func (s *canvasSurface) Context() gfx.Context {
	return s.ctx
}

func (s *canvasSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *canvasSurface) OnResize(fn func(width, height int)) {
	s.onResize = fn
}

func (s *canvasSurface) syncSize() {
	width := s.canvas.Get("width").Int()
	height := s.canvas.Get("height").Int()
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	if s.onResize != nil {
		s.onResize(width, height)
	}
}

// Run installs the two browser triggers: a setInterval timer calling Tick and
// a requestAnimationFrame chain calling Frame. Both run on the JS event loop,
// so they never overlap.
func (s *canvasSurface) Run(ctx context.Context, d gfx.Driver) error {
	global := js.Global()

	var intervalID js.Value
	if interval := d.TickInterval(); interval > 0 {
		tick := js.FuncOf(func(js.Value, []js.Value) any {
			d.Tick()
			return nil
		})
		s.funcs = append(s.funcs, tick)
		intervalID = global.Call("setInterval", tick, interval.Milliseconds())
	}

	var frameID js.Value
	var frame js.Func
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		s.syncSize()
		d.Frame()
		frameID = global.Call("requestAnimationFrame", frame)
		return nil
	})
	s.funcs = append(s.funcs, frame)
	frameID = global.Call("requestAnimationFrame", frame)

	<-ctx.Done()

	if !intervalID.IsUndefined() {
		global.Call("clearInterval", intervalID)
	}
	global.Call("cancelAnimationFrame", frameID)
	return ctx.Err()
}

func (s *canvasSurface) Close() {
	for i := range s.funcs {
		s.funcs[i].Release()
	}
	s.funcs = nil
}
