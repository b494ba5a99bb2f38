package app_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/glclock/assets"
	"github.com/kjkrol/glclock/internal/app"
	"github.com/kjkrol/glclock/internal/config"
	"github.com/kjkrol/glclock/pkg/asset"
	"github.com/kjkrol/glclock/pkg/gfx"
	"github.com/kjkrol/glclock/pkg/gfx/gfxtest"
)

// fakeSurface runs a fixed number of refreshes and resizes once midway.
type fakeSurface struct {
	gctx     *gfxtest.Context
	frames   int
	onResize func(int, int)
	closed   bool
}

func (s *fakeSurface) Context() gfx.Context { return s.gctx }

func (s *fakeSurface) Size() (int, int) { return 320, 240 }

func (s *fakeSurface) OnResize(fn func(int, int)) { s.onResize = fn }

func (s *fakeSurface) Run(_ context.Context, d gfx.Driver) error {
	for i := 0; i < s.frames; i++ {
		if i == s.frames/2 && s.onResize != nil {
			s.onResize(640, 480)
		}
		d.Step()
	}
	return nil
}

func (s *fakeSurface) Close() { s.closed = true }

func TestRun_FrameDriverDrawsEveryRefresh(t *testing.T) {
	surface := &fakeSurface{gctx: gfxtest.New(), frames: 10}
	cfg := config.Default()
	cfg.Render.Driver = "frame"
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	err := app.Run(context.Background(), surface, cfg, app.AssetSource(cfg.Shaders), logger)

	require.NoError(t, err)
	assert.Len(t, surface.gctx.Draws, 10)
	assert.Equal(t, [4]int{0, 0, 640, 480}, surface.gctx.ViewportRect)
	assert.Equal(t, 0, surface.gctx.LivePrograms(), "face is released when the loop ends")
	assert.Equal(t, 0, surface.gctx.LiveBuffers())
	assert.Contains(t, logs.String(), "driver=frame")
	assert.Contains(t, logs.String(), "frames=10")
}

func TestRun_IntervalDriverWaitsForFirstTick(t *testing.T) {
	surface := &fakeSurface{gctx: gfxtest.New(), frames: 5}
	cfg := config.Default()
	cfg.Render.Tick = config.Duration(time.Hour)

	err := app.Run(context.Background(), surface, cfg, app.AssetSource(cfg.Shaders), nil)

	require.NoError(t, err)
	assert.Empty(t, surface.gctx.Draws)
}

func TestRun_StartupFailure(t *testing.T) {
	surface := &fakeSurface{gctx: gfxtest.New(), frames: 5}
	cfg := config.Default()
	cfg.Shaders.Fragment = "shaders/missing.frag"
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	err := app.Run(context.Background(), surface, cfg, app.AssetSource(cfg.Shaders), logger)

	require.ErrorIs(t, err, asset.ErrAssetFetch)
	assert.Contains(t, err.Error(), "startup")
	assert.Empty(t, surface.gctx.Calls)
	assert.NotContains(t, logs.String(), "level=ERROR", "the caller reports the returned error once")
}

func TestRun_CompileFailureIsReturnedNotLogged(t *testing.T) {
	surface := &fakeSurface{gctx: gfxtest.New(), frames: 5}
	cfg := config.Default()
	cfg.Shaders.Fragment = "broken.frag"
	src := asset.NewFS(fstest.MapFS{
		assets.VertexShader: {Data: []byte("in vec2 a_position;\nvoid main() { gl_Position = vec4(a_position, 0.0, 1.0); }\n")},
		"broken.frag":       {Data: []byte("void main() { outColor = vec4(1.0; }\n")},
	})
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	err := app.Run(context.Background(), surface, cfg, src, logger)

	var compileErr *gfx.ShaderCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, gfx.FragmentStage, compileErr.Stage)
	assert.Empty(t, surface.gctx.Draws)
	assert.NotContains(t, logs.String(), "level=ERROR")
}

func TestAssetSource(t *testing.T) {
	ctx := context.Background()

	embedded, err := app.AssetSource(config.ShadersConfig{}).Fetch(ctx, assets.VertexShader)
	require.NoError(t, err)
	assert.Contains(t, embedded, "a_position")

	dir, err := app.AssetSource(config.ShadersConfig{Dir: "../../assets"}).Fetch(ctx, assets.FragmentShader)
	require.NoError(t, err)
	assert.Contains(t, dir, "u_timeInput")

	srv := httptest.NewServer(http.FileServer(http.FS(assets.FS)))
	defer srv.Close()
	remote, err := app.AssetSource(config.ShadersConfig{BaseURL: srv.URL, Dir: "ignored"}).Fetch(ctx, assets.VertexShader)
	require.NoError(t, err)
	assert.Equal(t, embedded, remote)
}
