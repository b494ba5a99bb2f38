package clockface_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/glclock/assets"
	"github.com/kjkrol/glclock/pkg/asset"
	"github.com/kjkrol/glclock/pkg/clock"
	"github.com/kjkrol/glclock/pkg/clockface"
	"github.com/kjkrol/glclock/pkg/gfx"
	"github.com/kjkrol/glclock/pkg/gfx/gfxtest"
)

func embeddedOptions() clockface.Options {
	return clockface.Options{
		Assets:       asset.NewFS(assets.FS),
		VertexPath:   assets.VertexShader,
		FragmentPath: assets.FragmentShader,
		Clear:        [4]float32{0, 0, 0, 1},
	}
}

func TestSetup_DrawsOncePerTickWithClockUniform(t *testing.T) {
	gctx := gfxtest.New()

	face, err := clockface.Setup(context.Background(), gctx, 800, 600, embeddedOptions())
	require.NoError(t, err)
	defer face.Close()

	p := face.Program()
	assert.True(t, p.Position.Valid())
	assert.Equal(t, [4]int{0, 0, 800, 600}, gctx.ViewportRect)
	assert.Equal(t, 1, gctx.Clears)
	assert.Equal(t, []float32{800, 600}, gctx.UniformValue(p.Handle(), p.Resolution))
	w, h := face.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	src := &manualClock{now: at(14, 5, 30)}
	loop := clockface.NewLoop(face, src, time.Second, clockface.IntervalDriver, nil)
	loop.Tick()
	src.Advance(time.Second)
	loop.Tick()

	require.Len(t, gctx.Draws, 2)
	assert.Equal(t, []float32{2, 5, 30}, gctx.Draws[0].Uniforms[p.Time])
	assert.Equal(t, []float32{2, 5, 31}, gctx.Draws[1].Uniforms[p.Time])
	for _, d := range gctx.Draws {
		assert.Equal(t, p.Handle(), d.Program)
		assert.Equal(t, 6, d.Count)
		assert.Equal(t, []float32{800, 600}, d.Uniforms[p.Resolution])
	}
}

func TestSetup_FragmentSyntaxErrorAbortsBeforeUpload(t *testing.T) {
	gctx := gfxtest.New()
	opts := embeddedOptions()
	opts.Assets = asset.NewFS(fstest.MapFS{
		"vertex.glsl": {Data: []byte("#version 300 es\nin vec2 a_position;\nvoid main() { gl_Position = vec4(a_position, 0.0, 1.0); }\n")},
		"circle.frag": {Data: []byte("#version 300 es\nvoid main() { outColor = vec4(1.0;\n")},
	})
	opts.VertexPath = "vertex.glsl"
	opts.FragmentPath = "circle.frag"

	face, err := clockface.Setup(context.Background(), gctx, 800, 600, opts)

	assert.Nil(t, face)
	require.ErrorIs(t, err, gfx.ErrShaderCompile)
	var compileErr *gfx.ShaderCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, gfx.FragmentStage, compileErr.Stage)
	assert.False(t, gctx.Called("LinkProgram"))
	assert.False(t, gctx.Called("CreateBuffer"))
	assert.Empty(t, gctx.Uploads)
	assert.Equal(t, 0, gctx.LiveShaders())
}

func TestSetup_MissingAssetAbortsBeforeCompile(t *testing.T) {
	gctx := gfxtest.New()
	opts := embeddedOptions()
	opts.FragmentPath = "shaders/missing.frag"

	_, err := clockface.Setup(context.Background(), gctx, 800, 600, opts)

	require.ErrorIs(t, err, asset.ErrAssetFetch)
	assert.Empty(t, gctx.Calls)
}

func TestSetup_LinkFailureReleasesEverything(t *testing.T) {
	gctx := gfxtest.New()
	gctx.LinkError = func(_, _ string) string { return "ERROR: link" }

	_, err := clockface.Setup(context.Background(), gctx, 800, 600, embeddedOptions())

	require.ErrorIs(t, err, gfx.ErrProgramLink)
	assert.Equal(t, 0, gctx.LiveShaders())
	assert.Equal(t, 0, gctx.LivePrograms())
	assert.False(t, gctx.Called("CreateBuffer"))
}

func TestFace_ResizeAndClose(t *testing.T) {
	gctx := gfxtest.New()
	face, err := clockface.Setup(context.Background(), gctx, 640, 480, embeddedOptions())
	require.NoError(t, err)
	p := face.Program()
	program := p.Handle()

	face.Resize(0, 100)
	assert.Equal(t, [4]int{0, 0, 640, 480}, gctx.ViewportRect, "degenerate sizes are ignored")

	face.Resize(1024, 768)
	assert.Equal(t, [4]int{0, 0, 1024, 768}, gctx.ViewportRect)
	assert.Equal(t, []float32{1024, 768}, gctx.UniformValue(program, p.Resolution))

	face.Draw(clock.Sample{Hours: 3, Minutes: 15, Seconds: 45})
	require.Len(t, gctx.Draws, 1)
	assert.Equal(t, []float32{3, 15, 45}, gctx.Draws[0].Uniforms[p.Time])

	face.Close()
	assert.Equal(t, 0, gctx.LivePrograms())
	assert.Equal(t, 0, gctx.LiveBuffers())
	assert.Equal(t, 0, gctx.LiveVertexArrays())
}
