package gfx_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/glclock/pkg/gfx"
	"github.com/kjkrol/glclock/pkg/gfx/gfxtest"
)

func linkedProgram(t *testing.T, ctx *gfxtest.Context) *gfx.Program {
	t.Helper()
	p, err := gfx.BuildProgram(ctx, nil, vertexSource, fragmentSource)
	require.NoError(t, err)
	return p
}

func triangleArea(a, b, c mgl32.Vec2) float32 {
	area := (b.X()-a.X())*(c.Y()-a.Y()) - (c.X()-a.X())*(b.Y()-a.Y())
	if area < 0 {
		area = -area
	}
	return area / 2
}

func TestQuadVertices_CoverClipSpace(t *testing.T) {
	v := gfx.QuadVertices
	require.Len(t, v, 6)

	for _, p := range v {
		assert.Contains(t, []float32{-1, 1}, p.X())
		assert.Contains(t, []float32{-1, 1}, p.Y())
	}

	first := triangleArea(v[0], v[1], v[2])
	second := triangleArea(v[3], v[4], v[5])
	assert.InDelta(t, 2.0, first, 1e-6)
	assert.InDelta(t, 2.0, second, 1e-6)
	assert.InDelta(t, 4.0, first+second, 1e-6, "two halves of the [-1,1] square")

	corners := map[mgl32.Vec2]bool{}
	for _, p := range v {
		corners[p] = true
	}
	assert.Len(t, corners, 4)
}

func TestUploadQuad_BindsPositionAttribute(t *testing.T) {
	ctx := gfxtest.New()
	p := linkedProgram(t, ctx)

	g := gfx.UploadQuad(ctx, p)

	assert.Equal(t, 6, g.VertexCount())
	require.Len(t, ctx.Uploads, 1)
	assert.Equal(t, []float32{-1, -1, 1, -1, -1, 1, -1, 1, 1, -1, 1, 1}, ctx.Uploads[0])
	assert.True(t, ctx.Enabled(p.Position))
	size, stride, offset, ok := ctx.Pointer(p.Position)
	require.True(t, ok)
	assert.Equal(t, 2, size)
	assert.Equal(t, 2, stride)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 1, ctx.LiveBuffers())
	assert.Equal(t, 1, ctx.LiveVertexArrays())

	g.Close()
	g.Close()
	assert.Equal(t, 0, ctx.LiveBuffers())
	assert.Equal(t, 0, ctx.LiveVertexArrays())
}

func TestUploadQuad_WithoutPositionAttribute(t *testing.T) {
	ctx := gfxtest.New()
	p, err := gfx.BuildProgram(ctx, nil,
		"void main() { gl_Position = vec4(0.0); }\n",
		fragmentSource,
	)
	require.NoError(t, err)
	require.Equal(t, gfx.NoLocation, p.Position)

	g := gfx.UploadQuad(ctx, p)

	assert.Equal(t, 6, g.VertexCount())
	assert.Len(t, ctx.Uploads, 1)
	assert.False(t, ctx.Called("EnableVertexAttribArray"))
	assert.False(t, ctx.Called("VertexAttribPointer"))
}

func TestGeometry_Draw(t *testing.T) {
	ctx := gfxtest.New()
	p := linkedProgram(t, ctx)
	g := gfx.UploadQuad(ctx, p)

	p.Use()
	g.Bind()
	g.Draw()

	require.Len(t, ctx.Draws, 1)
	assert.Equal(t, p.Handle(), ctx.Draws[0].Program)
	assert.Equal(t, 0, ctx.Draws[0].First)
	assert.Equal(t, 6, ctx.Draws[0].Count)
}
