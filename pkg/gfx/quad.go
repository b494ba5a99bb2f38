package gfx

import "github.com/go-gl/mathgl/mgl32"

const floatsPerVertex = 2

// QuadVertices covers clip space with two triangles.
var QuadVertices = [6]mgl32.Vec2{
	{-1, -1}, {1, -1}, {-1, 1},
	{-1, 1}, {1, -1}, {1, 1},
}

// Geometry is the uploaded quad and the vertex-array state that feeds it to a
// program's position attribute.
type Geometry struct {
	ctx    Context
	buffer Object
	vao    Object
	count  int
}

// UploadQuad uploads QuadVertices as a static buffer and binds it to the
// program's position attribute. The caller must pass a linked program.
func UploadQuad(ctx Context, program *Program) *Geometry {
	data := make([]float32, 0, len(QuadVertices)*floatsPerVertex)
	for _, v := range QuadVertices {
		data = append(data, v.X(), v.Y())
	}

	g := &Geometry{ctx: ctx, count: len(QuadVertices)}
	g.buffer = ctx.CreateBuffer()
	ctx.BindArrayBuffer(g.buffer)
	ctx.BufferStaticData(data)

	g.vao = ctx.CreateVertexArray()
	ctx.BindVertexArray(g.vao)
	if program.Position.Valid() {
		ctx.EnableVertexAttribArray(program.Position)
		ctx.VertexAttribPointer(program.Position, floatsPerVertex, floatsPerVertex, 0)
	}
	return g
}

func (g *Geometry) VertexCount() int {
	return g.count
}

func (g *Geometry) Bind() {
	g.ctx.BindVertexArray(g.vao)
}

func (g *Geometry) Draw() {
	g.ctx.DrawTriangles(0, g.count)
}

func (g *Geometry) Close() {
	if g == nil {
		return
	}
	if g.vao != 0 {
		g.ctx.DeleteVertexArray(g.vao)
		g.vao = 0
	}
	if g.buffer != 0 {
		g.ctx.DeleteBuffer(g.buffer)
		g.buffer = 0
	}
}
