//go:build js && wasm

package renderer

import (
	"errors"
	"syscall/js"

	"github.com/kjkrol/glclock/pkg/gfx"
)

type glConsts struct {
	arrayBuffer    int
	staticDraw     int
	floatType      int
	triangles      int
	colorBufferBit int
	compileStatus  int
	linkStatus     int
	vertexShader   int
	fragmentShader int
}

// webglContext implements gfx.Context on a WebGL2RenderingContext. JS
// objects are kept in tables and handed out as integer handles.
type webglContext struct {
	gl       js.Value
	consts   glConsts
	next     gfx.Object
	objects  map[gfx.Object]js.Value
	uniforms []js.Value
}

// NewWebGL wraps a WebGL2 rendering context obtained from a canvas.
func NewWebGL(gl js.Value) (gfx.Context, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, errors.New("webgl2 context is required")
	}
	c := &webglContext{
		gl:      gl,
		objects: make(map[gfx.Object]js.Value),
	}
	c.initConsts()
	return c, nil
}

func (c *webglContext) initConsts() {
	c.consts = glConsts{
		arrayBuffer:    c.gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     c.gl.Get("STATIC_DRAW").Int(),
		floatType:      c.gl.Get("FLOAT").Int(),
		triangles:      c.gl.Get("TRIANGLES").Int(),
		colorBufferBit: c.gl.Get("COLOR_BUFFER_BIT").Int(),
		compileStatus:  c.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     c.gl.Get("LINK_STATUS").Int(),
		vertexShader:   c.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: c.gl.Get("FRAGMENT_SHADER").Int(),
	}
}

func (c *webglContext) put(v js.Value) gfx.Object {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	c.next++
	c.objects[c.next] = v
	return c.next
}

func (c *webglContext) get(obj gfx.Object) js.Value {
	if v, ok := c.objects[obj]; ok {
		return v
	}
	return js.Null()
}

func (c *webglContext) drop(obj gfx.Object) js.Value {
	v := c.get(obj)
	delete(c.objects, obj)
	return v
}

func (c *webglContext) uniform(loc gfx.Location) js.Value {
	if !loc.Valid() || int(loc) >= len(c.uniforms) {
		return js.Null()
	}
	return c.uniforms[loc]
}

func (c *webglContext) ShadingLanguage() string {
	return "#version 300 es"
}

func (c *webglContext) CreateShader(kind gfx.StageKind) gfx.Object {
	shaderType := c.consts.vertexShader
	if kind == gfx.FragmentStage {
		shaderType = c.consts.fragmentShader
	}
	return c.put(c.gl.Call("createShader", shaderType))
}

func (c *webglContext) ShaderSource(shader gfx.Object, source string) {
	c.gl.Call("shaderSource", c.get(shader), source)
}

func (c *webglContext) CompileShader(shader gfx.Object) {
	c.gl.Call("compileShader", c.get(shader))
}

func (c *webglContext) ShaderCompiled(shader gfx.Object) bool {
	return c.gl.Call("getShaderParameter", c.get(shader), c.consts.compileStatus).Truthy()
}

func (c *webglContext) ShaderInfoLog(shader gfx.Object) string {
	log := c.gl.Call("getShaderInfoLog", c.get(shader))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (c *webglContext) DeleteShader(shader gfx.Object) {
	c.gl.Call("deleteShader", c.drop(shader))
}

func (c *webglContext) CreateProgram() gfx.Object {
	return c.put(c.gl.Call("createProgram"))
}

func (c *webglContext) AttachShader(program, shader gfx.Object) {
	c.gl.Call("attachShader", c.get(program), c.get(shader))
}

func (c *webglContext) DetachShader(program, shader gfx.Object) {
	c.gl.Call("detachShader", c.get(program), c.get(shader))
}

func (c *webglContext) LinkProgram(program gfx.Object) {
	c.gl.Call("linkProgram", c.get(program))
}

func (c *webglContext) ProgramLinked(program gfx.Object) bool {
	return c.gl.Call("getProgramParameter", c.get(program), c.consts.linkStatus).Truthy()
}

func (c *webglContext) ProgramInfoLog(program gfx.Object) string {
	log := c.gl.Call("getProgramInfoLog", c.get(program))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (c *webglContext) DeleteProgram(program gfx.Object) {
	c.gl.Call("deleteProgram", c.drop(program))
}

func (c *webglContext) UseProgram(program gfx.Object) {
	c.gl.Call("useProgram", c.get(program))
}

func (c *webglContext) AttribLocation(program gfx.Object, name string) gfx.Location {
	return gfx.Location(c.gl.Call("getAttribLocation", c.get(program), name).Int())
}

func (c *webglContext) UniformLocation(program gfx.Object, name string) gfx.Location {
	loc := c.gl.Call("getUniformLocation", c.get(program), name)
	if loc.IsNull() {
		return gfx.NoLocation
	}
	c.uniforms = append(c.uniforms, loc)
	return gfx.Location(len(c.uniforms) - 1)
}

func (c *webglContext) CreateBuffer() gfx.Object {
	return c.put(c.gl.Call("createBuffer"))
}

func (c *webglContext) BindArrayBuffer(buffer gfx.Object) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, c.get(buffer))
}

func (c *webglContext) BufferStaticData(data []float32) {
	c.gl.Call("bufferData", c.consts.arrayBuffer, float32Array(data), c.consts.staticDraw)
}

func (c *webglContext) DeleteBuffer(buffer gfx.Object) {
	c.gl.Call("deleteBuffer", c.drop(buffer))
}

func (c *webglContext) CreateVertexArray() gfx.Object {
	return c.put(c.gl.Call("createVertexArray"))
}

func (c *webglContext) BindVertexArray(vao gfx.Object) {
	c.gl.Call("bindVertexArray", c.get(vao))
}

func (c *webglContext) DeleteVertexArray(vao gfx.Object) {
	c.gl.Call("deleteVertexArray", c.drop(vao))
}

func (c *webglContext) EnableVertexAttribArray(loc gfx.Location) {
	c.gl.Call("enableVertexAttribArray", int(loc))
}

func (c *webglContext) VertexAttribPointer(loc gfx.Location, size, stride, offset int) {
	c.gl.Call("vertexAttribPointer", int(loc), size, c.consts.floatType, false, stride*4, offset*4)
}

func (c *webglContext) Uniform2f(loc gfx.Location, x, y float32) {
	c.gl.Call("uniform2f", c.uniform(loc), x, y)
}

func (c *webglContext) Uniform3f(loc gfx.Location, x, y, z float32) {
	c.gl.Call("uniform3f", c.uniform(loc), x, y, z)
}

func (c *webglContext) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *webglContext) ClearColor(r, g, b, a float32) {
	c.gl.Call("clearColor", r, g, b, a)
}

func (c *webglContext) Clear() {
	c.gl.Call("clear", c.consts.colorBufferBit)
}

func (c *webglContext) DrawTriangles(first, count int) {
	c.gl.Call("drawArrays", c.consts.triangles, first, count)
}
