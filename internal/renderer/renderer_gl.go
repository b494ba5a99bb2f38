//go:build !js

package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/kjkrol/glclock/pkg/gfx"
)

// glContext implements gfx.Context on desktop OpenGL 3.3 core.
type glContext struct{}

// NewGL loads the GL function pointers for the context current on the
// calling thread.
func NewGL() (gfx.Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}
	return glContext{}, nil
}

// Version reports the driver's GL version string.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (glContext) ShadingLanguage() string {
	return "#version 330 core"
}

func (glContext) CreateShader(kind gfx.StageKind) gfx.Object {
	shaderType := uint32(gl.VERTEX_SHADER)
	if kind == gfx.FragmentStage {
		shaderType = gl.FRAGMENT_SHADER
	}
	return gfx.Object(gl.CreateShader(shaderType))
}

func (glContext) ShaderSource(shader gfx.Object, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
}

func (glContext) CompileShader(shader gfx.Object) {
	gl.CompileShader(uint32(shader))
}

func (glContext) ShaderCompiled(shader gfx.Object) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (glContext) ShaderInfoLog(shader gfx.Object) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(shader), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glContext) DeleteShader(shader gfx.Object) {
	gl.DeleteShader(uint32(shader))
}

func (glContext) CreateProgram() gfx.Object {
	return gfx.Object(gl.CreateProgram())
}

func (glContext) AttachShader(program, shader gfx.Object) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (glContext) DetachShader(program, shader gfx.Object) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (glContext) LinkProgram(program gfx.Object) {
	gl.LinkProgram(uint32(program))
}

func (glContext) ProgramLinked(program gfx.Object) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (glContext) ProgramInfoLog(program gfx.Object) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glContext) DeleteProgram(program gfx.Object) {
	gl.DeleteProgram(uint32(program))
}

func (glContext) UseProgram(program gfx.Object) {
	gl.UseProgram(uint32(program))
}

func (glContext) AttribLocation(program gfx.Object, name string) gfx.Location {
	return gfx.Location(gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00")))
}

func (glContext) UniformLocation(program gfx.Object, name string) gfx.Location {
	return gfx.Location(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (glContext) CreateBuffer() gfx.Object {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return gfx.Object(buffer)
}

func (glContext) BindArrayBuffer(buffer gfx.Object) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer))
}

func (glContext) BufferStaticData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (glContext) DeleteBuffer(buffer gfx.Object) {
	b := uint32(buffer)
	gl.DeleteBuffers(1, &b)
}

func (glContext) CreateVertexArray() gfx.Object {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return gfx.Object(vao)
}

func (glContext) BindVertexArray(vao gfx.Object) {
	gl.BindVertexArray(uint32(vao))
}

func (glContext) DeleteVertexArray(vao gfx.Object) {
	v := uint32(vao)
	gl.DeleteVertexArrays(1, &v)
}

func (glContext) EnableVertexAttribArray(loc gfx.Location) {
	gl.EnableVertexAttribArray(uint32(loc))
}

func (glContext) VertexAttribPointer(loc gfx.Location, size, stride, offset int) {
	gl.VertexAttribPointer(uint32(loc), int32(size), gl.FLOAT, false, int32(stride*4), gl.PtrOffset(offset*4))
}

func (glContext) Uniform2f(loc gfx.Location, x, y float32) {
	gl.Uniform2f(int32(loc), x, y)
}

func (glContext) Uniform3f(loc gfx.Location, x, y, z float32) {
	gl.Uniform3f(int32(loc), x, y, z)
}

func (glContext) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (glContext) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (glContext) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (glContext) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}
