// Package gfxtest provides an in-memory gfx.Context that records every call,
// for testing code that drives the GL API without a GPU.
package gfxtest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kjkrol/glclock/pkg/gfx"
)

// Draw is a snapshot taken at each DrawTriangles call.
type Draw struct {
	Program gfx.Object
	VAO     gfx.Object
	First   int
	Count   int
	// Uniforms of the bound program at draw time, keyed by location.
	Uniforms map[gfx.Location][]float32
}

type shader struct {
	kind     gfx.StageKind
	source   string
	compiled bool
	log      string
}

type program struct {
	attached   []gfx.Object
	linked     bool
	log        string
	attributes map[string]gfx.Location
	uniforms   map[string]gfx.Location
	values     map[gfx.Location][]float32
}

// Context is a fake rendering context. The zero value is not usable; call New.
type Context struct {
	Version string

	// CompileError returns the driver log for a source that must fail to
	// compile, or "" to accept it. Defaults to SyntaxCheck.
	CompileError func(kind gfx.StageKind, source string) string
	// LinkError returns the driver log for a pair that must fail to link.
	LinkError func(vertex, fragment string) string

	Calls   []string
	Uploads [][]float32
	Draws   []Draw

	ViewportRect [4]int
	Clears       int
	ClearRGBA    [4]float32

	next     gfx.Object
	shaders  map[gfx.Object]*shader
	programs map[gfx.Object]*program
	buffers  map[gfx.Object]bool
	vaos     map[gfx.Object]bool
	enabled  map[gfx.Location]bool

	boundBuffer  gfx.Object
	boundVAO     gfx.Object
	boundProgram gfx.Object
	pointers     map[gfx.Location][3]int
}

var _ gfx.Context = (*Context)(nil)

func New() *Context {
	return &Context{
		Version:      "#version 300 es",
		CompileError: SyntaxCheck,
		shaders:      make(map[gfx.Object]*shader),
		programs:     make(map[gfx.Object]*program),
		buffers:      make(map[gfx.Object]bool),
		vaos:         make(map[gfx.Object]bool),
		enabled:      make(map[gfx.Location]bool),
		pointers:     make(map[gfx.Location][3]int),
	}
}

// SyntaxCheck rejects sources with unbalanced braces or parentheses or
// without a main function, the way a driver reports a syntax error.
func SyntaxCheck(_ gfx.StageKind, source string) string {
	if strings.Count(source, "{") != strings.Count(source, "}") ||
		strings.Count(source, "(") != strings.Count(source, ")") {
		return "ERROR: 0:1: '' : syntax error"
	}
	if !strings.Contains(source, "void main") {
		return "ERROR: 0:1: 'main' : function not defined"
	}
	return ""
}

func (c *Context) record(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

// Called reports whether any recorded call starts with name.
func (c *Context) Called(name string) bool {
	return c.Count(name) > 0
}

// Count returns how many recorded calls start with name.
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call == name || strings.HasPrefix(call, name+"(") {
			n++
		}
	}
	return n
}

// LiveShaders returns the number of created and not yet deleted shaders.
func (c *Context) LiveShaders() int { return len(c.shaders) }

func (c *Context) LivePrograms() int { return len(c.programs) }

func (c *Context) LiveBuffers() int { return len(c.buffers) }

func (c *Context) LiveVertexArrays() int { return len(c.vaos) }

// Enabled reports whether the attribute array at loc was enabled.
func (c *Context) Enabled(loc gfx.Location) bool { return c.enabled[loc] }

// Pointer returns size, stride and offset recorded for loc.
func (c *Context) Pointer(loc gfx.Location) (size, stride, offset int, ok bool) {
	p, ok := c.pointers[loc]
	return p[0], p[1], p[2], ok
}

func (c *Context) alloc() gfx.Object {
	c.next++
	return c.next
}

func (c *Context) ShadingLanguage() string {
	return c.Version
}

func (c *Context) CreateShader(kind gfx.StageKind) gfx.Object {
	obj := c.alloc()
	c.shaders[obj] = &shader{kind: kind}
	c.record("CreateShader(%s)", kind)
	return obj
}

func (c *Context) ShaderSource(obj gfx.Object, source string) {
	c.record("ShaderSource(%d)", obj)
	if s := c.shaders[obj]; s != nil {
		s.source = source
	}
}

func (c *Context) CompileShader(obj gfx.Object) {
	c.record("CompileShader(%d)", obj)
	s := c.shaders[obj]
	if s == nil {
		return
	}
	s.log = ""
	if c.CompileError != nil {
		s.log = c.CompileError(s.kind, s.source)
	}
	s.compiled = s.log == ""
}

func (c *Context) ShaderCompiled(obj gfx.Object) bool {
	s := c.shaders[obj]
	return s != nil && s.compiled
}

func (c *Context) ShaderInfoLog(obj gfx.Object) string {
	if s := c.shaders[obj]; s != nil {
		return s.log
	}
	return ""
}

func (c *Context) DeleteShader(obj gfx.Object) {
	c.record("DeleteShader(%d)", obj)
	delete(c.shaders, obj)
}

// ShaderText returns the source last given to a live shader.
func (c *Context) ShaderText(obj gfx.Object) string {
	if s := c.shaders[obj]; s != nil {
		return s.source
	}
	return ""
}

func (c *Context) CreateProgram() gfx.Object {
	obj := c.alloc()
	c.programs[obj] = &program{values: make(map[gfx.Location][]float32)}
	c.record("CreateProgram")
	return obj
}

func (c *Context) AttachShader(p, s gfx.Object) {
	c.record("AttachShader(%d, %d)", p, s)
	if prog := c.programs[p]; prog != nil {
		prog.attached = append(prog.attached, s)
	}
}

func (c *Context) DetachShader(p, s gfx.Object) {
	c.record("DetachShader(%d, %d)", p, s)
	prog := c.programs[p]
	if prog == nil {
		return
	}
	for i, obj := range prog.attached {
		if obj == s {
			prog.attached = append(prog.attached[:i], prog.attached[i+1:]...)
			return
		}
	}
}

var (
	attributeDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+\w+\s+(\w+)\s*;`)
	uniformDecl   = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
)

func (c *Context) LinkProgram(p gfx.Object) {
	c.record("LinkProgram(%d)", p)
	prog := c.programs[p]
	if prog == nil {
		return
	}
	var vertex, fragment *shader
	for _, obj := range prog.attached {
		s := c.shaders[obj]
		if s == nil || !s.compiled {
			continue
		}
		switch s.kind {
		case gfx.VertexStage:
			vertex = s
		case gfx.FragmentStage:
			fragment = s
		}
	}
	prog.log = ""
	switch {
	case vertex == nil || fragment == nil:
		prog.log = "ERROR: program needs a compiled vertex and fragment shader"
	case c.LinkError != nil:
		prog.log = c.LinkError(vertex.source, fragment.source)
	}
	prog.linked = prog.log == ""
	if !prog.linked {
		return
	}

	prog.attributes = make(map[string]gfx.Location)
	for i, m := range attributeDecl.FindAllStringSubmatch(vertex.source, -1) {
		prog.attributes[m[1]] = gfx.Location(i)
	}
	prog.uniforms = make(map[string]gfx.Location)
	for _, src := range []string{vertex.source, fragment.source} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := prog.uniforms[m[1]]; !ok {
				prog.uniforms[m[1]] = gfx.Location(len(prog.uniforms))
			}
		}
	}
}

func (c *Context) ProgramLinked(p gfx.Object) bool {
	prog := c.programs[p]
	return prog != nil && prog.linked
}

func (c *Context) ProgramInfoLog(p gfx.Object) string {
	if prog := c.programs[p]; prog != nil {
		return prog.log
	}
	return ""
}

func (c *Context) DeleteProgram(p gfx.Object) {
	c.record("DeleteProgram(%d)", p)
	delete(c.programs, p)
	if c.boundProgram == p {
		c.boundProgram = 0
	}
}

func (c *Context) UseProgram(p gfx.Object) {
	c.record("UseProgram(%d)", p)
	c.boundProgram = p
}

func (c *Context) AttribLocation(p gfx.Object, name string) gfx.Location {
	if prog := c.programs[p]; prog != nil && prog.linked {
		if loc, ok := prog.attributes[name]; ok {
			return loc
		}
	}
	return gfx.NoLocation
}

func (c *Context) UniformLocation(p gfx.Object, name string) gfx.Location {
	if prog := c.programs[p]; prog != nil && prog.linked {
		if loc, ok := prog.uniforms[name]; ok {
			return loc
		}
	}
	return gfx.NoLocation
}

// UniformValue returns the last value set at loc on program p.
func (c *Context) UniformValue(p gfx.Object, loc gfx.Location) []float32 {
	if prog := c.programs[p]; prog != nil {
		return prog.values[loc]
	}
	return nil
}

func (c *Context) CreateBuffer() gfx.Object {
	obj := c.alloc()
	c.buffers[obj] = true
	c.record("CreateBuffer")
	return obj
}

func (c *Context) BindArrayBuffer(b gfx.Object) {
	c.record("BindArrayBuffer(%d)", b)
	c.boundBuffer = b
}

func (c *Context) BufferStaticData(data []float32) {
	c.record("BufferStaticData(%d)", len(data))
	c.Uploads = append(c.Uploads, append([]float32(nil), data...))
}

func (c *Context) DeleteBuffer(b gfx.Object) {
	c.record("DeleteBuffer(%d)", b)
	delete(c.buffers, b)
}

func (c *Context) CreateVertexArray() gfx.Object {
	obj := c.alloc()
	c.vaos[obj] = true
	c.record("CreateVertexArray")
	return obj
}

func (c *Context) BindVertexArray(v gfx.Object) {
	c.record("BindVertexArray(%d)", v)
	c.boundVAO = v
}

func (c *Context) DeleteVertexArray(v gfx.Object) {
	c.record("DeleteVertexArray(%d)", v)
	delete(c.vaos, v)
}

func (c *Context) EnableVertexAttribArray(loc gfx.Location) {
	c.record("EnableVertexAttribArray(%d)", loc)
	c.enabled[loc] = true
}

func (c *Context) VertexAttribPointer(loc gfx.Location, size, stride, offset int) {
	c.record("VertexAttribPointer(%d, %d, %d, %d)", loc, size, stride, offset)
	c.pointers[loc] = [3]int{size, stride, offset}
}

func (c *Context) setUniform(loc gfx.Location, v ...float32) {
	if !loc.Valid() {
		return
	}
	if prog := c.programs[c.boundProgram]; prog != nil {
		prog.values[loc] = v
	}
}

func (c *Context) Uniform2f(loc gfx.Location, x, y float32) {
	c.record("Uniform2f(%d)", loc)
	c.setUniform(loc, x, y)
}

func (c *Context) Uniform3f(loc gfx.Location, x, y, z float32) {
	c.record("Uniform3f(%d)", loc)
	c.setUniform(loc, x, y, z)
}

func (c *Context) Viewport(x, y, width, height int) {
	c.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
	c.ViewportRect = [4]int{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("ClearColor")
	c.ClearRGBA = [4]float32{r, g, b, a}
}

func (c *Context) Clear() {
	c.record("Clear")
	c.Clears++
}

func (c *Context) DrawTriangles(first, count int) {
	c.record("DrawTriangles(%d, %d)", first, count)
	d := Draw{
		Program:  c.boundProgram,
		VAO:      c.boundVAO,
		First:    first,
		Count:    count,
		Uniforms: make(map[gfx.Location][]float32),
	}
	if prog := c.programs[c.boundProgram]; prog != nil {
		for loc, v := range prog.values {
			d.Uniforms[loc] = append([]float32(nil), v...)
		}
	}
	c.Draws = append(c.Draws, d)
}
